package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var assets embed.FS

// Dist returns the built frontend as a filesystem rooted at dist/.
func Dist() fs.FS {
	dist, err := fs.Sub(assets, "dist")
	if err != nil {
		panic(err)
	}
	return dist
}
