package merge

import (
	"regexp"
	"strings"
)

// Token is the literal placeholder recognized in template bodies.
const Token = "[Name]"

// FallbackName is substituted when a recipient has no usable name.
const FallbackName = "there"

var tokenPattern = regexp.MustCompile(`(?i)\[name\]`)

// EffectiveName trims the recipient's display name and falls back to a
// generic greeting when nothing remains.
func EffectiveName(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return FallbackName
	}
	return n
}

// Personalize replaces every case-insensitive occurrence of Token in the
// template with the recipient's effective name. No other characters are
// altered. Each call is independent; there is no cross-recipient state.
func Personalize(template, name string) string {
	return tokenPattern.ReplaceAllLiteralString(template, EffectiveName(name))
}
