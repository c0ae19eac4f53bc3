package router

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/draftmerge/draftmerge/internal/config"
	"github.com/draftmerge/draftmerge/internal/handler"
	"github.com/draftmerge/draftmerge/internal/middleware"
	"github.com/draftmerge/draftmerge/web"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// AI drafting
	mux.HandleFunc("POST /generate", h.Generate)

	// Google sign-in flow
	mux.HandleFunc("GET /login", h.Login)
	mux.HandleFunc("GET /auth-callback", h.AuthCallback)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /check-auth", h.CheckAuth)

	// Bulk sending
	mux.HandleFunc("POST /send-email", h.SendEmail)
	mux.HandleFunc("POST /send-oauth-email", h.SendOAuthEmail)

	// Embedded frontend
	mux.Handle("GET /", http.FileServerFS(web.Dist()))

	// Apply middleware stack
	var handler http.Handler = mux

	// CORS (session cookie crosses origins, so credentials stay on)
	handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(handler)

	// Security headers
	handler = mw.SecurityHeaders(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Timing
	handler = mw.Timing(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
