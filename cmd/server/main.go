package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/draftmerge/draftmerge/internal/config"
	"github.com/draftmerge/draftmerge/internal/database"
	"github.com/draftmerge/draftmerge/internal/draft"
	"github.com/draftmerge/draftmerge/internal/handler"
	"github.com/draftmerge/draftmerge/internal/identity"
	"github.com/draftmerge/draftmerge/internal/logger"
	"github.com/draftmerge/draftmerge/internal/mailer"
	"github.com/draftmerge/draftmerge/internal/middleware"
	"github.com/draftmerge/draftmerge/internal/router"
	"github.com/draftmerge/draftmerge/internal/service"
	"github.com/draftmerge/draftmerge/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "draftmerge",
	Short: "AI-assisted email drafting and mail-merge delivery server",
	RunE:  runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Local development convenience; a missing .env is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting DraftMerge server")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	// Initialize session manager
	sessions := session.NewManager(rdb, cfg.Session)

	// Initialize the draft generator. A missing API key keeps the server
	// up in fallback-only mode; a key that fails client init leaves the
	// generator nil and /generate reports the failure.
	var generator *draft.Generator
	if cfg.AI.APIKey == "" {
		log.Warn().Msg("ai.api_key not set; drafts will use the fallback body")
		generator = draft.NewGenerator(nil, log)
	} else {
		model, err := draft.NewGeminiModel(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize Gemini client")
		} else {
			generator = draft.NewGenerator(model, log)
			log.Info().Str("model", cfg.AI.Model).Msg("Gemini client initialized")
		}
	}

	// Initialize the Google identity provider
	provider := identity.NewGoogle(cfg.Google)

	// Fixed-sender SMTP relay is optional; /send-email reports when it's
	// absent
	var smtp service.BatchMailer
	if cfg.SMTP.Configured() {
		smtp = mailer.NewSMTPSender(cfg.SMTP, log)
		log.Info().Str("host", cfg.SMTP.Host).Msg("SMTP relay configured")
	} else {
		log.Warn().Msg("SMTP credentials not set; /send-email is disabled")
	}

	sender := service.NewSendService(smtp, provider, log)

	// Initialize handlers
	h := handler.New(log, cfg, rdb, sessions, generator, sender, provider)

	// Initialize middleware
	mw := middleware.New(log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}
