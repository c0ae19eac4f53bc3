package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/draftmerge/draftmerge/internal/config"
	"github.com/draftmerge/draftmerge/internal/database"
	"github.com/draftmerge/draftmerge/internal/draft"
	"github.com/draftmerge/draftmerge/internal/identity"
	"github.com/draftmerge/draftmerge/internal/logger"
	"github.com/draftmerge/draftmerge/internal/service"
	"github.com/draftmerge/draftmerge/internal/session"
)

// Handler holds all HTTP handlers
type Handler struct {
	log       *logger.Logger
	cfg       *config.Config
	rdb       *database.Redis
	sessions  *session.Manager
	generator *draft.Generator // nil when the AI client failed to initialize
	sender    *service.SendService
	provider  identity.Provider
}

// New creates a new Handler instance
func New(log *logger.Logger, cfg *config.Config, rdb *database.Redis, sessions *session.Manager, generator *draft.Generator, sender *service.SendService, provider identity.Provider) *Handler {
	return &Handler{
		log:       log,
		cfg:       cfg,
		rdb:       rdb,
		sessions:  sessions,
		generator: generator,
		sender:    sender,
		provider:  provider,
	}
}

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}

// sendError writes the send endpoints' error shape
func sendError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}
