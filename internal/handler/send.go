package handler

import (
	"errors"
	"net/http"

	"github.com/draftmerge/draftmerge/internal/service"
)

// SendEmail dispatches a templated bulk send through the operator's
// fixed SMTP credentials.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req service.BulkRequest
	if err := readJSON(r, &req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sender, err := h.sender.SendSMTP(r.Context(), req)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"sender": sender,
	})
}

// SendOAuthEmail dispatches a templated bulk send through the logged-in
// user's own Gmail account.
func (h *Handler) SendOAuthEmail(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Load(r.Context(), r)
	if err != nil || !sess.LoggedIn() {
		sendError(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req service.BulkRequest
	if err := readJSON(r, &req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sender, err := h.sender.SendGmail(r.Context(), sess, req)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"sender": sender,
	})
}

// writeSendError maps orchestrator errors to the send endpoints' error
// shape. No retry and no partial-batch breakdown: one message covers
// the whole request.
func (h *Handler) writeSendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoRecipients),
		errors.Is(err, service.ErrMissingSubject),
		errors.Is(err, service.ErrMissingBody):
		sendError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		sendError(w, http.StatusUnauthorized, "User not authenticated.")
	default:
		h.log.Error().Err(err).Msg("bulk send failed")
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}
