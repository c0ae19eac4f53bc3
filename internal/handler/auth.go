package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// Login issues a one-time state token and redirects the user to the
// identity provider's authorization endpoint.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Load(ctx, r)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load session")
		sendError(w, http.StatusInternalServerError, "Session store unavailable.")
		return
	}

	sess.State = uuid.NewString()
	if err := h.sessions.Save(ctx, w, r, sess); err != nil {
		h.log.Error().Err(err).Msg("failed to save session state")
		sendError(w, http.StatusInternalServerError, "Session store unavailable.")
		return
	}

	http.Redirect(w, r, h.provider.AuthCodeURL(sess.State), http.StatusFound)
}

// AuthCallback consumes the provider redirect. Every failure path —
// state mismatch, exchange failure, profile lookup failure — sends the
// user back to the home page without surfacing an error in-band.
func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Load(ctx, r)
	if err != nil || sess.State == "" || sess.State != r.URL.Query().Get("state") {
		h.log.Warn().Err(err).Msg("oauth callback rejected: state mismatch")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	creds, err := h.provider.ExchangeCode(ctx, r.URL.Query().Get("code"))
	if err != nil {
		h.log.Error().Err(err).Msg("oauth code exchange failed")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	user, err := h.provider.FetchProfile(ctx, creds)
	if err != nil {
		h.log.Error().Err(err).Msg("profile lookup failed")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	// State is single-use
	sess.State = ""
	sess.Credentials = creds
	sess.User = user
	if err := h.sessions.Save(ctx, w, r, sess); err != nil {
		h.log.Error().Err(err).Msg("failed to persist authenticated session")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.log.Info().Str("email", user.Email).Msg("user logged in")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears all session state
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(r.Context(), w, r); err != nil {
		h.log.Error().Err(err).Msg("failed to clear session")
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "logged_out",
	})
}

// CheckAuth reports whether the client holds an authenticated session
func (h *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Load(r.Context(), r)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load session")
		writeJSON(w, http.StatusOK, map[string]interface{}{"logged_in": false})
		return
	}

	if sess.LoggedIn() {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"logged_in": true,
			"user":      sess.User,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"logged_in": false})
}
