package handler

import (
	"net/http"

	"github.com/draftmerge/draftmerge/internal/draft"
	"github.com/draftmerge/draftmerge/internal/model"
)

type generateRequest struct {
	Mode string `json:"mode"`
	Tone string `json:"tone"`
	// Recipients may be posted along with the brief but are not used for
	// drafting; the body is addressed to the merge token and personalized
	// at send time.
	Recipients    []model.Recipient `json:"recipients"`
	Subject       string            `json:"subject"`
	Context       string            `json:"context"`
	OriginalEmail string            `json:"original_email"`
	ReplyContext  string            `json:"reply_context"`
}

// Generate drafts an email body from a brief. Backend failures never
// surface as errors: the client always gets a usable body, with a
// warning field when it is the canned fallback.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "AI client is not initialized. Check API key.",
		})
		return
	}

	var req generateRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Invalid request body",
		})
		return
	}

	res := h.generator.Generate(r.Context(), draft.Request{
		Mode:          req.Mode,
		Tone:          req.Tone,
		Subject:       req.Subject,
		Context:       req.Context,
		OriginalEmail: req.OriginalEmail,
		ReplyContext:  req.ReplyContext,
	})

	resp := map[string]interface{}{
		"generated_email": res.Body,
	}
	if res.Warning != "" {
		resp["warning"] = res.Warning
	}
	writeJSON(w, http.StatusOK, resp)
}
