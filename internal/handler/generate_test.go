package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftmerge/draftmerge/internal/draft"
)

func postJSON(path, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestGenerate_ReturnsDraft(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.Generate(w, postJSON("/generate", `{"mode":"compose","tone":"friendly","subject":"Welcome","context":"Say hi"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Hi [Name],\n\nWelcome.", body["generated_email"])
	assert.NotContains(t, body, "warning")
}

func TestGenerate_BackendFailureStillReturnsOK(t *testing.T) {
	env := newTestEnv(t, withModel(&fakeModel{err: errBoom}))

	w := httptest.NewRecorder()
	env.h.Generate(w, postJSON("/generate", `{"mode":"compose"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, draft.FallbackBody, body["generated_email"])
	assert.Equal(t, "AI Error: boom", body["warning"])
}

func TestGenerate_EmptyBackendResponseFallsBack(t *testing.T) {
	env := newTestEnv(t, withModel(&fakeModel{text: "  "}))

	w := httptest.NewRecorder()
	env.h.Generate(w, postJSON("/generate", `{"mode":"reply","original_email":"hi","reply_context":"thanks"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, draft.FallbackBody, body["generated_email"])
	assert.NotEmpty(t, body["warning"])
}

func TestGenerate_UninitializedClientIs500(t *testing.T) {
	env := newTestEnv(t, withoutGenerator())

	w := httptest.NewRecorder()
	env.h.Generate(w, postJSON("/generate", `{"mode":"compose"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "not initialized")
}

func TestGenerate_InvalidJSONIs400(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.Generate(w, postJSON("/generate", `{not json`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_ExtraRecipientFieldIsAccepted(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.Generate(w, postJSON("/generate", `{"mode":"compose","recipients":[{"name":"Bob","email":"bob@example.com"}],"subject":"s","context":"c"}`))

	assert.Equal(t, http.StatusOK, w.Code)
}
