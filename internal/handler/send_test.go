package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmail_Success(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.SendEmail(w, postJSON("/send-email", `{
		"recipients": [{"name":"Bob","email":"bob@example.com"},{"name":"","email":"carol@example.com"}],
		"subject": "Welcome",
		"body": "Hi [Name]!"
	}`))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "ops@example.com", body["sender"])

	require.Len(t, env.smtp.batches, 1)
	batch := env.smtp.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, "Hi Bob!", batch[0].TextBody)
	assert.Equal(t, "Hi there!", batch[1].TextBody)
}

func TestSendEmail_EmptyRecipientsIs400(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.SendEmail(w, postJSON("/send-email", `{"recipients":[],"subject":"s","body":"b"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "no recipient emails provided", body["message"])
	// No transport contact
	assert.Empty(t, env.smtp.batches)
}

func TestSendEmail_MissingSubjectAndBodyAre400(t *testing.T) {
	env := newTestEnv(t)

	for _, payload := range []string{
		`{"recipients":[{"email":"a@b.c"}],"body":"b"}`,
		`{"recipients":[{"email":"a@b.c"}],"subject":"s"}`,
	} {
		w := httptest.NewRecorder()
		env.h.SendEmail(w, postJSON("/send-email", payload))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Empty(t, env.smtp.batches)
}

func TestSendEmail_UnconfiguredCredentialsIs500(t *testing.T) {
	env := newTestEnv(t, withoutSMTP())

	w := httptest.NewRecorder()
	env.h.SendEmail(w, postJSON("/send-email", `{"recipients":[{"email":"a@b.c"}],"subject":"s","body":"b"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "not configured")
}

func TestSendEmail_RelayFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.smtp.err = errBoom

	w := httptest.NewRecorder()
	env.h.SendEmail(w, postJSON("/send-email", `{"recipients":[{"email":"a@b.c"}],"subject":"s","body":"b"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", decodeBody(t, w)["status"])
}

func TestSendOAuthEmail_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.SendOAuthEmail(w, postJSON("/send-oauth-email", `{"recipients":[{"email":"a@b.c"}],"subject":"s","body":"b"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "User not authenticated.", body["message"])
	assert.Empty(t, env.provider.sentRaw)
}

func TestSendOAuthEmail_SendsAsUser(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.authenticate(t)

	r := postJSON("/send-oauth-email", `{"recipients":[{"name":"Bob","email":"bob@example.com"}],"subject":"Hi","body":"Hello [Name]"}`)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.h.SendOAuthEmail(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "alice@example.com", body["sender"])

	require.Len(t, env.provider.sentRaw, 1)
	raw := string(env.provider.sentRaw[0])
	assert.Contains(t, raw, "alice@example.com")
	assert.Contains(t, raw, "To: bob@example.com")
	assert.Contains(t, raw, "Hello Bob")
}

func TestSendOAuthEmail_ProviderFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.provider.sendErr = errBoom
	cookie := env.authenticate(t)

	r := postJSON("/send-oauth-email", `{"recipients":[{"email":"a@b.c"}],"subject":"s","body":"b"}`)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.h.SendOAuthEmail(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", decodeBody(t, w)["status"])
}

func TestSendOAuthEmail_EmptyRecipientsIs400(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.authenticate(t)

	r := postJSON("/send-oauth-email", `{"recipients":[],"subject":"s","body":"b"}`)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.h.SendOAuthEmail(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.provider.sentRaw)
}
