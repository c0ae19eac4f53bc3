package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/draftmerge/draftmerge/internal/config"
	"github.com/draftmerge/draftmerge/internal/draft"
	"github.com/draftmerge/draftmerge/internal/logger"
	"github.com/draftmerge/draftmerge/internal/mailer"
	"github.com/draftmerge/draftmerge/internal/model"
	"github.com/draftmerge/draftmerge/internal/service"
	"github.com/draftmerge/draftmerge/internal/session"
)

// --- Test fakes ---

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) GetString(_ context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *memStore) SetWithTTL(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.data[key] = value.(string)
	return nil
}

func (s *memStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

type fakeModel struct {
	text string
	err  error
}

func (f *fakeModel) Generate(context.Context, string) (string, error) {
	return f.text, f.err
}

type fakeProvider struct {
	exchangeErr error
	profileErr  error
	sendErr     error
	sentRaw     [][]byte
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeProvider) ExchangeCode(_ context.Context, code string) (*model.Credentials, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &model.Credentials{AccessToken: "at-" + code, RefreshToken: "rt"}, nil
}

func (f *fakeProvider) FetchProfile(context.Context, *model.Credentials) (*model.UserInfo, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &model.UserInfo{Name: "Alice", Email: "alice@example.com"}, nil
}

func (f *fakeProvider) SendMessage(_ context.Context, _ *model.Credentials, raw []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentRaw = append(f.sentRaw, raw)
	return nil
}

type fakeBatchMailer struct {
	from    string
	err     error
	batches [][]mailer.Message
}

func (f *fakeBatchMailer) From() string { return f.from }

func (f *fakeBatchMailer) SendBatch(_ context.Context, msgs []mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, msgs)
	return nil
}

// --- Harness ---

type testEnv struct {
	h        *Handler
	store    *memStore
	sessions *session.Manager
	provider *fakeProvider
	smtp     *fakeBatchMailer
}

type envOption func(*testEnv)

func withModel(m draft.TextModel) envOption {
	return func(e *testEnv) {
		e.h.generator = draft.NewGenerator(m, logger.Nop())
	}
}

func withoutGenerator() envOption {
	return func(e *testEnv) {
		e.h.generator = nil
	}
}

func withoutSMTP() envOption {
	return func(e *testEnv) {
		e.h.sender = service.NewSendService(nil, e.provider, logger.Nop())
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	log := logger.Nop()
	store := newMemStore()
	sessions := session.NewManager(store, config.SessionConfig{
		Secret:     "test-secret",
		TTL:        time.Hour,
		CookieName: "draftmerge_session",
	})
	provider := &fakeProvider{}
	smtp := &fakeBatchMailer{from: "ops@example.com"}
	sender := service.NewSendService(smtp, provider, log)
	generator := draft.NewGenerator(&fakeModel{text: "Hi [Name],\n\nWelcome."}, log)

	env := &testEnv{
		h:        New(log, &config.Config{}, nil, sessions, generator, sender, provider),
		store:    store,
		sessions: sessions,
		provider: provider,
		smtp:     smtp,
	}
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// authenticate seeds an authenticated session and returns its cookie
func (e *testEnv) authenticate(t *testing.T) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	err := e.sessions.Save(context.Background(), w, httptest.NewRequest(http.MethodGet, "/", nil), &session.Data{
		Credentials: &model.Credentials{AccessToken: "tok"},
		User:        &model.UserInfo{Name: "Alice", Email: "alice@example.com"},
	})
	require.NoError(t, err)
	return w.Result().Cookies()[0]
}

// pending seeds a session holding only a state token
func (e *testEnv) pending(t *testing.T, state string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	err := e.sessions.Save(context.Background(), w, httptest.NewRequest(http.MethodGet, "/", nil), &session.Data{State: state})
	require.NoError(t, err)
	return w.Result().Cookies()[0]
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var errBoom = errors.New("boom")
