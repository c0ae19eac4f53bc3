package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/draftmerge/draftmerge/internal/config"
	"github.com/draftmerge/draftmerge/internal/model"
)

// Store is the key-value backend holding session documents keyed by an
// opaque session ID. *database.Redis satisfies it; tests use an
// in-memory map.
type Store interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Data is the per-client session document. All fields are transient: the
// document disappears when its TTL lapses or the user logs out.
type Data struct {
	// State is the one-time OAuth state token awaiting the callback
	State       string             `json:"state,omitempty"`
	Credentials *model.Credentials `json:"credentials,omitempty"`
	User        *model.UserInfo    `json:"user_info,omitempty"`
}

// LoggedIn reports whether the session is authenticated. Both the token
// bundle and the profile must be present; a missing one means anonymous.
func (d *Data) LoggedIn() bool {
	return d != nil && d.Credentials != nil && d.User != nil
}

// Manager loads and saves session documents around each request. The
// browser only ever sees an HMAC-signed opaque session ID.
type Manager struct {
	store      Store
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewManager creates a session manager backed by the given store
func NewManager(store Store, cfg config.SessionConfig) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "draftmerge_session"
	}
	return &Manager{
		store:      store,
		secret:     []byte(cfg.Secret),
		ttl:        ttl,
		cookieName: cookieName,
		secure:     cfg.Secure,
	}
}

// Load returns the session document for the request. A missing cookie,
// a bad signature, or an expired document all yield a fresh anonymous
// session rather than an error.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Data, error) {
	id := m.requestID(r)
	if id == "" {
		return &Data{}, nil
	}

	raw, err := m.store.GetString(ctx, sessionKey(id))
	if errors.Is(err, redis.Nil) {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load failed: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("session: corrupt document: %w", err)
	}
	return &data, nil
}

// Save persists the session document and ensures the client holds a
// signed session cookie. The existing ID is reused when valid so a
// client keeps one session across requests.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, r *http.Request, data *Data) error {
	id := m.requestID(r)
	if id == "" {
		id = uuid.NewString()
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: marshal failed: %w", err)
	}
	if err := m.store.SetWithTTL(ctx, sessionKey(id), string(raw), m.ttl); err != nil {
		return fmt.Errorf("session: save failed: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    m.sign(id),
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear deletes the session document and expires the cookie, returning
// the client to the anonymous state.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if id := m.requestID(r); id != "" {
		if err := m.store.Delete(ctx, sessionKey(id)); err != nil {
			return fmt.Errorf("session: clear failed: %w", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// requestID extracts and verifies the session ID from the request
// cookie. Tampered or malformed cookies are treated as absent.
func (m *Manager) requestID(r *http.Request) string {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}

	id, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || id == "" {
		return ""
	}
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ""
	}
	if !hmac.Equal(want, m.mac(id)) {
		return ""
	}
	return id
}

func (m *Manager) sign(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(m.mac(id))
}

func (m *Manager) mac(id string) []byte {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(id))
	return h.Sum(nil)
}

func sessionKey(id string) string {
	return "session:" + id
}
