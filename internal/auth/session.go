package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/netkit-io/cvcue/internal/constants"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// SessionManager orchestrates login, session-liveness checks, and logout.
// The HTTP layer calls EnsureActive before every outbound request and forces
// Login for its single auto-relogin retry.
type SessionManager interface {
	// EnsureActive logs in when the current session is not active. It is an
	// idempotent no-op when the session is already live.
	EnsureActive(ctx context.Context) error

	// Login authenticates with the API-key credentials and persists the new
	// session cookie.
	Login(ctx context.Context) error

	// IsActive reports whether the persisted session is still accepted by
	// the server. It never returns an error; any failure means false.
	IsActive(ctx context.Context) bool

	// Logout discards the session locally. No server call is made.
	Logout() error

	// Cookie returns the active session cookie, or nil.
	Cookie() *http.Cookie
}

// loginRequest is the POST /session payload.
type loginRequest struct {
	APIKeyCredentials apiKeyCredentials `json:"apiKeyCredentials"`
}

type apiKeyCredentials struct {
	KeyID    string `json:"keyId"`
	KeyValue string `json:"keyValue"`
	ClientID string `json:"clientId"`
}

// CookieSessionManager implements SessionManager on top of the cookie-issuing
// /session endpoints. A manager instance is single-owner; concurrent callers
// may both detect an inactive session and both log in, which the server
// treats as idempotent.
type CookieSessionManager struct {
	credentials Credentials
	store       *SessionStore
	httpClient  *http.Client
	logger      cvcue.Logger
	state       *SessionState
}

// NewCookieSessionManager creates a manager and loads any persisted session
// from the store. A nil httpClient gets a default with a bounded timeout.
func NewCookieSessionManager(credentials Credentials, store *SessionStore, httpClient *http.Client, logger cvcue.Logger) (*CookieSessionManager, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading persisted session: %w", err)
	}

	return &CookieSessionManager{
		credentials: credentials,
		store:       store,
		httpClient:  httpClient,
		logger:      logger,
		state:       state,
	}, nil
}

// Cookie implements SessionManager.Cookie.
func (m *CookieSessionManager) Cookie() *http.Cookie {
	return m.state.SessionCookie()
}

// IsActive implements SessionManager.IsActive. With no session cookie it
// returns false immediately, without a network call; otherwise it performs a
// lightweight GET against the session-introspection endpoint.
func (m *CookieSessionManager) IsActive(ctx context.Context) bool {
	cookie := m.Cookie()
	if cookie == nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.credentials.BaseURL+"/session", nil)
	if err != nil {
		return false
	}

	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return false
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

// EnsureActive implements SessionManager.EnsureActive.
func (m *CookieSessionManager) EnsureActive(ctx context.Context) error {
	if m.IsActive(ctx) {
		return nil
	}

	return m.Login(ctx)
}

// Login implements SessionManager.Login. On success the new session cookie is
// persisted before the method returns.
func (m *CookieSessionManager) Login(ctx context.Context) error {
	payload, err := json.Marshal(loginRequest{
		APIKeyCredentials: apiKeyCredentials{
			KeyID:    m.credentials.KeyID,
			KeyValue: m.credentials.KeyValue,
			ClientID: m.credentials.ClientID,
		},
	})
	if err != nil {
		return fmt.Errorf("serializing login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.credentials.BaseURL+"/session", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending login request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &cvcue.AuthenticationError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	state := stateFromCookies(resp.Cookies())
	if state.SessionCookie() == nil {
		return cvcue.ErrNoSessionCookie
	}

	err = m.store.Save(state)
	if err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	m.state = state

	if m.logger != nil {
		m.logger.Debug("session established", map[string]interface{}{
			"base_url": m.credentials.BaseURL,
		})
	}

	return nil
}

// Logout implements SessionManager.Logout.
func (m *CookieSessionManager) Logout() error {
	m.state = nil

	return m.store.Clear()
}

// stateFromCookies builds a SessionState from the login response cookies.
func stateFromCookies(cookies []*http.Cookie) *SessionState {
	state := &SessionState{CreatedAt: time.Now().UTC()}

	for _, cookie := range cookies {
		state.Cookies = append(state.Cookies, Cookie{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   cookie.Path,
		})
	}

	return state
}
