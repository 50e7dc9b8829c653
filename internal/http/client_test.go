package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/netkit-io/cvcue/pkg/cvcue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionManager satisfies auth.SessionManager and counts how often the
// transport drives each operation.
type fakeSessionManager struct {
	mu          sync.Mutex
	ensureCalls int
	loginCalls  int
	cookie      *http.Cookie
	loginErr    error
}

func (m *fakeSessionManager) EnsureActive(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureCalls++

	return nil
}

func (m *fakeSessionManager) Login(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loginCalls++

	return m.loginErr
}

func (m *fakeSessionManager) IsActive(_ context.Context) bool {
	return m.Cookie() != nil
}

func (m *fakeSessionManager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cookie = nil

	return nil
}

func (m *fakeSessionManager) Cookie() *http.Cookie {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cookie
}

func TestClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/locations", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, nil)

	resp, err := client.Get(context.Background(), "/locations", url.Values{"page": []string{"2"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":[]}`, string(resp.Body))
}

func TestClient_PostSerializesBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string

		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "lab", payload["name"])

		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, nil)

	resp, err := client.Post(context.Background(), "/locations", map[string]string{"name": "lab"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClient_SessionCookieAttached(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("JSESSIONID")
		require.NoError(t, err)
		assert.Equal(t, "abc", cookie.Value)

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	sessions := &fakeSessionManager{cookie: &http.Cookie{Name: "JSESSIONID", Value: "abc"}}
	client := NewClient(server.URL, sessions)

	_, err := client.Get(context.Background(), "/locations", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.ensureCalls)
	assert.Equal(t, 0, sessions.loginCalls)
}

func TestClient_SingleReloginOn401(t *testing.T) {
	t.Parallel()

	var attempts int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++

		if attempts == 1 {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(server.Close)

	sessions := &fakeSessionManager{cookie: &http.Cookie{Name: "JSESSIONID", Value: "stale"}}
	client := NewClient(server.URL, sessions)

	resp, err := client.Get(context.Background(), "/locations", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Exactly two attempts and exactly one forced login
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, sessions.loginCalls)
}

func TestClient_PersistentUnauthorized(t *testing.T) {
	t.Parallel()

	var attempts int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"nope"}`))
	}))
	t.Cleanup(server.Close)

	sessions := &fakeSessionManager{cookie: &http.Cookie{Name: "JSESSIONID", Value: "stale"}}
	client := NewClient(server.URL, sessions)

	_, err := client.Get(context.Background(), "/locations", nil)
	require.Error(t, err)

	apiErr := &cvcue.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, cvcue.IsUnauthorized(err))

	// The retry budget is one relogin, never more
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, sessions.loginCalls)
}

func TestClient_ReloginFailureSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	authErr := &cvcue.AuthenticationError{StatusCode: http.StatusUnauthorized, Body: "bad key"}
	sessions := &fakeSessionManager{
		cookie:   &http.Cookie{Name: "JSESSIONID", Value: "stale"},
		loginErr: authErr,
	}
	client := NewClient(server.URL, sessions)

	_, err := client.Get(context.Background(), "/locations", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, authErr)
	assert.Contains(t, err.Error(), "re-authenticating after expired session")
}

func TestClient_NotFoundError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such resource"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, nil)

	resp, err := client.Get(context.Background(), "/manageddevices/aps", nil)
	require.Error(t, err)
	assert.True(t, cvcue.IsNotFound(err))

	// The response still carries the body for callers that inspect it
	require.NotNil(t, resp)
	assert.Contains(t, string(resp.Body), "no such resource")

	apiErr := &cvcue.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "/manageddevices/aps", apiErr.Path)
}

func TestClient_CacheServesRepeatGets(t *testing.T) {
	t.Parallel()

	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[{"name":"lobby"}]}`))
	}))
	t.Cleanup(server.Close)

	cache := cvcue.NewMemoryCache(10)
	client := NewClient(server.URL, nil, WithCache(cache, time.Minute))

	first, err := client.Get(context.Background(), "/locations", nil)
	require.NoError(t, err)

	second, err := client.Get(context.Background(), "/locations", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first.Body, second.Body)
}

func TestClient_CacheKeyedByQuery(t *testing.T) {
	t.Parallel()

	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"page":"` + r.URL.Query().Get("page") + `"}`))
	}))
	t.Cleanup(server.Close)

	cache := cvcue.NewMemoryCache(10)
	client := NewClient(server.URL, nil, WithCache(cache, time.Minute))

	_, err := client.Get(context.Background(), "/locations", url.Values{"page": []string{"1"}})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/locations", url.Values{"page": []string{"2"}})
	require.NoError(t, err)

	assert.Equal(t, 2, hits)
}

func TestClient_SessionEndpointNeverCached(t *testing.T) {
	t.Parallel()

	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cache := cvcue.NewMemoryCache(10)
	client := NewClient(server.URL, nil, WithCache(cache, time.Minute))

	_, err := client.Get(context.Background(), "/session", nil)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/session", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, hits)
}

func TestClient_ErrorResponsesNotCached(t *testing.T) {
	t.Parallel()

	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	cache := cvcue.NewMemoryCache(10)
	client := NewClient(server.URL, nil, WithCache(cache, time.Minute))

	_, err := client.Get(context.Background(), "/locations", nil)
	require.Error(t, err)

	_, err = client.Get(context.Background(), "/locations", nil)
	require.Error(t, err)

	assert.Equal(t, 2, hits)
}

func TestClient_TransportErrorUnwrapped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/locations", nil)
	require.Error(t, err)

	apiErr := &cvcue.APIError{}
	assert.False(t, errors.As(err, &apiErr))
}
