package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()

	store, err := NewSessionStore(filepath.Join(t.TempDir(), ".session"), nil)
	require.NoError(t, err)

	return store
}

func TestSessionStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	state := &SessionState{
		Cookies: []Cookie{
			{Name: "JSESSIONID", Value: "abc-123", Domain: "wifi.example.com", Path: "/"},
			{Name: "AWSALB", Value: "lb-cookie"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Save(state))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, state.Cookies, loaded.Cookies)
	assert.True(t, state.CreatedAt.Equal(loaded.CreatedAt))
}

func TestSessionStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSessionStore_LoadCorruptFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	require.NoError(t, os.WriteFile(store.Path(), []byte("not json{"), 0600))

	state, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, state)

	// Corrupt content is not auto-deleted
	_, err = os.Stat(store.Path())
	require.NoError(t, err)
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	require.NoError(t, store.Save(&SessionState{CreatedAt: time.Now()}))
	require.NoError(t, store.Clear())

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	// Second clear on an absent file succeeds
	require.NoError(t, store.Clear())
}

func TestSessionStore_SaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	require.NoError(t, store.Save(&SessionState{CreatedAt: time.Now()}))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())
}

func TestSessionState_SessionCookie(t *testing.T) {
	t.Parallel()

	t.Run("nil state", func(t *testing.T) {
		t.Parallel()

		var state *SessionState
		assert.Nil(t, state.SessionCookie())
	})

	t.Run("no session cookie among cookies", func(t *testing.T) {
		t.Parallel()

		state := &SessionState{Cookies: []Cookie{{Name: "AWSALB", Value: "x"}}}
		assert.Nil(t, state.SessionCookie())
	})

	t.Run("session cookie present", func(t *testing.T) {
		t.Parallel()

		state := &SessionState{Cookies: []Cookie{
			{Name: "AWSALB", Value: "x"},
			{Name: "JSESSIONID", Value: "abc", Path: "/"},
		}}

		cookie := state.SessionCookie()
		require.NotNil(t, cookie)
		assert.Equal(t, "JSESSIONID", cookie.Name)
		assert.Equal(t, "abc", cookie.Value)
	})
}
