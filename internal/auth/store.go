package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/netkit-io/cvcue/internal/constants"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// Cookie is one persisted cookie. The on-disk format is plain JSON so the
// session file stays language-neutral and inspectable.
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
	Path   string `json:"path,omitempty"`
}

// SessionState is the persisted authentication state.
type SessionState struct {
	Cookies   []Cookie  `json:"cookies"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionCookie returns the session cookie from the state, or nil.
func (s *SessionState) SessionCookie() *http.Cookie {
	if s == nil {
		return nil
	}

	for _, cookie := range s.Cookies {
		if cookie.Name == constants.SessionCookieName {
			return &http.Cookie{
				Name:   cookie.Name,
				Value:  cookie.Value,
				Domain: cookie.Domain,
				Path:   cookie.Path,
			}
		}
	}

	return nil
}

// SessionStore persists a SessionState to a local file.
type SessionStore struct {
	path   string
	logger cvcue.Logger
}

// NewSessionStore creates a store backed by the given file path.
func NewSessionStore(path string, logger cvcue.Logger) (*SessionStore, error) {
	if path == "" {
		return nil, cvcue.ErrSessionFileRequired
	}

	return &SessionStore{path: path, logger: logger}, nil
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.path
}

// Load reads the persisted state. A missing file returns (nil, nil); corrupt
// content is logged and treated as absent without deleting the file.
func (s *SessionStore) Load() (*SessionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		if s.logger != nil {
			s.logger.Warn("session file unreadable, starting without a session", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}

		return nil, nil
	}

	var state SessionState

	err = json.Unmarshal(data, &state)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("session file corrupt, starting without a session", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}

		return nil, nil
	}

	return &state, nil
}

// Save persists the state with atomic-replace semantics: the state is written
// to a temp file in the same directory and renamed over the target, so a
// crash never leaves a partially written session file.
func (s *SessionStore) Save(state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serializing session state: %w", err)
	}

	dir := filepath.Dir(s.path)

	err = os.MkdirAll(dir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}

	err = s.writeTemp(tmp, data)
	if err != nil {
		_ = os.Remove(tmp.Name())

		return err
	}

	err = os.Rename(tmp.Name(), s.path)
	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("replacing session file: %w", err)
	}

	return nil
}

// writeTemp writes and closes the temp file, releasing the handle on every
// exit path.
func (s *SessionStore) writeTemp(tmp *os.File, data []byte) error {
	defer func() {
		_ = tmp.Close()
	}()

	err := tmp.Chmod(constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("setting session file permissions: %w", err)
	}

	_, err = tmp.Write(data)
	if err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}

	return nil
}

// Clear deletes the persisted file. Idempotent: a missing file is not an
// error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	return nil
}
