// Package session holds the authenticated identity for the running client.
// The token is the only durable piece of state: it is written to a file under
// the config directory on login and removed on logout. At startup a persisted
// token is validated against the backend before any identity is trusted; a
// rejected validation is treated exactly like having no session at all.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/retroterm/retroterm/internal/api"
)

const tokenFile = "session.yaml"

// ErrNoSession is returned by Resume when no usable persisted token exists.
var ErrNoSession = errors.New("session: no persisted session")

type persisted struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// Store is the session store: a nullable (user, token) pair shared by every
// screen. All methods are safe for concurrent use from in-flight commands.
type Store struct {
	dir    string
	client *api.Client

	mu    sync.RWMutex
	user  *api.User
	token string
}

// NewStore creates a session store persisting under dir.
func NewStore(dir string, client *api.Client) *Store {
	return &Store{dir: dir, client: client}
}

// Resume loads a persisted token, installs it on the client, and validates it
// with GET /auth/me. On any failure the persisted token is cleared and the
// store stays empty: an invalid token and a missing one look the same to
// callers.
func (s *Store) Resume(ctx context.Context) (api.User, error) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return api.User{}, ErrNoSession
		}
		return api.User{}, fmt.Errorf("session: read token file: %w", err)
	}
	var p persisted
	if err := yaml.Unmarshal(raw, &p); err != nil || p.Token == "" {
		s.discard()
		return api.User{}, ErrNoSession
	}

	s.client.SetToken(p.Token)
	user, err := s.client.Me(ctx)
	if err != nil {
		s.discard()
		s.client.SetToken("")
		return api.User{}, fmt.Errorf("session: token rejected: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = p.Token
	s.mu.Unlock()
	return user, nil
}

// Login installs a fresh token and identity and persists the token.
func (s *Store) Login(token string, user api.User) error {
	s.client.SetToken(token)
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("session: ensure dir: %w", err)
	}
	raw, err := yaml.Marshal(persisted{Token: token, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("session: encode token: %w", err)
	}
	if err := os.WriteFile(s.path(), raw, 0o600); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	return nil
}

// Logout clears both persisted and in-memory state. Terminal until the next
// successful login.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	s.client.SetToken("")
	s.discard()
}

// UpdateUser replaces the stored identity after a profile edit.
func (s *Store) UpdateUser(user api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user = &user
	}
}

// User returns the current identity, or nil when unauthenticated.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UserID returns the current user's id, or "" when unauthenticated.
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// Authenticated reports whether both an identity and a token are held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *Store) path() string {
	return filepath.Join(s.dir, tokenFile)
}

func (s *Store) discard() {
	_ = os.Remove(s.path())
}
