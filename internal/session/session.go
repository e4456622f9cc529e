// Package session holds the persisted login session: one JSON record with
// the current user and bearer token. Absent or malformed storage always
// means "logged out", never an error.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	defaultDirName  = "hrp"
	defaultFileName = "session.json"

	filePerm = 0o600
)

// User is the authenticated account. The backend payload is opaque beyond
// email and name.
type User struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Session is the persisted {user, token} record.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// LoginAPI is the slice of the backend client the store needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (any, error)
	Register(ctx context.Context, username, email, password string) error
}

type Store struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	current *Session
}

// DefaultPath returns the session file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}

	return filepath.Join(dir, defaultDirName, defaultFileName), nil
}

// New creates a store bound to the given file and bootstraps the in-memory
// session from it. A malformed file is cleared and treated as logged out.
func New(path string, logger *zap.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.current = s.load()

	return s
}

func (s *Store) load() *Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Malformed storage is not worth surfacing: drop it and start
		// logged out.
		s.logger.Debug("clearing malformed session file", zap.String("path", s.path), zap.Error(err))
		os.Remove(s.path)
		return nil
	}

	// A partial record is no session: the token only counts alongside the
	// user it was issued to.
	if session.Token == "" || session.User == nil {
		return nil
	}

	return &session
}

// Authenticated reports whether both a user and a token are present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current != nil && s.current.User != nil && s.current.Token != ""
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Current returns the in-memory session, nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Login authenticates against the backend, extracts the token from the
// drifting response shape and persists the session.
func (s *Store) Login(ctx context.Context, api LoginAPI, email, password string) (*User, error) {
	raw, err := api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	session, err := sessionFromResponse(raw, email)
	if err != nil {
		return nil, err
	}

	if err := s.persist(session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	return session.User, nil
}

// Register creates an account. It deliberately does not log the user in.
func (s *Store) Register(ctx context.Context, api LoginAPI, name, email, password string) error {
	username := strings.TrimSpace(name)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	if err := api.Register(ctx, username, email, password); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

// Logout clears the persisted record and the in-memory state. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	os.Remove(s.path)
}

func (s *Store) persist(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, filePerm); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}

// sessionFromResponse interprets the login response. Token field fallback
// order: token, accessToken, jwt, then the whole body when it is a bare
// string. The user defaults to the login email when the backend omits it.
func sessionFromResponse(raw any, email string) (*Session, error) {
	session := &Session{User: &User{Email: email}}

	switch body := raw.(type) {
	case string:
		session.Token = body
	case map[string]any:
		for _, field := range []string{"token", "accessToken", "jwt"} {
			if token, ok := body[field].(string); ok && token != "" {
				session.Token = token
				break
			}
		}

		if user, ok := body["user"].(map[string]any); ok {
			if v, ok := user["email"].(string); ok && v != "" {
				session.User.Email = v
			}
			if v, ok := user["name"].(string); ok {
				session.User.Name = v
			}
		}
	}

	if session.Token == "" {
		return nil, fmt.Errorf("login response carries no token")
	}

	return session, nil
}
