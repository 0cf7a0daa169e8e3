// Package session holds the authenticated session: the bearer token, the
// user it belongs to, and its expiry. The triple is always replaced as a
// whole so no reader can observe a token paired with the wrong user.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// User identifies the authenticated user.
type User struct {
	Username string `json:"username"`
	UserType string `json:"userType"` // "customer" or "admin"
}

// Session is the token+user+expiry triple.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiryTime"`
}

// ExpiredAt reports whether the session is past its expiry at the given time.
func (s Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store keeps the current session in memory and mirrors it to a small JSON
// cache file so a restart does not force a fresh login. The cache file is
// the only local persistence in the application.
type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current *Session
}

// NewStore creates a session store backed by the cache file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Load restores a cached session from disk. A missing file is not an error;
// a malformed or expired cache is discarded.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session cache: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		s.logger.Warn("discarding malformed session cache", zap.String("path", s.path))
		return s.Clear()
	}
	if sess.ExpiredAt(s.now()) {
		s.logger.Info("cached session expired, clearing",
			zap.String("username", sess.User.Username))
		return s.Clear()
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.logger.Info("session restored from cache",
		zap.String("username", sess.User.Username),
		zap.Time("expires_at", sess.ExpiresAt))
	return nil
}

// Set replaces the current session atomically and persists it.
func (s *Store) Set(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("refusing to store session without a token")
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	return s.persist(sess)
}

// Clear drops the current session and removes the cache file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session cache: %w", err)
	}
	return nil
}

// Current returns the active session, if any. An expired session counts as
// absent.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.ExpiredAt(s.now()) {
		return Session{}, false
	}
	return *s.current, true
}

// Token returns the bearer token of the active session, if any.
func (s *Store) Token() (string, bool) {
	sess, ok := s.Current()
	if !ok {
		return "", false
	}
	return sess.Token, true
}

// persist writes the cache via a temp file + rename so a crash mid-write
// never leaves a truncated cache behind.
func (s *Store) persist(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create session temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close session temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session cache: %w", err)
	}
	return nil
}
