// Package session tracks who is signed in to the terminal client. A
// session is created at login, optionally remembered between runs, and
// cleared at logout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vinayk98/mini-crm/internal/credential"
	"github.com/vinayk98/mini-crm/internal/model"
)

const sessionKey = "session"

// ErrNoSession is returned when nobody is signed in.
var ErrNoSession = errors.New("no active session")

// Session is an authenticated user.
type Session struct {
	User       model.User `json:"user"`
	SignedInAt time.Time  `json:"signedInAt"`
}

// Persister remembers a session between runs.
type Persister interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Manager owns the current session. The zero value is not usable; call
// NewManager.
type Manager struct {
	persist Persister
	now     func() time.Time

	mu      sync.Mutex
	current *Session
}

// NewManager creates a manager. persist may be nil, in which case sessions
// last only for the life of the process.
func NewManager(persist Persister) *Manager {
	return &Manager{persist: persist, now: time.Now}
}

// Start signs u in and remembers the session when a persister is set.
// A persistence failure is returned but the in-memory session stays active.
func (m *Manager) Start(u model.User) (Session, error) {
	s := Session{User: u, SignedInAt: m.now().UTC()}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	if m.persist == nil {
		return s, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return s, fmt.Errorf("encoding session: %w", err)
	}
	if err := m.persist.Set(sessionKey, data); err != nil {
		return s, fmt.Errorf("remembering session: %w", err)
	}
	return s, nil
}

// StartTransient signs u in for this run only and forgets any session
// remembered by an earlier run.
func (m *Manager) StartTransient(u model.User) (Session, error) {
	s := Session{User: u, SignedInAt: m.now().UTC()}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	if m.persist == nil {
		return s, nil
	}
	if err := m.persist.Delete(sessionKey); err != nil {
		return s, fmt.Errorf("forgetting session: %w", err)
	}
	return s, nil
}

// Restore loads a remembered session. It returns ErrNoSession when there
// is nothing to restore.
func (m *Manager) Restore() (Session, error) {
	if m.persist == nil {
		return Session{}, ErrNoSession
	}
	data, err := m.persist.Get(sessionKey)
	if errors.Is(err, credential.ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("restoring session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.User.ID == 0 {
		return Session{}, ErrNoSession
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return s, nil
}

// Current returns the active session.
func (m *Manager) Current() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, ErrNoSession
	}
	return *m.current, nil
}

// End signs out and forgets any remembered session.
func (m *Manager) End() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if m.persist == nil {
		return nil
	}
	if err := m.persist.Delete(sessionKey); err != nil {
		return fmt.Errorf("forgetting session: %w", err)
	}
	return nil
}
