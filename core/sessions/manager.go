// Package sessions tracks conversational session lifecycles independent of
// any single pipeline run.
package sessions

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownSession = errors.New("unknown session")
	// ErrSessionAlreadyActive is returned when starting a session while a
	// different one is active. The caller holds the explicit active handle
	// and must end it first; nothing is overwritten silently.
	ErrSessionAlreadyActive = errors.New("another session is already active")
)

// Manager creates, mutates and garbage-collects sessions. At most one
// session is active at a time; activation is handed out as an explicit
// session handle rather than ambient state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	activeID string
}

func NewManager() *Manager {
	return &Manager{sessions: map[string]*Session{}}
}

// CreateSession registers a new idle session and returns its snapshot.
func (m *Manager) CreateSession(config Config) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{
		ID:     uuid.NewString(),
		Config: config,
		State:  StateIdle,
	}
	m.sessions[session.ID] = session
	return session.snapshot()
}

// Session returns a snapshot of the session with the given id.
func (m *Manager) Session(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	return session.snapshot(), true
}

// StartSession moves the session to listening, records its start time and
// returns it as the active handle. Starting while a different session is
// active fails with [ErrSessionAlreadyActive].
func (m *Manager) StartSession(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("failed to start session %q: %w", id, ErrUnknownSession)
	}
	if m.activeID != "" && m.activeID != id {
		return Session{}, fmt.Errorf("failed to start session %q: %w", id, ErrSessionAlreadyActive)
	}

	now := time.Now()
	session.State = StateListening
	session.StartedAt = &now
	m.activeID = id
	return session.snapshot(), nil
}

// EndSession moves the session to ended, records its end time and releases
// the active handle if this session held it.
func (m *Manager) EndSession(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("failed to end session %q: %w", id, ErrUnknownSession)
	}

	now := time.Now()
	session.State = StateEnded
	session.EndedAt = &now
	if m.activeID == id {
		m.activeID = ""
	}
	return session.snapshot(), nil
}

// UpdateSessionState sets the session state directly. Unknown ids are
// ignored.
func (m *Manager) UpdateSessionState(id string, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		session.State = state
	}
}

// AddTranscript appends a transcript to the session. Unknown ids are
// ignored.
func (m *Manager) AddTranscript(id string, transcript string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		session.Transcripts = append(session.Transcripts, transcript)
	}
}

// ActiveSession returns the session currently holding the active handle.
func (m *Manager) ActiveSession() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return Session{}, false
	}
	session, ok := m.sessions[m.activeID]
	if !ok {
		return Session{}, false
	}
	return session.snapshot(), true
}

// AllSessions returns snapshots of every tracked session, in no particular
// order.
func (m *Manager) AllSessions() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		all = append(all, session.snapshot())
	}
	return all
}

// Cleanup removes sessions that ended before the cutoff and returns how many
// were removed. Sessions that never ended are kept regardless of age.
func (m *Manager) Cleanup(olderThan time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for id, session := range m.sessions {
		if session.EndedAt == nil {
			continue
		}
		if session.EndedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
