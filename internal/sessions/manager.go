package sessions

import (
	"sync"
	"time"

	"codeberg.org/nomoresql/server/internal/metrics"
	"github.com/google/uuid"
)

const cleanupInterval = 5 * time.Minute

// a chat session. ID and History never change after creation.
type Session struct {
	ID        string
	History   *History
	CreatedAt time.Time
}

type entry struct {
	session   *Session
	expiresAt time.Time
}

// manages chat sessions in memory with sliding expiry
type Manager struct {
	sessions map[string]*entry
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// returns a new session manager and starts its cleanup goroutine
func NewManager(ttl time.Duration) *Manager {
	m := newManager(ttl, time.Now)

	go m.cleanupExpiredSessions(cleanupInterval)

	return m
}

func newManager(ttl time.Duration, now func() time.Time) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      now,
		stop:     make(chan struct{}),
	}
}

// stops the cleanup goroutine
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// creates a new session
func (m *Manager) CreateSession() *Session {
	now := m.now()

	session := &Session{
		ID:        uuid.NewString(),
		History:   NewHistory(),
		CreatedAt: now,
	}

	m.mu.Lock()
	m.sessions[session.ID] = &entry{session: session, expiresAt: now.Add(m.ttl)}
	count := len(m.sessions)
	m.mu.Unlock()

	metrics.SetActiveSessions(count)

	return session
}

// retrieves a live session by ID
func (m *Manager) GetSession(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	if m.now().After(e.expiresAt) {
		return nil, ErrSessionExpired
	}

	return e.session, nil
}

// returns the live session with this ID, or a fresh one when it is missing or expired.
// the second result reports whether a session was created.
func (m *Manager) GetOrCreate(sessionID string) (*Session, bool) {
	if sessionID != "" {
		if session, err := m.GetSession(sessionID); err == nil {
			return session, false
		}
	}

	return m.CreateSession(), true
}

// extends a session's expiry
func (m *Manager) Touch(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	now := m.now()
	if now.After(e.expiresAt) {
		delete(m.sessions, sessionID)
		return ErrSessionExpired
	}

	e.expiresAt = now.Add(m.ttl)

	return nil
}

// removes a session
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	count := len(m.sessions)
	m.mu.Unlock()

	metrics.SetActiveSessions(count)
}

// returns the number of stored sessions
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func (m *Manager) cleanupExpiredSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Manager) removeExpired() {
	m.mu.Lock()
	now := m.now()

	for id, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, id)
		}
	}

	count := len(m.sessions)
	m.mu.Unlock()

	metrics.SetActiveSessions(count)
}
