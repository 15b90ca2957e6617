package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one MCP client connection established by initialize.
type Session struct {
	ID              string            `json:"id"`
	ClientInfo      map[string]string `json:"client_info,omitempty"`
	ProtocolVersion string            `json:"protocol_version"`
	CreatedAt       time.Time         `json:"created_at"`
	LastSeen        time.Time         `json:"last_seen"`
}

// Recorder receives session lifecycle metrics.
type Recorder interface {
	SetSessionsActive(n int)
	IncSessionsCreated()
	AddSessionsExpired(n int)
}

// Manager tracks live MCP sessions and expires idle ones.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idle     time.Duration
	logger   *zap.Logger
	metrics  Recorder
	now      func() time.Time
}

// NewManager creates a session manager. A non-positive idle timeout
// disables expiry.
func NewManager(idle time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		idle:     idle,
		logger:   logger,
		now:      time.Now,
	}
}

// WithMetrics attaches a metrics recorder.
func (m *Manager) WithMetrics(r Recorder) *Manager {
	m.metrics = r
	return m
}

// Create opens a new session.
func (m *Manager) Create(clientInfo map[string]string, protocolVersion string) *Session {
	now := m.now()
	s := &Session{
		ID:              uuid.New().String(),
		ClientInfo:      clientInfo,
		ProtocolVersion: protocolVersion,
		CreatedAt:       now,
		LastSeen:        now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsCreated()
		m.metrics.SetSessionsActive(count)
	}
	m.logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.String("protocol_version", protocolVersion),
		zap.Any("client", clientInfo))
	return s
}

// Get returns a copy of the session and marks it as seen.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	s.LastSeen = m.now()
	return *s, nil
}

// Delete terminates a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	count := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if m.metrics != nil {
		m.metrics.SetSessionsActive(count)
	}
	m.logger.Info("session terminated", zap.String("session_id", id))
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap removes sessions idle since before now minus the idle timeout and
// returns how many were removed.
func (m *Manager) Reap(now time.Time) int {
	if m.idle <= 0 {
		return 0
	}
	cutoff := now.Add(-m.idle)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if len(expired) == 0 {
		return 0
	}
	if m.metrics != nil {
		m.metrics.AddSessionsExpired(len(expired))
		m.metrics.SetSessionsActive(count)
	}
	m.logger.Info("expired idle sessions", zap.Int("count", len(expired)), zap.Strings("session_ids", expired))
	return len(expired)
}

// Start runs the expiry loop until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	if m.idle <= 0 {
		return
	}
	interval := m.idle / 2
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap(m.now())
		}
	}
}
