package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/yasheela-alla/cartIt/pkg/errors"

	"github.com/yasheela-alla/cartIt/internal/domain"
)

// SessionRepository implements repository.SessionRepository with in-memory
// storage. Sessions are ephemeral, held only for the lifetime of the process,
// and expire after the configured TTL.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// NewSessionRepository creates a new in-memory session repository.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]entry),
		ttl:      ttl,
	}
}

// Get retrieves a session by ID. Expired sessions are treated as not found.
func (r *SessionRepository) Get(_ context.Context, sessionID string) (*domain.CheckoutSession, error) {
	r.mu.RLock()
	e, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, apperrors.NotFound("checkout session", sessionID)
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(e.data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// Save persists a session, refreshing its TTL.
// Sessions are stored as JSON so callers never share memory with the store.
func (r *SessionRepository) Save(_ context.Context, session *domain.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	r.mu.Lock()
	r.sessions[session.ID] = entry{data: data, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()

	return nil
}

// Delete removes a session by ID.
func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, including any not yet swept
// after expiry.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
