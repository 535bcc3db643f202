package repository

import (
	"context"

	"github.com/yasheela-alla/cartIt/internal/domain"
)

// SessionRepository defines the interface for checkout session storage.
type SessionRepository interface {
	// Get retrieves a session by its ID.
	Get(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)

	// Save persists a session, overwriting any existing session with the same ID.
	Save(ctx context.Context, session *domain.CheckoutSession) error

	// Delete removes a session by its ID.
	Delete(ctx context.Context, sessionID string) error
}
