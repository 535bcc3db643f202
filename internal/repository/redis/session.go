package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/yasheela-alla/cartIt/pkg/errors"

	"github.com/yasheela-alla/cartIt/internal/domain"
)

const keyPrefix = "checkout:session:"

// SessionRepository implements repository.SessionRepository using Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a session by ID from Redis.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	key := keyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("checkout session", sessionID)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// Save persists a session to Redis with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, session *domain.CheckoutSession) error {
	key := keyPrefix + session.ID

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Delete removes a session from Redis by ID.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}

	return nil
}
