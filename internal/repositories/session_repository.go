package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/japanesestudent/learn-navigator/internal/session"
)

const sessionKeyPrefix = "navigator:session:"

type sessionRepository struct {
	redis redis.Cmdable
	ttl   time.Duration
}

// NewSessionRepository creates a Redis backed session store.
// Every save refreshes the key expiration to ttl.
func NewSessionRepository(rdb redis.Cmdable, ttl time.Duration) *sessionRepository {
	return &sessionRepository{
		redis: rdb,
		ttl:   ttl,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Get retrieves a session by ID
//
// If the key does not exist or has expired, session.ErrSessionNotFound is returned.
func (r *sessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &s, nil
}

// Save stores a session as JSON with the configured expiration
func (r *sessionRepository) Save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.redis.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Delete removes a session
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
