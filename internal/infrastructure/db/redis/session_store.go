package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/pkg/token"
)

const sessionKeyPrefix = "session:"

// SessionStore is the Redis-backed session registry.
// Key format: session:<token>, value: JSON-encoded session, expiry via TTL.
// Sessions survive process restarts and are shared across instances.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create issues a new opaque token and stores the user snapshot under it.
func (s *SessionStore) Create(ctx context.Context, user *domain.User) (string, error) {
	tok := token.NewSession()
	now := time.Now().UTC()

	sess := domain.Session{
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(tok), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return tok, nil
}

// Resolve looks up the session for tok. Expired keys are evicted by Redis
// itself, so a miss covers both unknown and expired tokens.
func (s *SessionStore) Resolve(ctx context.Context, tok string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key(tok)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	sess.Token = tok
	return &sess, nil
}

// Destroy removes the session. Deleting an unknown key is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, tok string) error {
	if err := s.client.Del(ctx, s.key(tok)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(tok string) string {
	return sessionKeyPrefix + tok
}
