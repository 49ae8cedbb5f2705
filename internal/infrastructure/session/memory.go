// Package session provides the in-memory session store used for
// single-process deployments and tests. The Redis store in
// internal/infrastructure/db/redis is the production implementation of the
// same port.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/pkg/token"
)

// MemoryStore keeps sessions in a process-local map. Sessions do not survive
// restarts; each instance is explicitly constructed and injected, never a
// package-level global.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*domain.Session
}

// NewMemoryStore creates an empty store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*domain.Session),
	}
}

// Create issues a new opaque token and stores the user snapshot under it.
func (s *MemoryStore) Create(_ context.Context, user *domain.User) (string, error) {
	tok := token.NewSession()
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tok] = &domain.Session{
		Token:     tok,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	return tok, nil
}

// Resolve looks up the session for tok, dropping it when expired.
func (s *MemoryStore) Resolve(_ context.Context, tok string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[tok]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, tok)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}

	clone := *sess
	return &clone, nil
}

// Destroy removes the session. Idempotent.
func (s *MemoryStore) Destroy(_ context.Context, tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tok)
	return nil
}
