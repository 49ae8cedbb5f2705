package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// SessionStore binds opaque bearer tokens to authenticated identities.
// Sessions expire after the store's TTL; Destroy is idempotent.
//
// The Redis implementation is the production store; an in-memory
// implementation serves single-process runs and tests.
type SessionStore interface {
	// Create issues a new token for the user and stores a snapshot of the
	// user record alongside it.
	Create(ctx context.Context, user *domain.User) (string, error)
	// Resolve looks up the session for token. Pure lookup, no side effects
	// beyond expiry cleanup. Returns domain.ErrSessionNotFound on a miss or
	// an expired session.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	// Destroy removes the session. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}
