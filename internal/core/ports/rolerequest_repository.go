package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// RoleRequestRepository defines persistence operations for role requests.
//
// Resolve is the single atomic guard for the PENDING → terminal transition:
// implementations must perform a conditional update that only matches a
// PENDING request, so that of two concurrent resolution attempts exactly one
// wins and the loser observes domain.ErrRequestAlreadyResolved.
type RoleRequestRepository interface {
	// Create inserts a new request. Returns domain.ErrPendingRequestExists
	// when the user already has a pending request (enforced atomically by
	// the storage layer, not by a fetch-then-scan).
	Create(ctx context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error)
	FindByID(ctx context.Context, id string) (*domain.RoleRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.RoleRequest, error)
	ListAll(ctx context.Context) ([]*domain.RoleRequest, error)
	ListPending(ctx context.Context) ([]*domain.RoleRequest, error)
	// HasPending reports whether the user currently has a PENDING request.
	HasPending(ctx context.Context, userID string) (bool, error)
	// Resolve atomically moves a PENDING request to the given terminal status
	// and stamps the review fields. Returns domain.ErrRequestNotFound when no
	// request with that id exists and domain.ErrRequestAlreadyResolved when
	// the request exists but is no longer PENDING.
	Resolve(ctx context.Context, id string, status domain.RequestStatus, reviewerID string, reviewedAt time.Time) (*domain.RoleRequest, error)
	// Reopen reverts a resolved request back to PENDING and clears the review
	// fields. Used as compensation when the role mutation after an approval
	// fails.
	Reopen(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int64, error)
}
