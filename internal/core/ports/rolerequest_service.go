package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// NotificationInput is the payload handed to the notification pipeline when a
// workflow transition produces a message for a user.
type NotificationInput struct {
	UserID  string
	Title   string
	Message string
	Type    domain.NotificationType
}

// RoleRequestService drives the role elevation workflow:
// submission by the requester, resolution by an admin, and the approval side
// effects (role mutation plus notification).
type RoleRequestService interface {
	// Submit files a new elevation request for the caller.
	Submit(ctx context.Context, caller *domain.User, requested domain.Role, justification string) (*domain.RoleRequest, error)
	// Approve resolves a PENDING request, elevates the requester's role and
	// notifies them. Exactly one of two concurrent resolutions succeeds.
	Approve(ctx context.Context, reviewer *domain.User, id string) (*domain.RoleRequest, error)
	// Reject resolves a PENDING request without touching the requester's role.
	Reject(ctx context.Context, reviewer *domain.User, id string) (*domain.RoleRequest, error)
	// ListFor returns the caller's own requests, or every request for admins.
	ListFor(ctx context.Context, caller *domain.User) ([]*domain.RoleRequest, error)
	// ListPending returns all PENDING requests (admin review queue).
	ListPending(ctx context.Context) ([]*domain.RoleRequest, error)
}
