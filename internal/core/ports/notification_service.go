package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// NotificationService defines the user-facing notification use cases plus the
// append operation invoked by the delivery pipeline.
type NotificationService interface {
	// Append inserts a notification record. No deduplication.
	Append(ctx context.Context, input NotificationInput) (*domain.Notification, error)
	// ListFor returns the caller's notifications, most recent first.
	ListFor(ctx context.Context, caller *domain.User) ([]*domain.Notification, error)
	// MarkRead flips the read flag on one of the caller's notifications.
	// Marking another user's notification fails with domain.ErrForbidden.
	MarkRead(ctx context.Context, caller *domain.User, id string) error
}
