package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// ListByUser returns the user's notifications, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	// MarkRead flips the read flag of the notification owned by userID.
	// Idempotent; returns domain.ErrNotificationNotFound when no notification
	// with that id belongs to the user.
	MarkRead(ctx context.Context, id, userID string) error
}
