package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	PendingRequests int64 `json:"pendingRequests"`
	ActiveTasks     int64 `json:"activeTasks"`
}

// UserService defines the admin-facing user operations.
type UserService interface {
	// List returns all users (password hashes never leave the domain type).
	List(ctx context.Context) ([]*domain.User, error)
	Stats(ctx context.Context) (*Stats, error)
}
