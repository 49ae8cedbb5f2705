package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// TaskUpdate carries a partial task update. Nil fields are left untouched.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	AssignedToID *string
	DueDate      *time.Time
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Update applies the non-nil fields of upd and refreshes updated_at.
	// Returns domain.ErrTaskNotFound when the task is absent.
	Update(ctx context.Context, id string, upd TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// ListAll returns every task, most recently created first.
	ListAll(ctx context.Context) ([]*domain.Task, error)
	// ListAssignedTo returns tasks assigned to the given user.
	ListAssignedTo(ctx context.Context, userID string) ([]*domain.Task, error)
	// ListCreatedBy returns tasks authored by the given user.
	ListCreatedBy(ctx context.Context, userID string) ([]*domain.Task, error)
	// CountActive counts tasks that are not completed.
	CountActive(ctx context.Context) (int64, error)
}
