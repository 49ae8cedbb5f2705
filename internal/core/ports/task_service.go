package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task. The creator is
// always the authenticated caller, never client input.
type CreateTaskInput struct {
	Title        string
	Description  string
	Status       domain.TaskStatus
	Priority     domain.TaskPriority
	AssignedToID string
	DueDate      *time.Time
}

// TaskService defines task use cases with role-based scoping.
type TaskService interface {
	// List returns the tasks visible to the caller: all for admins, assigned
	// plus authored for managers, assigned only for users.
	List(ctx context.Context, caller *domain.User) ([]*domain.Task, error)
	// ListTeam returns the caller's authored tasks, or all tasks for admins.
	ListTeam(ctx context.Context, caller *domain.User) ([]*domain.Task, error)
	Create(ctx context.Context, caller *domain.User, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, caller *domain.User, id string, upd TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, caller *domain.User, id string) error
}
