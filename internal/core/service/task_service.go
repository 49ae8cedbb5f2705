package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// TaskService implements task CRUD with role-based scoping.
type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

// List returns the tasks visible to the caller. Managers see the union of
// tasks assigned to them and tasks they authored; "team" tasks are exactly
// the manager's authored tasks, not a role-wide view.
func (s *TaskService) List(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	switch caller.Role {
	case domain.RoleAdmin:
		return s.repo.ListAll(ctx)
	case domain.RoleManager:
		assigned, err := s.repo.ListAssignedTo(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		authored, err := s.repo.ListCreatedBy(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		return mergeTasks(assigned, authored), nil
	default:
		return s.repo.ListAssignedTo(ctx, caller.ID)
	}
}

// ListTeam returns the caller's authored tasks, or all tasks for admins.
// Role membership (MANAGER/ADMIN) is enforced by the route middleware.
func (s *TaskService) ListTeam(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	if domain.CanViewAllTasks(caller) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListCreatedBy(ctx, caller.ID)
}

// Create inserts a new task. The creator is always the caller, regardless of
// client input, and updatedAt starts equal to createdAt.
func (s *TaskService) Create(ctx context.Context, caller *domain.User, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		Priority:     priority,
		AssignedToID: input.AssignedToID,
		CreatedByID:  caller.ID,
		DueDate:      input.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.log.Info().Str("task_id", created.ID).Str("created_by", caller.ID).Msg("task created")

	return created, nil
}

// Update applies a partial update after the capability check: plain users may
// only update tasks assigned to them.
func (s *TaskService) Update(ctx context.Context, caller *domain.User, id string, upd ports.TaskUpdate) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanUpdateTask(caller, task) {
		return nil, domain.ErrForbidden
	}

	return s.repo.Update(ctx, id, upd)
}

// Delete removes a task after the capability check: plain users may only
// delete tasks they created, even when the task is assigned to them.
func (s *TaskService) Delete(ctx context.Context, caller *domain.User, id string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanDeleteTask(caller, task) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("task_id", id).Str("deleted_by", caller.ID).Msg("task deleted")
	return nil
}

// mergeTasks concatenates two task lists, dropping duplicates (a manager may
// both author and be assigned the same task).
func mergeTasks(a, b []*domain.Task) []*domain.Task {
	seen := make(map[string]struct{}, len(a))
	out := make([]*domain.Task, 0, len(a)+len(b))
	for _, t := range a {
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	for _, t := range b {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		out = append(out, t)
	}
	return out
}
