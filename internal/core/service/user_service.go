package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// UserService implements the admin-facing user operations.
type UserService struct {
	users    ports.UserRepository
	requests ports.RoleRequestRepository
	tasks    ports.TaskRepository
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	requests ports.RoleRequestRepository,
	tasks ports.TaskRepository,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, requests: requests, tasks: tasks, log: log}
}

// List returns all users, most recently created first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Stats aggregates the admin dashboard counters. Active tasks are those not
// yet completed.
func (s *UserService) Stats(ctx context.Context) (*ports.Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.requests.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.tasks.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.Stats{
		TotalUsers:      totalUsers,
		PendingRequests: pending,
		ActiveTasks:     active,
	}, nil
}
