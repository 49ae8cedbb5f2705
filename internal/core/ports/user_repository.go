package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateRole sets the user's role and returns the updated record.
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	// List returns all users, most recently created first.
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// CountByRole counts users holding the given role.
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}
