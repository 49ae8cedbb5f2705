package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// LoginResult carries the issued session token and the authenticated user.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService defines registration, login and session lifecycle use cases.
type AuthService interface {
	// Register creates a new account with the USER role.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and issues an opaque session token.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout destroys the session for the given token. Idempotent.
	Logout(ctx context.Context, token string) error
	// BootstrapAdmin creates the first ADMIN account. Fails with
	// domain.ErrAdminExists when any admin already exists.
	BootstrapAdmin(ctx context.Context, username, email, password string) (*domain.User, error)
}
