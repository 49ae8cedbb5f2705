package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// AuthService implements registration, login and session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

// Register creates a new account with the USER role. Input shape validation
// (lengths, email format) happens at the transport layer; uniqueness is
// enforced here via the repository.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.createUser(ctx, username, email, password, domain.RoleUser)
}

// BootstrapAdmin creates the first ADMIN account. It refuses to run once any
// admin exists, so the system has exactly one way to mint its first
// administrator.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, email, password string) (*domain.User, error) {
	n, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domain.ErrAdminExists
	}

	admin, err := s.createUser(ctx, username, email, password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", admin.Username).Msg("bootstrap admin created")
	return admin, nil
}

func (s *AuthService) createUser(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an opaque session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	tok, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.LoginResult{Token: tok, User: user}, nil
}

// Logout destroys the session for token. Destroying an unknown token is a
// no-op, so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, tok string) error {
	return s.sessions.Destroy(ctx, tok)
}
