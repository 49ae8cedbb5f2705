package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// NotificationService implements the notification sink.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// Append inserts a notification record. Pure insert, no deduplication.
func (s *NotificationService) Append(ctx context.Context, input ports.NotificationInput) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, n)
}

// ListFor returns the caller's notifications, most recent first.
func (s *NotificationService) ListFor(ctx context.Context, caller *domain.User) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, caller.ID)
}

// MarkRead flips the read flag on one of the caller's notifications.
// The repository update is scoped to the caller, so a hit on someone else's
// notification id surfaces as Forbidden rather than silently succeeding.
func (s *NotificationService) MarkRead(ctx context.Context, caller *domain.User, id string) error {
	err := s.repo.MarkRead(ctx, id, caller.ID)
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrNotificationNotFound) {
		// Distinguish "no such notification" from "not yours".
		if _, findErr := s.repo.FindByID(ctx, id); findErr == nil {
			return domain.ErrForbidden
		}
	}
	return err
}
