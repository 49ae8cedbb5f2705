package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// Notifier abstracts the notification pipeline (the sharded dispatcher in
// production, a direct write or a recording stub in tests).
type Notifier interface {
	Notify(input ports.NotificationInput)
}

// RoleRequestService implements the role elevation workflow.
//
// The PENDING → terminal transition is guarded by the repository's atomic
// conditional update, so double-resolution always fails with
// domain.ErrRequestAlreadyResolved no matter how the calls interleave.
type RoleRequestService struct {
	requests ports.RoleRequestRepository
	users    ports.UserRepository
	notifier Notifier
	log      zerolog.Logger
}

func NewRoleRequestService(
	requests ports.RoleRequestRepository,
	users ports.UserRepository,
	notifier Notifier,
	log zerolog.Logger,
) *RoleRequestService {
	return &RoleRequestService{
		requests: requests,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// Submit files a new elevation request for the caller. The caller's role is
// snapshotted into the request and never recomputed.
func (s *RoleRequestService) Submit(ctx context.Context, caller *domain.User, requested domain.Role, justification string) (*domain.RoleRequest, error) {
	// Admins have no higher role to request. The UI never offers this, but
	// the workflow enforces it as well.
	if caller.Role == domain.RoleAdmin {
		return nil, domain.ErrRoleRequestNotAllowed
	}

	if !domain.CanRequestRole(caller.Role, requested) {
		return nil, domain.ErrInvalidRoleRequested
	}

	// Friendly pre-check. The storage-level uniqueness constraint is the
	// actual guard against concurrent submissions.
	pending, err := s.requests.HasPending(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrPendingRequestExists
	}

	req := &domain.RoleRequest{
		UserID:        caller.ID,
		RequestedRole: requested,
		CurrentRole:   caller.Role,
		Justification: justification,
		Status:        domain.RequestStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.RoleRequestsSubmittedTotal.WithLabelValues(string(requested)).Inc()
	s.log.Info().
		Str("request_id", created.ID).
		Str("user_id", caller.ID).
		Str("requested_role", string(requested)).
		Msg("role request submitted")

	return created, nil
}

// Approve resolves a PENDING request and elevates the requester's role.
// The transition and the role mutation form one logical unit: when the role
// update fails, the request is reopened so it never sits APPROVED without the
// role change having happened.
func (s *RoleRequestService) Approve(ctx context.Context, reviewer *domain.User, id string) (*domain.RoleRequest, error) {
	resolved, err := s.requests.Resolve(ctx, id, domain.RequestStatusApproved, reviewer.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if _, err := s.users.UpdateRole(ctx, resolved.UserID, resolved.RequestedRole); err != nil {
		if reopenErr := s.requests.Reopen(ctx, id); reopenErr != nil {
			s.log.Error().Err(reopenErr).Str("request_id", id).Msg("failed to reopen request after role update failure")
		}
		return nil, fmt.Errorf("approve role request: update role: %w", err)
	}

	s.notifier.Notify(ports.NotificationInput{
		UserID:  resolved.UserID,
		Title:   "Role Request Approved",
		Message: fmt.Sprintf("Your request for %s role has been approved.", resolved.RequestedRole),
		Type:    domain.NotificationSuccess,
	})

	metrics.RoleRequestsResolvedTotal.WithLabelValues("approved").Inc()
	s.log.Info().
		Str("request_id", id).
		Str("user_id", resolved.UserID).
		Str("new_role", string(resolved.RequestedRole)).
		Str("reviewed_by", reviewer.ID).
		Msg("role request approved")

	return resolved, nil
}

// Reject resolves a PENDING request without touching the requester's role.
func (s *RoleRequestService) Reject(ctx context.Context, reviewer *domain.User, id string) (*domain.RoleRequest, error) {
	resolved, err := s.requests.Resolve(ctx, id, domain.RequestStatusRejected, reviewer.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ports.NotificationInput{
		UserID:  resolved.UserID,
		Title:   "Role Request Rejected",
		Message: fmt.Sprintf("Your request for %s role has been rejected.", resolved.RequestedRole),
		Type:    domain.NotificationError,
	})

	metrics.RoleRequestsResolvedTotal.WithLabelValues("rejected").Inc()
	s.log.Info().
		Str("request_id", id).
		Str("user_id", resolved.UserID).
		Str("reviewed_by", reviewer.ID).
		Msg("role request rejected")

	return resolved, nil
}

// ListFor returns the caller's own requests, or every request for admins.
func (s *RoleRequestService) ListFor(ctx context.Context, caller *domain.User) ([]*domain.RoleRequest, error) {
	if caller.Role == domain.RoleAdmin {
		return s.requests.ListAll(ctx)
	}
	return s.requests.ListByUser(ctx, caller.ID)
}

// ListPending returns all PENDING requests for the admin review queue.
func (s *RoleRequestService) ListPending(ctx context.Context) ([]*domain.RoleRequest, error) {
	return s.requests.ListPending(ctx)
}
