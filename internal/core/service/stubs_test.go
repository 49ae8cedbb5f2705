package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. The stubs mirror
// the guarantees of the real Mongo repositories: uniqueness constraints and
// the atomic PENDING → terminal transition.
// ---------------------------------------------------------------------------

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	mu            sync.Mutex
	seq           int
	users         map[string]*domain.User
	updateRoleErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateRoleErr != nil {
		return nil, r.updateRoleErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubTaskRepo struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	clone := cloneTask(task)
	clone.ID = fmt.Sprintf("t%d", r.seq)
	r.tasks[clone.ID] = clone
	return cloneTask(clone), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, upd ports.TaskUpdate) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.AssignedToID != nil {
		t.AssignedToID = *upd.AssignedToID
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) ListAll(_ context.Context) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *stubTaskRepo) ListAssignedTo(_ context.Context, userID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.AssignedToID == userID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) ListCreatedBy(_ context.Context, userID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.CreatedByID == userID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tasks {
		if t.Status != domain.TaskStatusCompleted {
			n++
		}
	}
	return n, nil
}

type stubRequestRepo struct {
	mu       sync.Mutex
	seq      int
	requests map[string]*domain.RoleRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.RoleRequest)}
}

func cloneRequest(req *domain.RoleRequest) *domain.RoleRequest {
	clone := *req
	if req.ReviewedAt != nil {
		at := *req.ReviewedAt
		clone.ReviewedAt = &at
	}
	return &clone
}

// Create enforces the one-pending-request-per-user constraint, mirroring the
// partial unique index of the Mongo repository.
func (r *stubRequestRepo) Create(_ context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.UserID == req.UserID && existing.Status == domain.RequestStatusPending {
			return nil, domain.ErrPendingRequestExists
		}
	}
	r.seq++
	clone := cloneRequest(req)
	clone.ID = fmt.Sprintf("r%d", r.seq)
	r.requests[clone.ID] = clone
	return cloneRequest(clone), nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.RoleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *stubRequestRepo) ListByUser(_ context.Context, userID string) ([]*domain.RoleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.RoleRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) ListAll(_ context.Context) ([]*domain.RoleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.RoleRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, cloneRequest(req))
	}
	return out, nil
}

func (r *stubRequestRepo) ListPending(_ context.Context) ([]*domain.RoleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.RoleRequest
	for _, req := range r.requests {
		if req.Status == domain.RequestStatusPending {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) HasPending(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.UserID == userID && req.Status == domain.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

// Resolve performs the compare-and-swap under the stub's lock, mirroring the
// conditional FindOneAndUpdate of the Mongo repository.
func (r *stubRequestRepo) Resolve(_ context.Context, id string, status domain.RequestStatus, reviewerID string, reviewedAt time.Time) (*domain.RoleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	if req.Status != domain.RequestStatusPending {
		return nil, domain.ErrRequestAlreadyResolved
	}
	req.Status = status
	req.ReviewedByID = reviewerID
	at := reviewedAt
	req.ReviewedAt = &at
	return cloneRequest(req), nil
}

func (r *stubRequestRepo) Reopen(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Status = domain.RequestStatusPending
	req.ReviewedByID = ""
	req.ReviewedAt = nil
	return nil
}

func (r *stubRequestRepo) CountPending(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, req := range r.requests {
		if req.Status == domain.RequestStatusPending {
			n++
		}
	}
	return n, nil
}

type stubNotificationRepo struct {
	mu            sync.Mutex
	seq           int
	notifications []*domain.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	clone := *n
	clone.ID = fmt.Sprintf("n%d", r.seq)
	r.notifications = append(r.notifications, &clone)
	out := clone
	return &out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

// ListByUser returns newest first (insertion order reversed).
func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			clone := *r.notifications[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

type stubSessionStore struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, user *domain.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	tok := fmt.Sprintf("tok%d", s.seq)
	s.sessions[tok] = &domain.Session{Token: tok, UserID: user.ID, User: *user}
	return tok, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, tok string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tok]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tok)
	return nil
}

// recordingNotifier captures the notifications emitted by the workflow.
type recordingNotifier struct {
	mu     sync.Mutex
	inputs []ports.NotificationInput
}

func (n *recordingNotifier) Notify(input ports.NotificationInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inputs = append(n.inputs, input)
}

func (n *recordingNotifier) recorded() []ports.NotificationInput {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ports.NotificationInput, len(n.inputs))
	copy(out, n.inputs)
	return out
}
