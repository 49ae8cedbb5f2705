package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/api/middleware"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type stubTaskService struct {
	listFn     func(ctx context.Context, caller *domain.User) ([]*domain.Task, error)
	listTeamFn func(ctx context.Context, caller *domain.User) ([]*domain.Task, error)
	createFn   func(ctx context.Context, caller *domain.User, input ports.CreateTaskInput) (*domain.Task, error)
	updateFn   func(ctx context.Context, caller *domain.User, id string, upd ports.TaskUpdate) (*domain.Task, error)
	deleteFn   func(ctx context.Context, caller *domain.User, id string) error
}

func (s *stubTaskService) List(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	return s.listFn(ctx, caller)
}

func (s *stubTaskService) ListTeam(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	return s.listTeamFn(ctx, caller)
}

func (s *stubTaskService) Create(ctx context.Context, caller *domain.User, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, caller, input)
}

func (s *stubTaskService) Update(ctx context.Context, caller *domain.User, id string, upd ports.TaskUpdate) (*domain.Task, error) {
	return s.updateFn(ctx, caller, id, upd)
}

func (s *stubTaskService) Delete(ctx context.Context, caller *domain.User, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func TestTaskHandler_Create_Success(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(_ context.Context, caller *domain.User, input ports.CreateTaskInput) (*domain.Task, error) {
			if input.Title != "write report" || input.Priority != domain.TaskPriorityHigh {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{
				ID:          "t1",
				Title:       input.Title,
				Status:      domain.TaskStatusTodo,
				Priority:    input.Priority,
				CreatedByID: caller.ID,
			}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"write report","priority":"HIGH"}`)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u1", Role: domain.RoleUser})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["createdById"] != "u1" {
		t.Fatalf("expected creator forced to caller, got %+v", resp)
	}
}

func TestTaskHandler_Create_InvalidStatus(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(context.Context, *domain.User, ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"x","status":"DONE"}`)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u1", Role: domain.RoleUser})

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Update_PartialFields(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(_ context.Context, _ *domain.User, id string, upd ports.TaskUpdate) (*domain.Task, error) {
			if id != "t1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if upd.Status == nil || *upd.Status != domain.TaskStatusCompleted {
				t.Fatalf("expected status update, got %+v", upd)
			}
			if upd.Title != nil || upd.Priority != nil {
				t.Fatalf("untouched fields must stay nil: %+v", upd)
			}
			return &domain.Task{ID: id, Status: domain.TaskStatusCompleted}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/api/tasks/t1", `{"status":"COMPLETED"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u1", Role: domain.RoleUser})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_Forbidden(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(context.Context, *domain.User, string, ports.TaskUpdate) (*domain.Task, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/api/tasks/t1", `{"status":"COMPLETED"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u2", Role: domain.RoleUser})

	if err := h.Update(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	var deleted string
	stub := &stubTaskService{
		deleteFn: func(_ context.Context, _ *domain.User, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/tasks/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u1", Role: domain.RoleUser})

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "t1" {
		t.Fatalf("expected t1 deleted, got %q", deleted)
	}
}

func TestTaskHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(context.Context, *domain.User) ([]*domain.Task, error) {
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/tasks", "")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u1", Role: domain.RoleUser})

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}
