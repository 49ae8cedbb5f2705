package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// RoleRequestHandler handles HTTP requests for the role elevation workflow.
type RoleRequestHandler struct {
	service ports.RoleRequestService
}

func NewRoleRequestHandler(service ports.RoleRequestService) *RoleRequestHandler {
	return &RoleRequestHandler{service: service}
}

type submitRoleRequestRequest struct {
	RequestedRole string `json:"requestedRole" validate:"required,oneof=MANAGER ADMIN"`
	Justification string `json:"justification" validate:"required"`
}

// Submit files a role elevation request for the caller.
//
// @Summary      Submit a role elevation request
// @Tags         role-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRoleRequestRequest  true  "Requested role and justification"
// @Success      201   {object}  domain.RoleRequest
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/role-requests [post]
func (h *RoleRequestHandler) Submit(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req submitRoleRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.Submit(c.Request().Context(), user, domain.Role(req.RequestedRole), req.Justification)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, request)
}

// List returns the caller's requests, or every request for admins.
//
// @Summary      List role requests
// @Tags         role-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RoleRequest
// @Failure      401  {object}  map[string]string
// @Router       /api/role-requests [get]
func (h *RoleRequestHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListFor(c.Request().Context(), user)
	if err != nil {
		return err
	}
	if requests == nil {
		requests = []*domain.RoleRequest{}
	}

	return c.JSON(http.StatusOK, requests)
}

// ListPending returns the admin review queue.
//
// @Summary      List pending role requests
// @Tags         role-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RoleRequest
// @Failure      403  {object}  map[string]string
// @Router       /api/role-requests/pending [get]
func (h *RoleRequestHandler) ListPending(c echo.Context) error {
	requests, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	if requests == nil {
		requests = []*domain.RoleRequest{}
	}

	return c.JSON(http.StatusOK, requests)
}

// Approve resolves a pending request, elevating the requester's role.
//
// @Summary      Approve a role request
// @Tags         role-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Role request ID"
// @Success      200  {object}  domain.RoleRequest
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/role-requests/{id}/approve [put]
func (h *RoleRequestHandler) Approve(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	request, err := h.service.Approve(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, request)
}

// Reject resolves a pending request without changing any role.
//
// @Summary      Reject a role request
// @Tags         role-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Role request ID"
// @Success      200  {object}  domain.RoleRequest
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/role-requests/{id}/reject [put]
func (h *RoleRequestHandler) Reject(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	request, err := h.service.Reject(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, request)
}
