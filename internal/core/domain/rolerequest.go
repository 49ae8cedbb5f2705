package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a role request.
// PENDING is the only non-terminal state; APPROVED and REJECTED are final.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// allowedElevations defines which roles each role may request.
var allowedElevations = map[Role][]Role{
	RoleUser:    {RoleManager, RoleAdmin},
	RoleManager: {RoleAdmin},
}

var ErrRequestNotFound = errors.New("role request not found")
var ErrPendingRequestExists = errors.New("pending role request already exists")
var ErrRequestAlreadyResolved = errors.New("role request already resolved")
var ErrInvalidRoleRequested = errors.New("invalid requested role")
var ErrRoleRequestNotAllowed = errors.New("role requests not allowed for admins")

// CanRequestRole reports whether a user holding role current may request
// elevation to requested.
func CanRequestRole(current, requested Role) bool {
	for _, allowed := range allowedElevations[current] {
		if allowed == requested {
			return true
		}
	}
	return false
}

// RoleRequest is a user-submitted proposal to elevate their own role,
// resolved by an admin. CurrentRole is a snapshot taken at submission time
// and is never recomputed.
type RoleRequest struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	RequestedRole Role          `json:"requestedRole"`
	CurrentRole   Role          `json:"currentRole"`
	Justification string        `json:"justification"`
	Status        RequestStatus `json:"status"`
	ReviewedByID  string        `json:"reviewedById,omitempty"`
	ReviewedAt    *time.Time    `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
