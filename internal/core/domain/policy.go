package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")

// CanUpdateTask reports whether u may modify t. Managers and admins may
// update any task; plain users only tasks assigned to them.
func CanUpdateTask(u *User, t *Task) bool {
	if u.Role != RoleUser {
		return true
	}
	return t.AssignedToID == u.ID
}

// CanDeleteTask reports whether u may delete t. Deletion checks the creator,
// not the assignee: a user assigned to someone else's task may update it but
// not delete it.
func CanDeleteTask(u *User, t *Task) bool {
	if u.Role != RoleUser {
		return true
	}
	return t.CreatedByID == u.ID
}

// CanResolveRoleRequest reports whether u may approve or reject role requests.
func CanResolveRoleRequest(u *User) bool {
	return u.Role == RoleAdmin
}

// CanViewAllTasks reports whether u sees every task regardless of ownership.
func CanViewAllTasks(u *User) bool {
	return u.Role == RoleAdmin
}
