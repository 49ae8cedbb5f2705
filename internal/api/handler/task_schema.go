package handler

import "time"

type createTaskRequest struct {
	Title        string     `json:"title"        validate:"required"`
	Description  string     `json:"description"`
	Status       string     `json:"status"       validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority     string     `json:"priority"     validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssignedToID string     `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
}

type updateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"   validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssignedToID *string    `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
}
