package todo

import "errors"

// Domain errors for todo service
var (
	// Validation errors
	ErrEmptyTask          = errors.New("task name is required")
	ErrTaskTooLong        = errors.New("task name cannot exceed 60 characters")
	ErrDescriptionTooLong = errors.New("task description cannot exceed 200 characters")
	ErrInvalidTodoID      = errors.New("invalid todo ID")
	ErrInvalidWorkspaceID = errors.New("invalid workspace ID")

	// Business logic errors
	ErrTodoNotFound      = errors.New("todo not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
)
