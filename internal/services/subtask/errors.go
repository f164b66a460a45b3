package subtask

import "errors"

// Domain errors for subtask service
var (
	// Validation errors
	ErrEmptyName        = errors.New("subtask name cannot be empty")
	ErrNameTooLong      = errors.New("subtask name cannot exceed 60 characters")
	ErrInvalidSubtaskID = errors.New("invalid subtask ID")
	ErrInvalidTodoID    = errors.New("invalid todo ID")

	// Business logic errors
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrTodoNotFound    = errors.New("todo not found")
)
