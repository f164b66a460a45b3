package workspace

import "errors"

// Domain errors for workspace service
var (
	// Validation errors
	ErrEmptyName          = errors.New("workspace name cannot be empty")
	ErrNameTooLong        = errors.New("workspace name cannot exceed 40 characters")
	ErrInvalidWorkspaceID = errors.New("invalid workspace ID")
	ErrEmptyOwner         = errors.New("workspace owner is required")
	ErrEmptyPublicID      = errors.New("preview id is required")

	// Business logic errors
	ErrWorkspaceNotFound = errors.New("workspace not found")
)
