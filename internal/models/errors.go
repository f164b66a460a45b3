package models

import "errors"

// Domain-specific errors for reordering operations
var (
	// ErrAlreadyFirst indicates that the item is already at the top of its list
	ErrAlreadyFirst = errors.New("item is already at the top of the list")

	// ErrAlreadyLast indicates that the item is already at the bottom of its list
	ErrAlreadyLast = errors.New("item is already at the bottom of the list")
)
