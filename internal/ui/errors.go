package ui

import "errors"

var (
	// ErrActionPending is returned when a mutation is attempted while another is in flight
	ErrActionPending = errors.New("another change is still being saved")

	// ErrInvalidForm is returned when local validation blocks a submission
	ErrInvalidForm = errors.New("form has errors")

	// ErrNothingOpen is returned when a model is used before it is opened
	ErrNothingOpen = errors.New("nothing is open")

	// ErrSubtaskNotListed is returned for subtask ids not in the open todo
	ErrSubtaskNotListed = errors.New("subtask is not in this todo")
)

// ActionError carries the message of a failed action. It has already been
// shown to the user as a toast.
type ActionError struct {
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}
