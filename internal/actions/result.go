package actions

// User-facing failure messages
const (
	MsgUnauthorized  = "Unauthorized"
	MsgNotFound      = "Not found"
	MsgInvalidInput  = "Invalid input."
	MsgFailedCreate  = "Failed to create."
	MsgFailedUpdate  = "Failed to update."
	MsgFailedDelete  = "Failed to delete."
	MsgAlreadyFirst  = "Already at the top."
	MsgAlreadyLast   = "Already at the bottom."
	MsgInternalError = "Something went wrong."
)

// Field messages shown next to form inputs
const (
	MsgTaskRequired       = "Task name is required."
	MsgTaskTooLong        = "Task name exceeds 60 characters."
	MsgDescriptionTooLong = "Task description exceeds 200 characters."
	MsgNameRequired       = "Name is required."
	MsgNameTooLong        = "Name is too long."
)

// Result is what every action returns: either Data, or an Error message with
// optional per-field messages for form display.
type Result[T any] struct {
	Data        T                   `json:"data,omitempty"`
	Error       string              `json:"error,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
}

// OK reports whether the action succeeded
func (r Result[T]) OK() bool {
	return r.Error == ""
}

// FieldError returns the first message for a field, or ""
func (r Result[T]) FieldError(field string) string {
	if msgs := r.FieldErrors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func success[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func failure[T any](msg string) Result[T] {
	return Result[T]{Error: msg}
}

func invalid[T any](fields map[string][]string) Result[T] {
	return Result[T]{Error: MsgInvalidInput, FieldErrors: fields}
}

// Message returns the failure message, or "" on success
func (r Result[T]) Message() string {
	return r.Error
}

// Fields returns the per-field messages of a validation failure
func (r Result[T]) Fields() map[string][]string {
	return r.FieldErrors
}

// Outcome is the untyped view of a Result, used by transports that only need
// to know whether an action succeeded.
type Outcome interface {
	OK() bool
	Message() string
	Fields() map[string][]string
}
