package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/thenoetrevino/countwave/internal/models"
)

// ErrUnknownAction is returned by Dispatch for names with no registered action
var ErrUnknownAction = errors.New("unknown action")

// route runs one action from a raw JSON body
type route func(ctx context.Context, raw []byte) Outcome

// bind adapts a typed handler to a route. The raw document, not the decoded
// struct, is what gets validated, so missing fields are reported as missing.
func bind[In, Out any](action, fallback string, fn handler[In, Out]) route {
	return func(ctx context.Context, raw []byte) Outcome {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return failure[Out](MsgInvalidInput)
		}
		var in In
		decodeErr := json.Unmarshal(raw, &in)

		return execute(ctx, action, doc, in, fallback, func(ctx context.Context, user *models.User, in In) (Out, error) {
			if decodeErr != nil {
				var zero Out
				return zero, fmt.Errorf("decode %s: %w", action, decodeErr)
			}
			return fn(ctx, user, in)
		})
	}
}

func (a *Actions) routes() map[string]route {
	return map[string]route{
		"createWorkspace": bind("createWorkspace", MsgFailedCreate, a.createWorkspace),
		"updateWorkspace": bind("updateWorkspace", MsgFailedUpdate, a.updateWorkspace),
		"deleteWorkspace": bind("deleteWorkspace", MsgFailedDelete, a.deleteWorkspace),
		"shareWorkspace":  bind("shareWorkspace", MsgFailedUpdate, a.shareWorkspace),
		"createTodo":      bind("createTodo", MsgFailedCreate, a.createTodo),
		"updateTodo":      bind("updateTodo", MsgFailedUpdate, a.updateTodo),
		"deleteTodo":      bind("deleteTodo", MsgFailedDelete, a.deleteTodo),
		"reorderTodo":     bind("reorderTodo", MsgFailedUpdate, a.reorderTodo),
		"createSubTodo":   bind("createSubTodo", MsgFailedCreate, a.createSubTodo),
		"updateSubTodo":   bind("updateSubTodo", MsgFailedUpdate, a.updateSubTodo),
		"deleteSubTodo":   bind("deleteSubTodo", MsgFailedDelete, a.deleteSubTodo),
	}
}

// Dispatch runs the named action with a JSON body. The returned Outcome is a
// Result[T] and encodes to the wire format directly.
func (a *Actions) Dispatch(ctx context.Context, name string, raw []byte) (Outcome, error) {
	r, ok := a.routes()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return r(ctx, raw), nil
}

// Names lists the registered actions in sorted order
func (a *Actions) Names() []string {
	routes := a.routes()
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
