package ui

import "sync"

// ToastLevel is the style a toast is shown with
type ToastLevel int

const (
	ToastSuccess ToastLevel = iota
	ToastError
)

// String returns the CSS modifier for the level
func (l ToastLevel) String() string {
	if l == ToastError {
		return "error"
	}
	return "success"
}

// Toast is a short message shown after an action
type Toast struct {
	Level   ToastLevel
	Message string
}

// Toasts queues toasts until the browser picks them up. Safe for concurrent use.
type Toasts struct {
	mu    sync.Mutex
	items []Toast
}

// Success queues a success toast
func (t *Toasts) Success(msg string) { t.add(ToastSuccess, msg) }

// Error queues an error toast
func (t *Toasts) Error(msg string) { t.add(ToastError, msg) }

func (t *Toasts) add(level ToastLevel, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Level: level, Message: msg})
}

// Drain returns the queued toasts and empties the queue
func (t *Toasts) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.items
	t.items = nil
	return out
}

// Len returns how many toasts are queued
func (t *Toasts) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}
