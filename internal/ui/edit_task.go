package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/models"
)

// TaskActions are the mutations the edit task sheet can run
type TaskActions interface {
	UpdateTodo(ctx context.Context, in actions.UpdateTodoInput) actions.Result[*models.Todo]
	DeleteTodo(ctx context.Context, in actions.DeleteTodoInput) actions.Result[*models.Todo]
	CreateSubTodo(ctx context.Context, in actions.CreateSubTodoInput) actions.Result[*models.Subtask]
	UpdateSubTodo(ctx context.Context, in actions.UpdateSubTodoInput) actions.Result[*models.Subtask]
	DeleteSubTodo(ctx context.Context, in actions.DeleteSubTodoInput) actions.Result[*models.Subtask]
}

// Navigator sends the browser to another page
type Navigator interface {
	Navigate(path string)
}

// TaskForm is the editable part of the sheet
type TaskForm struct {
	Task        string
	Description string

	// Errors maps field name ("task", "description") to its message
	Errors map[string]string
}

// EditTaskView is a snapshot for rendering
type EditTaskView struct {
	Open          bool
	Todo          *models.Todo
	Form          TaskForm
	Subtasks      []*models.Subtask
	SubtaskCount  int
	OpenSubtaskID int
	Preview       bool
	Disabled      bool
}

// EditTask is the edit task sheet: a form seeded from one todo, the locally
// rendered subtask list, and the in-flight guard. Safe for concurrent use;
// actions run without holding the lock.
type EditTask struct {
	mu sync.Mutex

	actions TaskActions
	nav     Navigator
	toasts  *Toasts
	onClose func()

	// todo is the todo the sheet was opened (or last synced) with
	todo *models.Todo

	form TaskForm

	// subtasks is the rendered list. Created subtasks are appended here
	// without waiting for the next sync.
	subtasks []*models.Subtask

	openSubtaskID int
	preview       bool

	// pending is the mutation in flight, "" when idle
	pending string
}

// NewEditTask creates a closed sheet. onClose is called after a delete
// succeeds so the owner can drop its modal state.
func NewEditTask(acts TaskActions, nav Navigator, toasts *Toasts, onClose func()) *EditTask {
	if onClose == nil {
		onClose = func() {}
	}
	return &EditTask{actions: acts, nav: nav, toasts: toasts, onClose: onClose}
}

// Open seeds the form from todo. In preview mode every mutation is a no-op.
func (e *EditTask) Open(todo *models.Todo, preview bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.todo = todo
	e.preview = preview
	e.openSubtaskID = 0
	e.seedForm()
	e.subtasks = copySubtasks(todo.Subtasks)
}

// Sync applies a fresh copy of the open todo. The form is re-seeded when the
// todo's identity, title or description changed, and the subtask list is
// replaced when the subtasks changed.
func (e *EditTask) Sync(todo *models.Todo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.todo == nil || todo == nil {
		return
	}
	prev := e.todo
	e.todo = todo
	if prev.ID != todo.ID || prev.Task != todo.Task || prev.Description != todo.Description {
		e.seedForm()
	}
	if !sameSubtasks(prev.Subtasks, todo.Subtasks) {
		e.subtasks = copySubtasks(todo.Subtasks)
	}
}

func (e *EditTask) seedForm() {
	e.form = TaskForm{Task: e.todo.Task, Description: e.todo.Description}
}

// SetForm records what the user typed. Field errors clear on change.
func (e *EditTask) SetForm(task, description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form.Task = task
	e.form.Description = description
	e.form.Errors = nil
}

// Close resets the sheet. It stays open while a mutation is in flight.
func (e *EditTask) Close() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending != "" {
		return false
	}
	e.reset()
	return true
}

func (e *EditTask) reset() {
	e.todo = nil
	e.form = TaskForm{}
	e.subtasks = nil
	e.openSubtaskID = 0
	e.preview = false
}

// Pending reports whether a mutation is in flight
func (e *EditTask) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != ""
}

// View returns a snapshot for rendering
func (e *EditTask) View() EditTaskView {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := EditTaskView{
		Open:          e.todo != nil,
		Todo:          e.todo,
		Form:          e.form,
		Subtasks:      copySubtasks(e.subtasks),
		SubtaskCount:  len(e.subtasks),
		OpenSubtaskID: e.openSubtaskID,
		Preview:       e.preview,
		Disabled:      e.preview || e.pending != "",
	}
	if e.form.Errors != nil {
		v.Form.Errors = make(map[string]string, len(e.form.Errors))
		for k, msg := range e.form.Errors {
			v.Form.Errors[k] = msg
		}
	}
	return v
}

// begin marks name as in flight. The returned todo is the one the mutation
// applies to. skip is true in preview mode, where the caller does nothing.
func (e *EditTask) begin(name string) (todo *models.Todo, skip bool, err error) {
	if e.todo == nil {
		return nil, false, ErrNothingOpen
	}
	if e.preview {
		return nil, true, nil
	}
	if e.pending != "" {
		return nil, false, ErrActionPending
	}
	e.pending = name
	return e.todo, false, nil
}

func (e *EditTask) end() {
	e.mu.Lock()
	e.pending = ""
	e.mu.Unlock()
}

func (e *EditTask) failed(msg string) error {
	e.toasts.Error(msg)
	return &ActionError{Message: msg}
}

// validateTaskForm checks the trimmed values the way the server will
func validateTaskForm(task, description string) map[string]string {
	errs := map[string]string{}
	switch n := utf8.RuneCountInString(task); {
	case n == 0:
		errs["task"] = actions.MsgTaskRequired
	case n > models.TaskMaxLen:
		errs["task"] = actions.MsgTaskTooLong
	}
	if utf8.RuneCountInString(description) > models.DescriptionMaxLen {
		errs["description"] = actions.MsgDescriptionTooLong
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Submit validates the form and saves title and description. Invalid input
// sets field errors and never reaches the update action.
func (e *EditTask) Submit(ctx context.Context) error {
	e.mu.Lock()
	if e.todo != nil && !e.preview {
		task := strings.TrimSpace(e.form.Task)
		desc := strings.TrimSpace(e.form.Description)
		if errs := validateTaskForm(task, desc); errs != nil {
			e.form.Errors = errs
			e.mu.Unlock()
			return ErrInvalidForm
		}
	}
	todo, skip, err := e.begin("update")
	form := e.form
	e.mu.Unlock()
	if skip || err != nil {
		return err
	}
	defer e.end()

	res := e.actions.UpdateTodo(ctx, actions.UpdateTodoInput{Todo: actions.TodoFields{
		ID:          todo.ID,
		WorkspaceID: todo.WorkspaceID,
		Task:        strings.TrimSpace(form.Task),
		Description: strings.TrimSpace(form.Description),
	}})
	if !res.OK() {
		e.mu.Lock()
		if len(res.FieldErrors) > 0 {
			e.form.Errors = map[string]string{}
			for field := range res.FieldErrors {
				e.form.Errors[field] = res.FieldError(field)
			}
		}
		e.mu.Unlock()
		return e.failed(res.Error)
	}

	e.mu.Lock()
	if e.todo != nil && e.todo.ID == res.Data.ID {
		updated := *res.Data
		updated.Subtasks = e.todo.Subtasks
		e.todo = &updated
		e.seedForm()
	}
	e.mu.Unlock()
	e.toasts.Success("Todo updated.")
	return nil
}

// Delete removes the todo, closes the sheet and navigates to its workspace
func (e *EditTask) Delete(ctx context.Context) error {
	e.mu.Lock()
	todo, skip, err := e.begin("delete")
	e.mu.Unlock()
	if skip || err != nil {
		return err
	}

	res := e.actions.DeleteTodo(ctx, actions.DeleteTodoInput{ID: todo.ID, WorkspaceID: todo.WorkspaceID})
	if !res.OK() {
		e.end()
		return e.failed(res.Error)
	}

	e.mu.Lock()
	e.pending = ""
	e.reset()
	e.mu.Unlock()

	e.toasts.Success("Todo deleted.")
	e.onClose()
	e.nav.Navigate(fmt.Sprintf("/dashboard/%d", res.Data.WorkspaceID))
	return nil
}

// AddSubtask creates an untitled subtask, appends it to the rendered list and
// opens it for editing.
func (e *EditTask) AddSubtask(ctx context.Context) error {
	e.mu.Lock()
	todo, skip, err := e.begin("create")
	e.mu.Unlock()
	if skip || err != nil {
		return err
	}
	defer e.end()

	res := e.actions.CreateSubTodo(ctx, actions.CreateSubTodoInput{
		WorkspaceID: todo.WorkspaceID,
		TodoID:      todo.ID,
		Name:        models.DefaultSubtaskName,
	})
	if !res.OK() {
		return e.failed(res.Error)
	}

	e.mu.Lock()
	if e.todo != nil && e.todo.ID == res.Data.TodoID {
		// a live refresh may have synced the new subtask in already
		if indexOfSubtask(e.subtasks, res.Data.ID) < 0 {
			e.subtasks = append(e.subtasks, res.Data)
		}
		e.openSubtaskID = res.Data.ID
	}
	e.mu.Unlock()
	e.toasts.Success(fmt.Sprintf("Subtask %q created.", res.Data.Name))
	return nil
}

// OpenSubtask selects a listed subtask for editing
func (e *EditTask) OpenSubtask(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if indexOfSubtask(e.subtasks, id) < 0 {
		return ErrSubtaskNotListed
	}
	e.openSubtaskID = id
	return nil
}

// CloseSubtask deselects the open subtask
func (e *EditTask) CloseSubtask() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openSubtaskID = 0
}

// RenameSubtask saves a new name for a listed subtask
func (e *EditTask) RenameSubtask(ctx context.Context, id int, name string) error {
	name = strings.TrimSpace(name)
	return e.updateSubtask(ctx, actions.UpdateSubTodoInput{ID: id, Name: &name})
}

// ToggleSubtask flips the completion of a listed subtask
func (e *EditTask) ToggleSubtask(ctx context.Context, id int) error {
	e.mu.Lock()
	i := indexOfSubtask(e.subtasks, id)
	done := i >= 0 && !e.subtasks[i].IsCompleted
	e.mu.Unlock()
	return e.updateSubtask(ctx, actions.UpdateSubTodoInput{ID: id, IsCompleted: &done})
}

func (e *EditTask) updateSubtask(ctx context.Context, in actions.UpdateSubTodoInput) error {
	e.mu.Lock()
	if indexOfSubtask(e.subtasks, in.ID) < 0 {
		e.mu.Unlock()
		return ErrSubtaskNotListed
	}
	todo, skip, err := e.begin("subtask")
	e.mu.Unlock()
	if skip || err != nil {
		return err
	}
	defer e.end()

	in.WorkspaceID = todo.WorkspaceID
	res := e.actions.UpdateSubTodo(ctx, in)
	if !res.OK() {
		return e.failed(res.Error)
	}

	e.mu.Lock()
	if i := indexOfSubtask(e.subtasks, res.Data.ID); i >= 0 {
		e.subtasks[i] = res.Data
	}
	e.mu.Unlock()
	return nil
}

// DeleteSubtask removes a listed subtask
func (e *EditTask) DeleteSubtask(ctx context.Context, id int) error {
	e.mu.Lock()
	if indexOfSubtask(e.subtasks, id) < 0 {
		e.mu.Unlock()
		return ErrSubtaskNotListed
	}
	todo, skip, err := e.begin("subtask")
	e.mu.Unlock()
	if skip || err != nil {
		return err
	}
	defer e.end()

	res := e.actions.DeleteSubTodo(ctx, actions.DeleteSubTodoInput{ID: id, WorkspaceID: todo.WorkspaceID})
	if !res.OK() {
		return e.failed(res.Error)
	}

	e.mu.Lock()
	if i := indexOfSubtask(e.subtasks, id); i >= 0 {
		e.subtasks = append(e.subtasks[:i:i], e.subtasks[i+1:]...)
	}
	if e.openSubtaskID == id {
		e.openSubtaskID = 0
	}
	e.mu.Unlock()
	e.toasts.Success("Subtask deleted.")
	return nil
}

func indexOfSubtask(list []*models.Subtask, id int) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func copySubtasks(in []*models.Subtask) []*models.Subtask {
	if in == nil {
		return nil
	}
	out := make([]*models.Subtask, len(in))
	copy(out, in)
	return out
}

func sameSubtasks(a, b []*models.Subtask) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || a[i].IsCompleted != b[i].IsCompleted {
			return false
		}
	}
	return true
}
