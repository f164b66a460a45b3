package ui

import (
	"context"
	"sync"
	"time"

	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeActions records calls and returns canned results. When block is set,
// UpdateTodo waits on it so tests can overlap mutations.
type fakeActions struct {
	mu sync.Mutex

	updateCalls []actions.UpdateTodoInput
	deleteCalls []actions.DeleteTodoInput
	createCalls []actions.CreateSubTodoInput
	subUpdates  []actions.UpdateSubTodoInput
	subDeletes  []actions.DeleteSubTodoInput
	wsCreates   []actions.CreateWorkspaceInput
	shareCalls  []actions.ShareWorkspaceInput
	nextSubtask int
	failWith    string
	block       chan struct{}
	started     chan struct{}

	// onCreate runs after a subtask is created, before the result returns
	onCreate func(*models.Subtask)
}

func newFakeActions() *fakeActions {
	return &fakeActions{nextSubtask: 100}
}

func (f *fakeActions) UpdateTodo(_ context.Context, in actions.UpdateTodoInput) actions.Result[*models.Todo] {
	f.mu.Lock()
	f.updateCalls = append(f.updateCalls, in)
	block, started, fail := f.block, f.started, f.failWith
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	if fail != "" {
		return actions.Result[*models.Todo]{Error: fail}
	}
	return actions.Result[*models.Todo]{Data: &models.Todo{
		ID:          in.Todo.ID,
		WorkspaceID: in.Todo.WorkspaceID,
		Task:        in.Todo.Task,
		Description: in.Todo.Description,
	}}
}

func (f *fakeActions) DeleteTodo(_ context.Context, in actions.DeleteTodoInput) actions.Result[*models.Todo] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, in)
	if f.failWith != "" {
		return actions.Result[*models.Todo]{Error: f.failWith}
	}
	return actions.Result[*models.Todo]{Data: &models.Todo{ID: in.ID, WorkspaceID: in.WorkspaceID}}
}

func (f *fakeActions) CreateSubTodo(_ context.Context, in actions.CreateSubTodoInput) actions.Result[*models.Subtask] {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, in)
	if f.failWith != "" {
		defer f.mu.Unlock()
		return actions.Result[*models.Subtask]{Error: f.failWith}
	}
	f.nextSubtask++
	sub := &models.Subtask{ID: f.nextSubtask, TodoID: in.TodoID, Name: in.Name}
	created := f.onCreate
	f.mu.Unlock()

	if created != nil {
		created(sub)
	}
	return actions.Result[*models.Subtask]{Data: sub}
}

func (f *fakeActions) UpdateSubTodo(_ context.Context, in actions.UpdateSubTodoInput) actions.Result[*models.Subtask] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subUpdates = append(f.subUpdates, in)
	sub := &models.Subtask{ID: in.ID, TodoID: 1, Name: "Chapter"}
	if in.Name != nil {
		sub.Name = *in.Name
	}
	if in.IsCompleted != nil {
		sub.IsCompleted = *in.IsCompleted
	}
	return actions.Result[*models.Subtask]{Data: sub}
}

func (f *fakeActions) DeleteSubTodo(_ context.Context, in actions.DeleteSubTodoInput) actions.Result[*models.Subtask] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subDeletes = append(f.subDeletes, in)
	return actions.Result[*models.Subtask]{Data: &models.Subtask{ID: in.ID}}
}

func (f *fakeActions) CreateWorkspace(_ context.Context, in actions.CreateWorkspaceInput) actions.Result[*models.Workspace] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wsCreates = append(f.wsCreates, in)
	if f.failWith != "" {
		return actions.Result[*models.Workspace]{Error: f.failWith}
	}
	return actions.Result[*models.Workspace]{Data: &models.Workspace{ID: 42, Name: in.Name, OwnerID: "user_1"}}
}

func (f *fakeActions) ShareWorkspace(_ context.Context, in actions.ShareWorkspaceInput) actions.Result[*models.Workspace] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shareCalls = append(f.shareCalls, in)
	ws := &models.Workspace{ID: in.ID, Name: "School", IsPublic: in.IsPublic, PublicID: "0b7c7a7e-1f25-4e8b-9c47-3c1c2f0d5a11"}
	return actions.Result[*models.Workspace]{Data: ws}
}

func (f *fakeActions) updates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updateCalls)
}

type recordingNav struct {
	paths []string
}

func (n *recordingNav) Navigate(path string) {
	n.paths = append(n.paths, path)
}

func sampleTodo() *models.Todo {
	return &models.Todo{
		ID:          1,
		WorkspaceID: 7,
		Task:        "Homework",
		Description: "Math",
		Subtasks: []*models.Subtask{
			{ID: 10, TodoID: 1, Name: "Chapter 1", Order: 0},
			{ID: 11, TodoID: 1, Name: "Chapter 2", Order: 1},
		},
	}
}
