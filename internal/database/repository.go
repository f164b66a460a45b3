package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/countwave/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*WorkspaceRepo
	*TodoRepo
	*SubtaskRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		WorkspaceRepo: &WorkspaceRepo{db: db},
		TodoRepo:      &TodoRepo{db: db},
		SubtaskRepo:   &SubtaskRepo{db: db},
	}
}

var _ DataStore = (*Repository)(nil)

// Workspaces

func (r *Repository) CreateWorkspace(ctx context.Context, ownerID, name string) (*models.Workspace, error) {
	return r.WorkspaceRepo.Create(ctx, ownerID, name)
}

func (r *Repository) GetWorkspaceByID(ctx context.Context, id int) (*models.Workspace, error) {
	return r.WorkspaceRepo.GetByID(ctx, id)
}

func (r *Repository) GetWorkspaceByPublicID(ctx context.Context, publicID string) (*models.Workspace, error) {
	return r.WorkspaceRepo.GetByPublicID(ctx, publicID)
}

func (r *Repository) GetWorkspacesByOwner(ctx context.Context, ownerID string) ([]*models.Workspace, error) {
	return r.WorkspaceRepo.GetByOwner(ctx, ownerID)
}

func (r *Repository) UpdateWorkspace(ctx context.Context, id int, name string, isVisible bool) error {
	return r.WorkspaceRepo.Update(ctx, id, name, isVisible)
}

func (r *Repository) SetWorkspacePublic(ctx context.Context, id int, isPublic bool, publicID string) error {
	return r.WorkspaceRepo.SetPublic(ctx, id, isPublic, publicID)
}

func (r *Repository) DeleteWorkspace(ctx context.Context, id int) error {
	return r.WorkspaceRepo.Delete(ctx, id)
}

// LoadWorkspaceTree fills ws.Todos and each todo's Subtasks, all ordered by "order"
func (r *Repository) LoadWorkspaceTree(ctx context.Context, ws *models.Workspace) error {
	todos, err := r.TodoRepo.GetByWorkspace(ctx, ws.ID)
	if err != nil {
		return err
	}
	grouped, err := r.SubtaskRepo.GetByWorkspace(ctx, ws.ID)
	if err != nil {
		return err
	}
	for _, t := range todos {
		t.Subtasks = grouped[t.ID]
		if t.Subtasks == nil {
			t.Subtasks = []*models.Subtask{}
		}
	}
	ws.Todos = todos
	return nil
}

// Todos

func (r *Repository) CreateTodo(ctx context.Context, workspaceID int, task, description string) (*models.Todo, error) {
	return r.TodoRepo.Create(ctx, workspaceID, task, description)
}

func (r *Repository) GetTodoByID(ctx context.Context, id int) (*models.Todo, error) {
	return r.TodoRepo.GetByID(ctx, id)
}

// GetTodoWithSubtasks retrieves a todo and its ordered subtasks
func (r *Repository) GetTodoWithSubtasks(ctx context.Context, id int) (*models.Todo, error) {
	t, err := r.TodoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subtasks, err := r.SubtaskRepo.GetByTodo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load subtasks for todo %d: %w", id, err)
	}
	t.Subtasks = subtasks
	return t, nil
}

func (r *Repository) GetTodosByWorkspace(ctx context.Context, workspaceID int) ([]*models.Todo, error) {
	return r.TodoRepo.GetByWorkspace(ctx, workspaceID)
}

func (r *Repository) UpdateTodo(ctx context.Context, id int, task, description string, isCompleted bool) error {
	return r.TodoRepo.Update(ctx, id, task, description, isCompleted)
}

func (r *Repository) DeleteTodo(ctx context.Context, id int) error {
	return r.TodoRepo.Delete(ctx, id)
}

func (r *Repository) MoveTodo(ctx context.Context, id int, dir models.Direction) error {
	return r.TodoRepo.Move(ctx, id, dir)
}

// Subtasks

func (r *Repository) CreateSubtask(ctx context.Context, todoID int, name string) (*models.Subtask, error) {
	return r.SubtaskRepo.Create(ctx, todoID, name)
}

func (r *Repository) GetSubtaskByID(ctx context.Context, id int) (*models.Subtask, error) {
	return r.SubtaskRepo.GetByID(ctx, id)
}

func (r *Repository) GetSubtasksByTodo(ctx context.Context, todoID int) ([]*models.Subtask, error) {
	return r.SubtaskRepo.GetByTodo(ctx, todoID)
}

func (r *Repository) UpdateSubtask(ctx context.Context, id int, name string, isCompleted bool) error {
	return r.SubtaskRepo.Update(ctx, id, name, isCompleted)
}

func (r *Repository) DeleteSubtask(ctx context.Context, id int) error {
	return r.SubtaskRepo.Delete(ctx, id)
}
