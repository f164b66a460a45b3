package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/countwave/internal/models"
)

// TodoRepo handles all todo-related database operations.
type TodoRepo struct {
	db *sql.DB
}

const todoColumns = `id, workspace_id, task, description, is_completed, "order", created_at, updated_at`

func scanTodo(row rowScanner) (*models.Todo, error) {
	t := &models.Todo{}
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&t.ID, &t.WorkspaceID, &t.Task, &t.Description, &t.IsCompleted, &t.Order, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = NullTimeToTime(createdAt)
	t.UpdatedAt = NullTimeToTime(updatedAt)
	return t, nil
}

// Create appends a todo to the end of its workspace
func (r *TodoRepo) Create(ctx context.Context, workspaceID int, task, description string) (*models.Todo, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX("order"), -1) + 1 FROM todos WHERE workspace_id = ?`,
			workspaceID,
		).Scan(&next); err != nil {
			return fmt.Errorf("failed to compute next todo order: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO todos (workspace_id, task, description, "order") VALUES (?, ?, ?, ?)`,
			workspaceID, task, description, next,
		)
		if err != nil {
			return fmt.Errorf("failed to insert todo '%s': %w", task, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get todo ID after insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(id))
}

// GetByID retrieves a todo without its subtasks
func (r *TodoRepo) GetByID(ctx context.Context, id int) (*models.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo %d: %w", id, err)
	}
	return t, nil
}

// GetByWorkspace retrieves a workspace's todos ordered by "order"
func (r *TodoRepo) GetByWorkspace(ctx context.Context, workspaceID int) ([]*models.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE workspace_id = ? ORDER BY "order" ASC`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos for workspace %d: %w", workspaceID, err)
	}
	defer closeRows(rows)

	todos := make([]*models.Todo, 0, 16)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo rows: %w", err)
	}
	return todos, nil
}

// Update writes title, description and completion in one statement
func (r *TodoRepo) Update(ctx context.Context, id int, task, description string, isCompleted bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET task = ?, description = ?, is_completed = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		task, description, isCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo %d: %w", id, err)
	}
	return requireAffected(res, "todo", id)
}

// Delete removes a todo; its subtasks cascade
func (r *TodoRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}
	return requireAffected(res, "todo", id)
}

// Move swaps a todo with its neighbour in the given direction.
// Returns models.ErrAlreadyFirst or models.ErrAlreadyLast at the edges.
func (r *TodoRepo) Move(ctx context.Context, id int, dir models.Direction) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var workspaceID, order int
		err := tx.QueryRowContext(ctx,
			`SELECT workspace_id, "order" FROM todos WHERE id = ?`, id,
		).Scan(&workspaceID, &order)
		if err != nil {
			return fmt.Errorf("failed to get todo %d: %w", id, err)
		}

		neighbourQuery := `SELECT id, "order" FROM todos WHERE workspace_id = ? AND "order" < ? ORDER BY "order" DESC LIMIT 1`
		edgeErr := models.ErrAlreadyFirst
		if dir == models.DirectionDown {
			neighbourQuery = `SELECT id, "order" FROM todos WHERE workspace_id = ? AND "order" > ? ORDER BY "order" ASC LIMIT 1`
			edgeErr = models.ErrAlreadyLast
		}

		var otherID, otherOrder int
		err = tx.QueryRowContext(ctx, neighbourQuery, workspaceID, order).Scan(&otherID, &otherOrder)
		if errors.Is(err, sql.ErrNoRows) {
			return edgeErr
		}
		if err != nil {
			return fmt.Errorf("failed to find neighbour of todo %d: %w", id, err)
		}

		// park on a negative slot first so UNIQUE(workspace_id, "order") holds mid-swap
		steps := []struct {
			id, order int
		}{
			{id, -1 - order},
			{otherID, order},
			{id, otherOrder},
		}
		for _, s := range steps {
			if _, err := tx.ExecContext(ctx,
				`UPDATE todos SET "order" = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, s.order, s.id,
			); err != nil {
				return fmt.Errorf("failed to reorder todo %d: %w", s.id, err)
			}
		}
		return nil
	})
}
