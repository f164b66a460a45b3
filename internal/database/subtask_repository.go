package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/countwave/internal/models"
)

// SubtaskRepo handles all subtask-related database operations.
type SubtaskRepo struct {
	db *sql.DB
}

const subtaskColumns = `id, todo_id, name, is_completed, "order", created_at, updated_at`

func scanSubtask(row rowScanner) (*models.Subtask, error) {
	s := &models.Subtask{}
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.TodoID, &s.Name, &s.IsCompleted, &s.Order, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = NullTimeToTime(createdAt)
	s.UpdatedAt = NullTimeToTime(updatedAt)
	return s, nil
}

// Create appends a subtask to the end of its todo
func (r *SubtaskRepo) Create(ctx context.Context, todoID int, name string) (*models.Subtask, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX("order"), -1) + 1 FROM subtasks WHERE todo_id = ?`,
			todoID,
		).Scan(&next); err != nil {
			return fmt.Errorf("failed to compute next subtask order: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO subtasks (todo_id, name, "order") VALUES (?, ?, ?)`,
			todoID, name, next,
		)
		if err != nil {
			return fmt.Errorf("failed to insert subtask '%s': %w", name, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get subtask ID after insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(id))
}

// GetByID retrieves a single subtask
func (r *SubtaskRepo) GetByID(ctx context.Context, id int) (*models.Subtask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subtaskColumns+` FROM subtasks WHERE id = ?`, id)
	s, err := scanSubtask(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get subtask %d: %w", id, err)
	}
	return s, nil
}

// GetByTodo retrieves a todo's subtasks ordered by "order"
func (r *SubtaskRepo) GetByTodo(ctx context.Context, todoID int) ([]*models.Subtask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subtaskColumns+` FROM subtasks WHERE todo_id = ? ORDER BY "order" ASC`,
		todoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query subtasks for todo %d: %w", todoID, err)
	}
	defer closeRows(rows)
	return collectSubtasks(rows)
}

// GetByWorkspace retrieves every subtask in a workspace grouped by todo ID,
// each group ordered by "order"
func (r *SubtaskRepo) GetByWorkspace(ctx context.Context, workspaceID int) (map[int][]*models.Subtask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.todo_id, s.name, s.is_completed, s."order", s.created_at, s.updated_at
		 FROM subtasks s
		 JOIN todos t ON t.id = s.todo_id
		 WHERE t.workspace_id = ?
		 ORDER BY s.todo_id, s."order" ASC`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query subtasks for workspace %d: %w", workspaceID, err)
	}
	defer closeRows(rows)

	subtasks, err := collectSubtasks(rows)
	if err != nil {
		return nil, err
	}
	grouped := make(map[int][]*models.Subtask)
	for _, s := range subtasks {
		grouped[s.TodoID] = append(grouped[s.TodoID], s)
	}
	return grouped, nil
}

func collectSubtasks(rows *sql.Rows) ([]*models.Subtask, error) {
	subtasks := make([]*models.Subtask, 0, 8)
	for rows.Next() {
		s, err := scanSubtask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subtask row: %w", err)
		}
		subtasks = append(subtasks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subtask rows: %w", err)
	}
	return subtasks, nil
}

// Update writes a subtask's name and completion
func (r *SubtaskRepo) Update(ctx context.Context, id int, name string, isCompleted bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subtasks SET name = ?, is_completed = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, isCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update subtask %d: %w", id, err)
	}
	return requireAffected(res, "subtask", id)
}

// Delete removes a subtask
func (r *SubtaskRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subtask %d: %w", id, err)
	}
	return requireAffected(res, "subtask", id)
}
