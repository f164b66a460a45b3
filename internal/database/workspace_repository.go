package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/countwave/internal/models"
)

// WorkspaceRepo handles all workspace-related database operations.
type WorkspaceRepo struct {
	db *sql.DB
}

const workspaceColumns = `id, name, owner_id, is_public, public_id, is_visible, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkspace(row rowScanner) (*models.Workspace, error) {
	ws := &models.Workspace{}
	var publicID sql.NullString
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&ws.ID, &ws.Name, &ws.OwnerID, &ws.IsPublic, &publicID, &ws.IsVisible, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	ws.PublicID = NullStringToString(publicID)
	ws.CreatedAt = NullTimeToTime(createdAt)
	ws.UpdatedAt = NullTimeToTime(updatedAt)
	return ws, nil
}

// Create inserts a new, private, visible workspace
func (r *WorkspaceRepo) Create(ctx context.Context, ownerID, name string) (*models.Workspace, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO workspaces (name, owner_id) VALUES (?, ?)`,
		name, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert workspace '%s': %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace ID after insert: %w", err)
	}
	return r.GetByID(ctx, int(id))
}

// GetByID retrieves a workspace by its ID
func (r *WorkspaceRepo) GetByID(ctx context.Context, id int) (*models.Workspace, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = ?`, id)
	ws, err := scanWorkspace(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace %d: %w", id, err)
	}
	return ws, nil
}

// GetByPublicID retrieves a workspace that is currently shared under publicID.
// Private workspaces are reported as sql.ErrNoRows even when the id matches.
func (r *WorkspaceRepo) GetByPublicID(ctx context.Context, publicID string) (*models.Workspace, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE public_id = ? AND is_public = 1`,
		publicID,
	)
	ws, err := scanWorkspace(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get public workspace %q: %w", publicID, err)
	}
	return ws, nil
}

// GetByOwner lists an owner's workspaces, oldest first
func (r *WorkspaceRepo) GetByOwner(ctx context.Context, ownerID string) ([]*models.Workspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE owner_id = ? ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces for %q: %w", ownerID, err)
	}
	defer closeRows(rows)

	workspaces := make([]*models.Workspace, 0, 8)
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace row: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", err)
	}
	return workspaces, nil
}

// Update sets a workspace's name and sidebar visibility
func (r *WorkspaceRepo) Update(ctx context.Context, id int, name string, isVisible bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workspaces SET name = ?, is_visible = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, isVisible, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update workspace %d: %w", id, err)
	}
	return requireAffected(res, "workspace", id)
}

// SetPublic toggles sharing. publicID is only written when non-empty so an
// existing id survives turning sharing off and on again.
func (r *WorkspaceRepo) SetPublic(ctx context.Context, id int, isPublic bool, publicID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workspaces
		 SET is_public = ?, public_id = COALESCE(public_id, ?), updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		isPublic, stringToNull(publicID), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set sharing on workspace %d: %w", id, err)
	}
	return requireAffected(res, "workspace", id)
}

// Delete removes a workspace; todos and subtasks cascade
func (r *WorkspaceRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace %d: %w", id, err)
	}
	return requireAffected(res, "workspace", id)
}
