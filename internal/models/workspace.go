package models

import "time"

// Workspace is the top-level container a user organizes todos in.
// A public workspace can be viewed read-only through its PublicID.
type Workspace struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	IsPublic  bool      `json:"isPublic"`
	PublicID  string    `json:"publicId,omitempty"`
	IsVisible bool      `json:"isVisible"`
	Todos     []*Todo   `json:"todos,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetID returns the workspace ID (used by quiet CLI output)
func (w *Workspace) GetID() int { return w.ID }

// TodoCount returns the number of loaded todos
func (w *Workspace) TodoCount() int { return len(w.Todos) }

// CompletedCount returns how many loaded todos are completed
func (w *Workspace) CompletedCount() int {
	n := 0
	for _, t := range w.Todos {
		if t.IsCompleted {
			n++
		}
	}
	return n
}
