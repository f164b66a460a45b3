package models

import "time"

// Todo is a task inside a workspace. Task is the title.
type Todo struct {
	ID          int        `json:"id"`
	WorkspaceID int        `json:"workspaceId"`
	Task        string     `json:"task"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	Order       int        `json:"order"`
	Subtasks    []*Subtask `json:"subtasks,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GetID returns the todo ID
func (t *Todo) GetID() int { return t.ID }

// SubtaskCount is the length of the loaded subtask collection.
func (t *Todo) SubtaskCount() int { return len(t.Subtasks) }

// CompletedSubtasks returns how many loaded subtasks are completed
func (t *Todo) CompletedSubtasks() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.IsCompleted {
			n++
		}
	}
	return n
}
