package models

import "time"

// Subtask is an ordered child item of a todo
type Subtask struct {
	ID          int       `json:"id"`
	TodoID      int       `json:"todoId"`
	Name        string    `json:"name"`
	IsCompleted bool      `json:"isCompleted"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GetID returns the subtask ID
func (s *Subtask) GetID() int { return s.ID }
