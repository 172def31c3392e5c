package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nvoronin/daybook/internal/clock"
)

// Todo is a lightweight to-do item. Due is an optional YYYY-MM-DD date key.
type Todo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Due       string `json:"due,omitempty"`
	Done      bool   `json:"done"`
	UpdatedAt string `json:"updated_at,omitempty"`
	DeletedAt string `json:"deleted_at,omitempty"`
}

// NewTodo creates a to-do stamped as modified now.
func NewTodo(title string) Todo {
	return Todo{
		ID:        uuid.NewString(),
		Title:     title,
		UpdatedAt: clock.Stamp(),
	}
}

func (t Todo) Key() string { return t.ID }

func (t Todo) ModifiedAt() time.Time { return clock.Parse(t.UpdatedAt) }

func (t Todo) Alive() bool { return t.DeletedAt == "" }

func (t Todo) Touched() Todo {
	t.UpdatedAt = clock.Stamp()
	return t
}

func (t Todo) Tombstoned() Todo {
	now := clock.Stamp()
	t.DeletedAt = now
	t.UpdatedAt = now
	return t
}
