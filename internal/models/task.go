package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nvoronin/daybook/internal/clock"
)

// TaskStatus tracks where a research task sits in its lifecycle.
type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "open"
	TaskStatusActive TaskStatus = "active"
	TaskStatusDone   TaskStatus = "done"
)

// Step is one checklist item inside a research task.
type Step struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Task is a research task. UpdatedAt is empty for seeded tasks that were
// never edited; DeletedAt is the tombstone.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes,omitempty"`
	Status    TaskStatus `json:"status"`
	Steps     []Step     `json:"steps,omitempty"`
	UpdatedAt string     `json:"updated_at,omitempty"`
	DeletedAt string     `json:"deleted_at,omitempty"`
}

// NewTask creates a task stamped as modified now.
func NewTask(title string) Task {
	return Task{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    TaskStatusOpen,
		UpdatedAt: clock.Stamp(),
	}
}

func (t Task) Key() string { return t.ID }

func (t Task) ModifiedAt() time.Time { return clock.Parse(t.UpdatedAt) }

// Alive reports whether the task carries no tombstone.
func (t Task) Alive() bool { return t.DeletedAt == "" }

// Touched returns a copy stamped as modified now.
func (t Task) Touched() Task {
	t.UpdatedAt = clock.Stamp()
	return t
}

// Tombstoned returns a copy marked logically deleted. The tombstone is an
// ordinary record to the merge and propagates by last-write-wins.
func (t Task) Tombstoned() Task {
	now := clock.Stamp()
	t.DeletedAt = now
	t.UpdatedAt = now
	return t
}
