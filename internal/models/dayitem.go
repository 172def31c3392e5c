package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nvoronin/daybook/internal/clock"
)

// DayItem pins a task or to-do onto the "My Day" view for one calendar day.
// DateKey is the UTC day the pin belongs to; pulls for this collection are
// windowed by it.
type DayItem struct {
	ID        string `json:"id"`
	RefID     string `json:"ref_id"`
	RefKind   Kind   `json:"ref_kind"`
	DateKey   string `json:"date_key"`
	UpdatedAt string `json:"updated_at,omitempty"`
	DeletedAt string `json:"deleted_at,omitempty"`
}

// NewDayItem pins refID of refKind onto today's My Day.
func NewDayItem(refKind Kind, refID string) DayItem {
	now := clock.Now()
	return DayItem{
		ID:        uuid.NewString(),
		RefID:     refID,
		RefKind:   refKind,
		DateKey:   clock.DateKey(now),
		UpdatedAt: clock.Format(now),
	}
}

func (d DayItem) Key() string { return d.ID }

func (d DayItem) ModifiedAt() time.Time { return clock.Parse(d.UpdatedAt) }

func (d DayItem) Alive() bool { return d.DeletedAt == "" }

func (d DayItem) Touched() DayItem {
	d.UpdatedAt = clock.Stamp()
	return d
}

func (d DayItem) Tombstoned() DayItem {
	now := clock.Stamp()
	d.DeletedAt = now
	d.UpdatedAt = now
	return d
}
