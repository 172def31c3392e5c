// Package syncstate persists the pulled-once flag per (collection, owner
// partition). The flag is the basis of the fresh-client guardrail: a client
// that has never pulled a partition must not push into it.
package syncstate

import (
	"context"
	"fmt"
	"time"

	"github.com/nvoronin/daybook/internal/client/store"
	"github.com/nvoronin/daybook/internal/clock"
	"github.com/nvoronin/daybook/internal/models"
)

// Tracker reads and writes sync-state flags in the metadata KV.
type Tracker struct {
	kv store.KV
}

func NewTracker(kv store.KV) *Tracker {
	return &Tracker{kv: kv}
}

func pulledKey(kind models.Kind, owner string) string {
	return fmt.Sprintf("pulled:%s:%s", kind, owner)
}

func lastPulledKey(kind models.Kind, owner string) string {
	return fmt.Sprintf("last_pulled_at:%s:%s", kind, owner)
}

// WasPulled reports whether at least one successful pull ever completed for
// the (collection, owner) pair.
func (t *Tracker) WasPulled(ctx context.Context, kind models.Kind, owner string) (bool, error) {
	v, err := t.kv.Get(ctx, pulledKey(kind, owner))
	if err != nil {
		return false, err
	}
	return string(v) == "1", nil
}

// MarkPulled durably records a completed pull. Flipped only after an
// unambiguously successful remote read, including one returning zero records.
func (t *Tracker) MarkPulled(ctx context.Context, kind models.Kind, owner string) error {
	if err := t.kv.Set(ctx, pulledKey(kind, owner), []byte("1")); err != nil {
		return err
	}
	return t.kv.Set(ctx, lastPulledKey(kind, owner), []byte(clock.Stamp()))
}

// LastPulledAt returns the stamp of the most recent successful pull, or the
// zero time if none is recorded.
func (t *Tracker) LastPulledAt(ctx context.Context, kind models.Kind, owner string) (time.Time, error) {
	v, err := t.kv.Get(ctx, lastPulledKey(kind, owner))
	if err != nil {
		return time.Time{}, err
	}
	return clock.Parse(string(v)), nil
}

// Reset forgets the pull history for one (collection, owner) pair. Only a
// namespace switch does this.
func (t *Tracker) Reset(ctx context.Context, kind models.Kind, owner string) error {
	if err := t.kv.Delete(ctx, pulledKey(kind, owner)); err != nil {
		return err
	}
	return t.kv.Delete(ctx, lastPulledKey(kind, owner))
}

// ResetAll forgets the pull history of every collection under an owner.
func (t *Tracker) ResetAll(ctx context.Context, owner string) error {
	for _, kind := range models.Kinds() {
		if err := t.Reset(ctx, kind, owner); err != nil {
			return err
		}
	}
	return nil
}
