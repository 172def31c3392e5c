// Package service sits between the CLI and the lower layers: the local
// store, the sync engine and the remote client. Each Collection serves one
// record kind; Registry groups the three and runs cross-collection flows.
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/nvoronin/daybook/internal/client/store"
	"github.com/nvoronin/daybook/internal/common"
	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/models"
	"github.com/nvoronin/daybook/internal/syncer"
)

// Collection exposes CRUD plus sync for one record kind. Local edits are
// write-through to the store; sync passes replace the whole snapshot with
// the engine's merge result.
type Collection[T models.Mutable[T]] struct {
	kind   models.Kind
	store  *store.Collection[T]
	engine *syncer.Engine[T]
	log    logging.Logger
}

func NewCollection[T models.Mutable[T]](kind models.Kind, st *store.Collection[T], engine *syncer.Engine[T], log logging.Logger) *Collection[T] {
	return &Collection[T]{
		kind:   kind,
		store:  st,
		engine: engine,
		log:    log.With("collection", string(kind)),
	}
}

func (c *Collection[T]) Kind() models.Kind { return c.kind }

// List returns the owner's live records, sorted by id for stable output.
// Tombstones stay in the store for sync but never reach the caller.
func (c *Collection[T]) List(ctx context.Context, owner string) []T {
	snap := c.store.Load(ctx, owner)

	out := make([]T, 0, len(snap))
	for _, rec := range snap {
		if rec.Alive() {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Get returns one live record by id.
func (c *Collection[T]) Get(ctx context.Context, owner, id string) (T, error) {
	var zero T
	snap := c.store.Load(ctx, owner)
	rec, ok := snap[id]
	if !ok || !rec.Alive() {
		return zero, fmt.Errorf("%s %q: %w", c.kind, id, common.ErrNotFound)
	}
	return rec, nil
}

// Put inserts or replaces a record. The caller stamps it; constructors and
// Touched already do.
func (c *Collection[T]) Put(ctx context.Context, owner string, rec T) {
	snap := c.store.Load(ctx, owner)
	snap[rec.Key()] = rec
	c.store.Save(ctx, owner, snap)
}

// Delete tombstones a record. The tombstone stays in the snapshot and
// propagates to other devices by last-write-wins, never by absence.
func (c *Collection[T]) Delete(ctx context.Context, owner, id string) error {
	snap := c.store.Load(ctx, owner)
	rec, ok := snap[id]
	if !ok || !rec.Alive() {
		return fmt.Errorf("%s %q: %w", c.kind, id, common.ErrNotFound)
	}

	snap[id] = rec.Tombstoned()
	c.store.Save(ctx, owner, snap)
	return nil
}

// Seed inserts records only where the id is absent, keeping their stamps
// as given. Seeded records without a stamp stay local until first touched.
func (c *Collection[T]) Seed(ctx context.Context, owner string, recs []T) int {
	snap := c.store.Load(ctx, owner)

	added := 0
	for _, rec := range recs {
		if _, ok := snap[rec.Key()]; ok {
			continue
		}
		snap[rec.Key()] = rec
		added++
	}
	if added > 0 {
		c.store.Save(ctx, owner, snap)
	}
	return added
}

// Sync runs one engine pass and persists the merge result. Offline and idle
// passes leave the stored snapshot untouched.
func (c *Collection[T]) Sync(ctx context.Context, owner string, opts syncer.Options, onStatus func(syncer.Status)) syncer.Report {
	local := c.store.Load(ctx, owner)

	merged, report := c.engine.Sync(ctx, local, opts, onStatus)

	// An error pass still carries a valid snapshot: a failed push keeps the
	// merged state, a failed pull returns local unchanged.
	if report.Status == syncer.StatusSynced || report.Status == syncer.StatusError {
		c.store.Save(ctx, owner, merged)
	}
	return report
}

// PullOnly refreshes local state from the remote without pushing anything.
// Used right after a namespace switch.
func (c *Collection[T]) PullOnly(ctx context.Context, owner string) syncer.Report {
	return c.Sync(ctx, owner, syncer.Options{SkipPush: true}, nil)
}
