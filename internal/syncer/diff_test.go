package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/daybook/internal/models"
)

func TestDiff_OnlyNewOrNewerRecords(t *testing.T) {
	local := snapshot(
		task("same", "unchanged", t1),
		task("newer", "edited here", t3),
		task("fresh", "created offline", t2),
	)
	remote := snapshot(
		task("same", "unchanged", t1),
		task("newer", "stale copy", t1),
		task("remote-only", "not ours to push", t2),
	)

	got := Diff(local, remote)

	require.Len(t, got, 2)
	assert.Equal(t, "fresh", got[0].ID)
	assert.Equal(t, "newer", got[1].ID)
}

func TestDiff_SeedRecordsNeverPushed(t *testing.T) {
	seeded := models.Task{ID: "seed", Title: "from static source"}
	local := snapshot(seeded)

	got := Diff(local, models.Snapshot[models.Task]{})

	assert.Empty(t, got, "a record without updated_at must not be pushed even with no remote counterpart")
}

func TestDiff_NewerTombstoneIncluded(t *testing.T) {
	dead := task("x", "deleted here", t3)
	dead.DeletedAt = t3
	local := snapshot(dead)
	remote := snapshot(task("x", "live there", t1))

	got := Diff(local, remote)

	require.Len(t, got, 1)
	assert.False(t, got[0].Alive())
}

func TestDiff_RemoteOnlyPairYieldsNothing(t *testing.T) {
	remote := snapshot(task("c1", "cloud", t1))

	got := Diff(models.Snapshot[models.Task]{}, remote)

	assert.Empty(t, got)
}

func TestDiff_TieIsNotPushed(t *testing.T) {
	local := snapshot(task("x", "same stamp", t2))
	remote := snapshot(task("x", "same stamp", t2))

	assert.Empty(t, Diff(local, remote))
}

func TestDiff_StableOrder(t *testing.T) {
	local := snapshot(task("b", "b", t2), task("a", "a", t2), task("c", "c", t2))

	got := Diff(local, models.Snapshot[models.Task]{})
	// Seedless records all carry stamps here, so everything is pushed,
	// ordered by id.
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}
