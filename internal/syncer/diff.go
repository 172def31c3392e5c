package syncer

import (
	"sort"

	"github.com/nvoronin/daybook/internal/models"
)

// Diff computes the minimal upsert set: local records that are absent from
// the remote snapshot or strictly newer than their remote counterpart.
// Records without any updated_at stamp are seed data and are never pushed,
// even when the remote has no counterpart. The result is ordered by id so
// repeated pushes are byte-identical.
func Diff[T models.Record](local, remote models.Snapshot[T]) []T {
	var out []T
	for id, l := range local {
		if l.ModifiedAt().IsZero() {
			continue
		}
		r, ok := remote[id]
		if !ok || l.ModifiedAt().After(r.ModifiedAt()) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
