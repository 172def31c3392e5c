// Package syncer implements the offline-first reconciliation core: the
// last-write-wins merge, the push-safety guardrail, the minimal upsert
// computation, and the per-collection sync engine that ties them to a
// remote store.
package syncer

import "github.com/nvoronin/daybook/internal/models"

// Merge combines a local and a remote snapshot into one converged snapshot.
//
// The remote side is authoritative by default: every remote record seeds the
// result. A record that exists only locally is inserted unconditionally:
// missing from one side means "not yet synced there", never "deleted there".
// When both sides hold the same id, the local copy wins only with a strictly
// newer updated_at; ties keep the remote version. Tombstones participate
// like any other record, so a newer local tombstone overrides a live remote
// record and propagates.
func Merge[T models.Record](local, remote models.Snapshot[T]) models.Snapshot[T] {
	merged := make(models.Snapshot[T], len(remote)+len(local))
	for id, r := range remote {
		merged[id] = r
	}
	for id, l := range local {
		current, ok := merged[id]
		if !ok {
			merged[id] = l
			continue
		}
		if l.ModifiedAt().After(current.ModifiedAt()) {
			merged[id] = l
		}
	}
	return merged
}
