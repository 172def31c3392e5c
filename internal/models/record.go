// Package models defines the three Daybook record collections and the small
// interface the sync core sees them through.
package models

import "time"

// Kind names a record collection. Each kind syncs independently against its
// own remote partition slice.
type Kind string

const (
	KindTasks Kind = "tasks"
	KindTodos Kind = "todos"
	KindMyDay Kind = "myday"
)

// Kinds lists every collection, in the order namespace operations walk them.
func Kinds() []Kind {
	return []Kind{KindTasks, KindTodos, KindMyDay}
}

// Record is what the sync core knows about an entity. Domain payload fields
// stay opaque to merge and push decisions.
type Record interface {
	// Key returns the record id, stable and unique within its collection
	// and owner partition.
	Key() string

	// ModifiedAt returns the parsed updated_at stamp. The zero time means
	// the record was never touched since seeding and must not be pushed.
	ModifiedAt() time.Time
}

// Mutable extends Record with the value-copy editing methods every concrete
// record type provides. Services use it to touch and tombstone records
// without knowing the collection.
type Mutable[T Record] interface {
	Record

	// Alive reports whether the record carries no tombstone.
	Alive() bool

	// Touched returns a copy stamped as modified now.
	Touched() T

	// Tombstoned returns a copy marked logically deleted and stamped now.
	Tombstoned() T
}

// Snapshot is a collection keyed by record id. No ordering invariant;
// presentation imposes its own.
type Snapshot[T Record] map[string]T
