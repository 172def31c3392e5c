package records

import "context"

// Repository is the persistence contract for the record store.
type Repository interface {
	// Upsert writes a batch atomically. A row only replaces an existing one
	// when its stamp is not older, so replayed pushes cannot roll records
	// back.
	Upsert(ctx context.Context, rows []Row) error

	// List returns the owner's records in one collection, optionally bounded
	// to date keys in [from, to]. Empty bounds mean unbounded.
	List(ctx context.Context, owner, collection, from, to string) ([]Row, error)

	// Count returns the number of live (untombstoned) records.
	Count(ctx context.Context, owner, collection string) (int, error)

	// Delete hard-removes one record.
	Delete(ctx context.Context, owner, collection, id string) error
}
