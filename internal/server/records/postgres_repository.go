package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nvoronin/daybook/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

const upsertQuery = `
	INSERT INTO records (owner_id, collection, record_id, updated_at, date_key, deleted_at, payload)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (owner_id, collection, record_id) DO UPDATE
	SET updated_at = excluded.updated_at,
	    date_key   = excluded.date_key,
	    deleted_at = excluded.deleted_at,
	    payload    = excluded.payload
	WHERE COALESCE(records.updated_at, '-infinity'::timestamptz)
	   <= COALESCE(excluded.updated_at, '-infinity'::timestamptz)
`

func (r *PostgresRepository) Upsert(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, row := range rows {
			updatedAt := sql.NullTime{Time: row.UpdatedAt, Valid: !row.UpdatedAt.IsZero()}
			_, err := tx.ExecContext(ctx, upsertQuery,
				row.Owner, row.Collection, row.ID, updatedAt, row.DateKey, row.DeletedAt, row.Payload)
			if err != nil {
				return fmt.Errorf("error performing sql request: %w", err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) List(ctx context.Context, owner, collection, from, to string) ([]Row, error) {
	query := `
		SELECT record_id, updated_at, date_key, deleted_at, payload
		FROM records
		WHERE owner_id = $1 AND collection = $2
	`
	args := []any{owner, collection}

	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(" AND date_key >= $%d", len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(" AND date_key <= $%d", len(args))
	}
	query += " ORDER BY record_id"

	dbRows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer dbRows.Close()

	var out []Row
	for dbRows.Next() {
		row := Row{Owner: owner, Collection: collection}
		var updatedAt sql.NullTime
		if err := dbRows.Scan(&row.ID, &updatedAt, &row.DateKey, &row.DeletedAt, &row.Payload); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if updatedAt.Valid {
			row.UpdatedAt = updatedAt.Time
		}
		out = append(out, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context, owner, collection string) (int, error) {
	query := `
		SELECT COUNT(*) FROM records
		WHERE owner_id = $1 AND collection = $2 AND deleted_at = ''
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, owner, collection).Scan(&count); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, owner, collection, id string) error {
	query := `DELETE FROM records WHERE owner_id = $1 AND collection = $2 AND record_id = $3`

	if _, err := r.db.ExecContext(ctx, query, owner, collection, id); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}
