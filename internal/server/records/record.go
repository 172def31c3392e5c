// Package records implements the server-side record store. Records are
// opaque JSON payloads keyed by (owner, collection, id); the store only
// understands the envelope fields it needs for ordering and windowing.
package records

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nvoronin/daybook/internal/clock"
)

// Row is one stored record. UpdatedAt is the parsed stamp; the zero time
// means the record was never stamped. Payload is the record verbatim as the
// client sent it.
type Row struct {
	Owner      string
	Collection string
	ID         string
	UpdatedAt  time.Time
	DateKey    string
	DeletedAt  string
	Payload    []byte
}

// envelope is the subset of every record payload the store indexes on.
type envelope struct {
	ID        string `json:"id"`
	UpdatedAt string `json:"updated_at"`
	DateKey   string `json:"date_key"`
	DeletedAt string `json:"deleted_at"`
}

// NewRow builds a Row from one raw record payload. The payload must at least
// carry a non-empty id.
func NewRow(owner, collection string, payload []byte) (Row, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Row{}, fmt.Errorf("malformed record payload: %w", err)
	}
	if env.ID == "" {
		return Row{}, fmt.Errorf("record payload has no id")
	}

	return Row{
		Owner:      owner,
		Collection: collection,
		ID:         env.ID,
		UpdatedAt:  clock.Parse(env.UpdatedAt),
		DateKey:    env.DateKey,
		DeletedAt:  env.DeletedAt,
		Payload:    payload,
	}, nil
}
