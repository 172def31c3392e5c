package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/models"
)

// schemaVersion is the document layout version. Anything else loads as empty.
const schemaVersion = 1

// keyPrefix namespaces document keys. Earlier builds stored documents under
// the bare collection name; Load migrates those once.
const keyPrefix = "daybook:"

type document struct {
	Version int                        `json:"version"`
	Records map[string]json.RawMessage `json:"records_by_id"`
}

// Collection persists one record collection as a versioned JSON document per
// owner partition. All access degrades rather than fails: a missing,
// malformed or unwritable document never surfaces as an error to the caller,
// because losing a save beats crashing an editing session (the next
// successful sync restores convergence).
type Collection[T models.Record] struct {
	kv   KV
	kind models.Kind
	log  logging.Logger
}

func NewCollection[T models.Record](kv KV, kind models.Kind, log logging.Logger) *Collection[T] {
	return &Collection[T]{kv: kv, kind: kind, log: log.With("collection", string(kind))}
}

func (c *Collection[T]) key(owner string) string {
	return keyPrefix + string(c.kind) + ":" + owner
}

// legacyKey is where pre-namespacing builds kept the document.
func (c *Collection[T]) legacyKey() string {
	return string(c.kind)
}

// Load reads the snapshot for an owner partition. Absent or unreadable
// documents yield an empty snapshot; individually malformed records are
// skipped.
func (c *Collection[T]) Load(ctx context.Context, owner string) models.Snapshot[T] {
	raw, err := c.kv.Get(ctx, c.key(owner))
	if err != nil {
		c.log.Warn(ctx, "document unreadable, starting empty", "owner", owner, "error", err)
		return models.Snapshot[T]{}
	}

	if raw == nil {
		return c.migrateLegacy(ctx, owner)
	}

	return c.decode(ctx, raw)
}

// Save writes the snapshot for an owner partition. Failures are logged and
// swallowed.
func (c *Collection[T]) Save(ctx context.Context, owner string, snap models.Snapshot[T]) {
	raw, err := c.encode(snap)
	if err != nil {
		c.log.Warn(ctx, "document not saved", "owner", owner, "error", err)
		return
	}
	if err := c.kv.Set(ctx, c.key(owner), raw); err != nil {
		c.log.Warn(ctx, "document not saved", "owner", owner, "error", err)
	}
}

// migrateLegacy consults the old un-namespaced key once, rewrites its data
// under the namespaced key and removes the original.
func (c *Collection[T]) migrateLegacy(ctx context.Context, owner string) models.Snapshot[T] {
	raw, err := c.kv.Get(ctx, c.legacyKey())
	if err != nil || raw == nil {
		return models.Snapshot[T]{}
	}

	snap := c.decode(ctx, raw)
	c.log.Info(ctx, "migrating legacy document", "owner", owner, "records", len(snap))

	c.Save(ctx, owner, snap)
	if err := c.kv.Delete(ctx, c.legacyKey()); err != nil {
		c.log.Warn(ctx, "legacy document not removed", "error", err)
	}
	return snap
}

func (c *Collection[T]) decode(ctx context.Context, raw []byte) models.Snapshot[T] {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.log.Warn(ctx, "malformed document, starting empty", "error", err)
		return models.Snapshot[T]{}
	}
	if doc.Version != schemaVersion {
		c.log.Warn(ctx, "unknown document version, starting empty", "version", doc.Version)
		return models.Snapshot[T]{}
	}

	snap := make(models.Snapshot[T], len(doc.Records))
	for id, rawRec := range doc.Records {
		var rec T
		if err := json.Unmarshal(rawRec, &rec); err != nil {
			c.log.Warn(ctx, "skipping malformed record", "id", id, "error", err)
			continue
		}
		if rec.Key() != id {
			c.log.Warn(ctx, "skipping record with mismatched id", "id", id)
			continue
		}
		snap[id] = rec
	}
	return snap
}

func (c *Collection[T]) encode(snap models.Snapshot[T]) ([]byte, error) {
	doc := document{Version: schemaVersion, Records: make(map[string]json.RawMessage, len(snap))}
	for id, rec := range snap {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal record %s: %w", id, err)
		}
		doc.Records[id] = raw
	}
	return json.Marshal(doc)
}
