// Package namespace resolves which remote owner partition this client's
// local data is scoped to.
package namespace

import (
	"context"
	"errors"
	"strings"

	"github.com/nvoronin/daybook/internal/client/store"
	"github.com/nvoronin/daybook/internal/logging"
)

// DefaultOwner is the partition used when none was ever chosen. It is a
// fixed constant, never a random value: two first-run clients must land in
// the same partition instead of silently forking into different empty ones.
const DefaultOwner = "primary"

const ownerKey = "namespace"

var ErrEmptyOwner = errors.New("owner identifier must not be empty")

// Resolver persists the active owner identifier in the metadata KV. A client
// is in exactly one namespace at a time.
type Resolver struct {
	kv  store.KV
	log logging.Logger
}

func NewResolver(kv store.KV, log logging.Logger) *Resolver {
	return &Resolver{kv: kv, log: log}
}

// Current returns the persisted owner identifier, filling in DefaultOwner
// when absent. A storage failure still yields DefaultOwner so callers can
// keep working against the deterministic default.
func (r *Resolver) Current(ctx context.Context) (string, error) {
	v, err := r.kv.Get(ctx, ownerKey)
	if err != nil {
		r.log.Warn(ctx, "namespace unreadable, using default", "error", err)
		return DefaultOwner, nil
	}
	if len(v) > 0 {
		return string(v), nil
	}

	if err := r.kv.Set(ctx, ownerKey, []byte(DefaultOwner)); err != nil {
		r.log.Warn(ctx, "could not persist default namespace", "error", err)
	}
	return DefaultOwner, nil
}

// Store persists next as the active owner identifier. The full switch
// protocol (sync-state reset plus pull-only refresh) lives one layer up;
// this only records the choice.
func (r *Resolver) Store(ctx context.Context, next string) error {
	next = strings.TrimSpace(next)
	if next == "" {
		return ErrEmptyOwner
	}
	return r.kv.Set(ctx, ownerKey, []byte(next))
}
