package service

import (
	"context"
	"fmt"

	"github.com/nvoronin/daybook/internal/client/namespace"
	"github.com/nvoronin/daybook/internal/client/syncstate"
	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/models"
	"github.com/nvoronin/daybook/internal/syncer"
)

// Counter is the read-only remote surface namespace verification needs.
type Counter interface {
	Count(ctx context.Context, kind models.Kind, owner string) (int, error)
}

// Registry groups the three collections and runs the flows that span them:
// full sync, namespace switching and namespace verification.
type Registry struct {
	Tasks *Collection[models.Task]
	Todos *Collection[models.Todo]
	MyDay *Collection[models.DayItem]

	resolver *namespace.Resolver
	state    *syncstate.Tracker
	counter  Counter
	log      logging.Logger
}

func NewRegistry(
	tasks *Collection[models.Task],
	todos *Collection[models.Todo],
	myday *Collection[models.DayItem],
	resolver *namespace.Resolver,
	state *syncstate.Tracker,
	counter Counter,
	log logging.Logger,
) *Registry {
	return &Registry{
		Tasks:    tasks,
		Todos:    todos,
		MyDay:    myday,
		resolver: resolver,
		state:    state,
		counter:  counter,
		log:      log,
	}
}

// Owner resolves the active namespace.
func (r *Registry) Owner(ctx context.Context) (string, error) {
	return r.resolver.Current(ctx)
}

// SyncAll runs one sync pass per collection. Collections sync independently;
// one failing never stops the others.
func (r *Registry) SyncAll(ctx context.Context, opts syncer.Options, onStatus func(models.Kind, syncer.Status)) map[models.Kind]syncer.Report {
	owner, err := r.Owner(ctx)
	if err != nil {
		r.log.Warn(ctx, "cannot resolve namespace, skipping sync", "error", err)
		return nil
	}

	status := func(kind models.Kind) func(syncer.Status) {
		if onStatus == nil {
			return nil
		}
		return func(s syncer.Status) { onStatus(kind, s) }
	}

	return map[models.Kind]syncer.Report{
		models.KindTasks: r.Tasks.Sync(ctx, owner, opts, status(models.KindTasks)),
		models.KindTodos: r.Todos.Sync(ctx, owner, opts, status(models.KindTodos)),
		models.KindMyDay: r.MyDay.Sync(ctx, owner, opts, status(models.KindMyDay)),
	}
}

// SwitchNamespace moves the client into another owner partition. The pull
// history of both the departed and the entered partition is forgotten, so the
// client counts as fresh there until it pulls again; a pull-only refresh runs
// immediately when the server is reachable.
func (r *Registry) SwitchNamespace(ctx context.Context, next string) error {
	old, err := r.Owner(ctx)
	if err != nil {
		return fmt.Errorf("resolve current namespace: %w", err)
	}
	if next == old {
		return nil
	}

	if err := r.resolver.Store(ctx, next); err != nil {
		return fmt.Errorf("persist namespace: %w", err)
	}
	if err := r.state.ResetAll(ctx, old); err != nil {
		r.log.Warn(ctx, "could not reset sync state", "owner", old, "error", err)
	}
	if err := r.state.ResetAll(ctx, next); err != nil {
		r.log.Warn(ctx, "could not reset sync state", "owner", next, "error", err)
	}

	r.log.Info(ctx, "switched namespace", "from", old, "to", next)

	// Best effort: when offline these report offline and local stays as-is.
	r.Tasks.PullOnly(ctx, next)
	r.Todos.PullOnly(ctx, next)
	r.MyDay.PullOnly(ctx, next)
	return nil
}

// VerifyNamespace returns the remote record counts per collection for a
// candidate owner, letting the user inspect a partition before switching.
func (r *Registry) VerifyNamespace(ctx context.Context, candidate string) (map[models.Kind]int, error) {
	counts := make(map[models.Kind]int, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		n, err := r.counter.Count(ctx, kind, candidate)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		counts[kind] = n
	}
	return counts, nil
}
