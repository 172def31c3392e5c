package syncer

import (
	"context"

	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/models"
)

// Status is reported to the caller as a sync pass moves through its steps.
type Status string

const (
	StatusOffline Status = "offline"
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSynced  Status = "synced"
	StatusError   Status = "error"
)

// Remote is the collection protocol the engine consumes: full pull and
// idempotent upsert push, both scoped to an owner partition. Partition
// isolation is the backend's job.
type Remote[T models.Record] interface {
	Pull(ctx context.Context, owner string) (models.Snapshot[T], error)
	Push(ctx context.Context, owner string, records []T) error
}

// StateTracker persists the pulled-once flag per (collection, owner). It is
// flipped only after an unambiguously successful pull and survives until an
// explicit namespace switch.
type StateTracker interface {
	WasPulled(ctx context.Context, kind models.Kind, owner string) (bool, error)
	MarkPulled(ctx context.Context, kind models.Kind, owner string) error
}

// OwnerFunc resolves the current owner partition. Empty means not signed in.
type OwnerFunc func(ctx context.Context) (string, error)

// OnlineFunc reports whether the device currently has connectivity.
type OnlineFunc func(ctx context.Context) bool

// Options tune a single sync pass.
type Options struct {
	// AllowBootstrap permits pushing into an empty remote partition. Only
	// the explicit manual-sync affordance sets it.
	AllowBootstrap bool

	// SkipPush runs the pull-and-merge half only, used right after a
	// namespace switch.
	SkipPush bool
}

// Report summarises one sync pass for diagnostics. A guardrail block is not
// an error: the merge result is still valid.
type Report struct {
	Status  Status
	Blocked BlockReason
	Pushed  int
	Err     error
}

// Engine coordinates one collection's sync: pull, mark, merge, guard, push.
// Instantiated once per collection kind with identical semantics.
type Engine[T models.Record] struct {
	kind   models.Kind
	remote Remote[T]
	state  StateTracker
	owner  OwnerFunc
	online OnlineFunc
	log    logging.Logger
}

// NewEngine builds an engine for one collection. A nil remote means sync is
// not configured; every pass then reports offline and returns local state
// untouched.
func NewEngine[T models.Record](kind models.Kind, remote Remote[T], state StateTracker, owner OwnerFunc, online OnlineFunc, log logging.Logger) *Engine[T] {
	return &Engine[T]{
		kind:   kind,
		remote: remote,
		state:  state,
		owner:  owner,
		online: online,
		log:    log.With("collection", string(kind)),
	}
}

// Sync reconciles local against the remote partition and returns the
// converged snapshot. Failures are soft: the returned snapshot is always
// usable, and Report says what happened. Every step is idempotent, so an
// overlapping or repeated invocation converges to the same state.
func (e *Engine[T]) Sync(ctx context.Context, local models.Snapshot[T], opts Options, onStatus func(Status)) (models.Snapshot[T], Report) {
	report := func(s Status) {
		if onStatus != nil {
			onStatus(s)
		}
	}

	if e.remote == nil || !e.online(ctx) {
		report(StatusOffline)
		return local, Report{Status: StatusOffline}
	}

	owner, err := e.owner(ctx)
	if err != nil || owner == "" {
		report(StatusIdle)
		return local, Report{Status: StatusIdle, Err: err}
	}

	report(StatusSyncing)

	// The guardrail needs the flag as it stood before this pass.
	pulledBefore, err := e.state.WasPulled(ctx, e.kind, owner)
	if err != nil {
		e.log.Warn(ctx, "sync state unreadable, treating client as fresh", "owner", owner, "error", err)
		pulledBefore = false
	}

	remote, err := e.remote.Pull(ctx, owner)
	if err != nil {
		e.log.Error(ctx, "pull failed", "owner", owner, "error", err)
		report(StatusError)
		return local, Report{Status: StatusError, Err: err}
	}

	// An empty result is still a successful pull; the fresh-client gate
	// opens permanently for this partition.
	if err := e.state.MarkPulled(ctx, e.kind, owner); err != nil {
		e.log.Warn(ctx, "could not persist pulled-once flag", "owner", owner, "error", err)
	}

	merged := Merge(local, remote)

	if opts.SkipPush {
		report(StatusSynced)
		return merged, Report{Status: StatusSynced}
	}

	check := PushCheck{
		PulledOnce:     pulledBefore,
		LocalCount:     len(local),
		RemoteCount:    len(remote),
		AllowBootstrap: opts.AllowBootstrap,
	}
	if reason, blocked := BlockPush(check); blocked {
		e.log.Debug(ctx, "push blocked", "owner", owner, "reason", string(reason),
			"local", check.LocalCount, "remote", check.RemoteCount)
		report(StatusSynced)
		return merged, Report{Status: StatusSynced, Blocked: reason}
	}

	upserts := Diff(local, remote)
	if len(upserts) == 0 {
		report(StatusSynced)
		return merged, Report{Status: StatusSynced}
	}

	if err := e.remote.Push(ctx, owner, upserts); err != nil {
		// The merge result is still correct locally; the same upserts
		// retry on the next pass because the local stamps stay newer.
		e.log.Error(ctx, "push failed", "owner", owner, "count", len(upserts), "error", err)
		report(StatusError)
		return merged, Report{Status: StatusError, Err: err}
	}

	e.log.Info(ctx, "synced", "owner", owner, "pushed", len(upserts), "records", len(merged))
	report(StatusSynced)
	return merged, Report{Status: StatusSynced, Pushed: len(upserts)}
}
