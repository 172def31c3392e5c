// Package cli implements the interactive Daybook client: a REPL over the
// collection services, with a background watcher that tracks server
// reachability and syncs on reconnect.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nvoronin/daybook/internal/client/config"
	"github.com/nvoronin/daybook/internal/client/namespace"
	"github.com/nvoronin/daybook/internal/client/remote"
	"github.com/nvoronin/daybook/internal/client/service"
	"github.com/nvoronin/daybook/internal/client/store"
	"github.com/nvoronin/daybook/internal/client/syncstate"
	"github.com/nvoronin/daybook/internal/clock"
	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/models"
	"github.com/nvoronin/daybook/internal/syncer"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// tokenKey is the metadata slot holding the device's bearer token.
const tokenKey = "auth_token"

type App struct {
	config   *config.Config
	registry *service.Registry
	api      *remote.Client
	meta     store.KV
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	Mode     Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.Default())

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	docs := store.NewDocumentKV(db)
	meta := store.NewMetadataKV(db)

	tracker := syncstate.NewTracker(meta)
	resolver := namespace.NewResolver(meta, log)

	token := func(ctx context.Context) string {
		v, err := meta.Get(ctx, tokenKey)
		if err != nil {
			return ""
		}
		return string(v)
	}
	api := remote.NewClient(c.ServerEndpointURL, token, log)

	// Sync passes run only for an authenticated device; without a token the
	// engine reports idle and leaves local data alone.
	owner := func(ctx context.Context) (string, error) {
		if token(ctx) == "" {
			return "", nil
		}
		return resolver.Current(ctx)
	}
	online := func(ctx context.Context) bool {
		probe, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return api.Health(probe) == nil
	}

	window := func() (string, string) {
		now := clock.Now()
		return clock.DateKey(clock.WindowStart(now, c.MyDayLookbackDays)), clock.DateKey(now)
	}

	tasks := service.NewCollection[models.Task](models.KindTasks,
		store.NewCollection[models.Task](docs, models.KindTasks, log),
		syncer.NewEngine[models.Task](models.KindTasks,
			remote.NewCollection[models.Task](api, models.KindTasks, nil), tracker, owner, online, log),
		log)
	todos := service.NewCollection[models.Todo](models.KindTodos,
		store.NewCollection[models.Todo](docs, models.KindTodos, log),
		syncer.NewEngine[models.Todo](models.KindTodos,
			remote.NewCollection[models.Todo](api, models.KindTodos, nil), tracker, owner, online, log),
		log)
	myday := service.NewCollection[models.DayItem](models.KindMyDay,
		store.NewCollection[models.DayItem](docs, models.KindMyDay, log),
		syncer.NewEngine[models.DayItem](models.KindMyDay,
			remote.NewCollection[models.DayItem](api, models.KindMyDay, window), tracker, owner, online, log),
		log)

	registry := service.NewRegistry(tasks, todos, myday, resolver, tracker, api, log)

	return &App{
		config:   c,
		registry: registry,
		api:      api,
		meta:     meta,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		fmt.Fprintf(a.out, "Now %s\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	v, err := a.meta.Get(context.Background(), tokenKey)
	return err == nil && len(v) > 0
}

// Run starts the reachability watcher and the REPL. Returns when the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Daybook CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin), a.out)
}

// StartOnlineStatusWatcher probes the server on an interval and flips the
// mode. A transition back to online triggers a background sync pass so edits
// made offline drain without user action.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probe, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Health(probe)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
				continue
			}
			if a.Mode != ModeOnline {
				a.setMode(ModeOnline)
				a.registry.SyncAll(ctx, syncer.Options{}, nil)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		if owner, err := a.registry.Owner(context.Background()); err == nil {
			s = owner + " "
		}
	}
	if a.Mode != "" {
		s += string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
