// Package server initializes and runs the sync server: storage, migrations,
// the HTTP API and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/server/api"
	"github.com/nvoronin/daybook/internal/server/auth"
	"github.com/nvoronin/daybook/internal/server/config"
	"github.com/nvoronin/daybook/internal/server/migrations"
	"github.com/nvoronin/daybook/internal/server/records"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	repo   records.Repository
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	repo, err := records.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("records repo creation error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, repo: repo}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// MintToken issues a device token signed with the configured secret. Exposed
// through the server binary so the operator can enroll new devices.
func (app *App) MintToken(deviceID string) (string, error) {
	return auth.GenerateToken(deviceID, []byte(app.config.SecretKey), app.config.TokenValidityDuration)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	server := api.NewServer(app.repo, app.config.SecretKey, app.logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Run(ctx, app.config.EndpointAddr); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
