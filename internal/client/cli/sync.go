package cli

import (
	"context"
	"fmt"

	"github.com/nvoronin/daybook/internal/models"
	"github.com/nvoronin/daybook/internal/syncer"
)

// Sync runs a full manual pass. This is the one affordance allowed to
// bootstrap an empty remote partition, because the user asked for it.
func (a *App) Sync(ctx context.Context) error {
	if !a.isLoggedIn() {
		return fmt.Errorf("log in first")
	}

	reports := a.registry.SyncAll(ctx, syncer.Options{AllowBootstrap: true}, nil)

	for _, kind := range models.Kinds() {
		report, ok := reports[kind]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%-5s  %s", kind, report.Status)
		if report.Pushed > 0 {
			line += fmt.Sprintf(", pushed %d", report.Pushed)
		}
		if report.Blocked != "" {
			line += fmt.Sprintf(", push blocked (%s)", report.Blocked)
		}
		if report.Err != nil {
			line += fmt.Sprintf(": %v", report.Err)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	mode := a.Mode
	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(a.out, "namespace: %s\n", owner)
	fmt.Fprintf(a.out, "mode:      %s\n", mode)
	fmt.Fprintf(a.out, "logged in: %t\n", a.isLoggedIn())
	fmt.Fprintf(a.out, "tasks:     %d\n", len(a.registry.Tasks.List(ctx, owner)))
	fmt.Fprintf(a.out, "todos:     %d\n", len(a.registry.Todos.List(ctx, owner)))
	fmt.Fprintf(a.out, "myday:     %d\n", len(a.registry.MyDay.List(ctx, owner)))
	return nil
}
