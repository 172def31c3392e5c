package cli

import (
	"context"
	"fmt"

	"github.com/nvoronin/daybook/internal/models"
)

func (a *App) Namespace(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Current namespace: %s\n", owner)
	return nil
}

// SwitchNamespace re-homes the client into another owner partition. Local
// data keyed to the old namespace stays on disk untouched; the new partition
// starts from a fresh pull.
func (a *App) SwitchNamespace(ctx context.Context) error {
	next, err := GetSimpleText(a.reader, "Switch to namespace", a.out)
	if err != nil {
		return err
	}

	confirm, err := GetSimpleText(a.reader,
		fmt.Sprintf("Switch to %q? The client re-pulls before it may push again. (yes/no)", next), a.out)
	if err != nil {
		return err
	}
	if confirm != "yes" && confirm != "y" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.registry.SwitchNamespace(ctx, next); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Switched to %s\n", next)
	return nil
}

// VerifyNamespace shows remote record counts for a candidate namespace so
// the user can check it holds the expected data before switching.
func (a *App) VerifyNamespace(ctx context.Context) error {
	candidate, err := GetSimpleText(a.reader, "Namespace to verify", a.out)
	if err != nil {
		return err
	}

	counts, err := a.registry.VerifyNamespace(ctx, candidate)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Remote counts for %q:\n", candidate)
	for _, kind := range models.Kinds() {
		fmt.Fprintf(a.out, "  %-5s  %d\n", kind, counts[kind])
	}
	return nil
}
