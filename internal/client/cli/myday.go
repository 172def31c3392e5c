package cli

import (
	"context"
	"fmt"

	"github.com/nvoronin/daybook/internal/clock"
	"github.com/nvoronin/daybook/internal/models"
)

func (a *App) MyDay(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	today := clock.DateKey(clock.Now())
	pins := a.registry.MyDay.List(ctx, owner)

	shown := 0
	for _, pin := range pins {
		if pin.DateKey != today {
			continue
		}
		fmt.Fprintf(a.out, "%s  %-5s  %s\n", shortID(pin.ID), pin.RefKind, a.refTitle(ctx, owner, pin))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(a.out, "My Day is empty.")
	}
	return nil
}

// refTitle resolves the pinned record's title. Pins referencing records this
// device has not pulled yet still display, just without a title.
func (a *App) refTitle(ctx context.Context, owner string, pin models.DayItem) string {
	switch pin.RefKind {
	case models.KindTasks:
		if task, err := a.registry.Tasks.Get(ctx, owner, pin.RefID); err == nil {
			return task.Title
		}
	case models.KindTodos:
		if todo, err := a.registry.Todos.Get(ctx, owner, pin.RefID); err == nil {
			return todo.Title
		}
	}
	return fmt.Sprintf("(unknown %s)", shortID(pin.RefID))
}

func (a *App) Pin(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	kindText, err := GetSimpleText(a.reader, "Pin what? (task/todo)", a.out)
	if err != nil {
		return err
	}
	var kind models.Kind
	switch kindText {
	case "task", "tasks":
		kind = models.KindTasks
	case "todo", "todos":
		kind = models.KindTodos
	default:
		return fmt.Errorf("unknown kind %q", kindText)
	}

	token, err := GetSimpleText(a.reader, "Record id", a.out)
	if err != nil {
		return err
	}

	var refID string
	switch kind {
	case models.KindTasks:
		refID, err = resolveID(a.registry.Tasks.List(ctx, owner), token)
	case models.KindTodos:
		refID, err = resolveID(a.registry.Todos.List(ctx, owner), token)
	}
	if err != nil {
		return err
	}

	// One pin per record per day.
	today := clock.DateKey(clock.Now())
	for _, pin := range a.registry.MyDay.List(ctx, owner) {
		if pin.RefID == refID && pin.DateKey == today {
			fmt.Fprintln(a.out, "Already pinned today.")
			return nil
		}
	}

	pin := models.NewDayItem(kind, refID)
	a.registry.MyDay.Put(ctx, owner, pin)
	fmt.Fprintf(a.out, "Pinned %s\n", shortID(refID))
	return nil
}
