package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvoronin/daybook/internal/common"
	"github.com/nvoronin/daybook/internal/models"
)

// shortID trims a UUID for display; commands accept unique prefixes back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID expands a possibly-shortened id to the single record id it
// prefixes. Ambiguous or unknown prefixes are errors.
func resolveID[T models.Record](records []T, token string) (string, error) {
	match := ""
	for _, rec := range records {
		if !strings.HasPrefix(rec.Key(), token) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id %q is ambiguous", token)
		}
		match = rec.Key()
	}
	if match == "" {
		return "", fmt.Errorf("id %q: %w", token, common.ErrNotFound)
	}
	return match, nil
}

func (a *App) ListTasks(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	tasks := a.registry.Tasks.List(ctx, owner)
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks.")
		return nil
	}
	for _, task := range tasks {
		steps := ""
		if n := len(task.Steps); n > 0 {
			done := 0
			for _, s := range task.Steps {
				if s.Done {
					done++
				}
			}
			steps = fmt.Sprintf(" [%d/%d]", done, n)
		}
		fmt.Fprintf(a.out, "%s  %-6s  %s%s\n", shortID(task.ID), task.Status, task.Title, steps)
	}
	return nil
}

func (a *App) AddTask(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "Task title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	task := models.NewTask(title)
	a.registry.Tasks.Put(ctx, owner, task)
	fmt.Fprintf(a.out, "Added task %s\n", shortID(task.ID))
	return nil
}

func (a *App) DoneTask(ctx context.Context, id string) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	full, err := resolveID(a.registry.Tasks.List(ctx, owner), id)
	if err != nil {
		return err
	}
	task, err := a.registry.Tasks.Get(ctx, owner, full)
	if err != nil {
		return err
	}

	task.Status = models.TaskStatusDone
	a.registry.Tasks.Put(ctx, owner, task.Touched())
	fmt.Fprintf(a.out, "Done: %s\n", task.Title)
	return nil
}

func (a *App) DeleteTask(ctx context.Context, id string) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	full, err := resolveID(a.registry.Tasks.List(ctx, owner), id)
	if err != nil {
		return err
	}
	if err := a.registry.Tasks.Delete(ctx, owner, full); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", shortID(full))
	return nil
}
