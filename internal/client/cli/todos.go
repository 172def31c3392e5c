package cli

import (
	"context"
	"fmt"

	"github.com/nvoronin/daybook/internal/models"
)

func (a *App) ListTodos(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	todos := a.registry.Todos.List(ctx, owner)
	if len(todos) == 0 {
		fmt.Fprintln(a.out, "No to-dos.")
		return nil
	}
	for _, todo := range todos {
		mark := " "
		if todo.Done {
			mark = "x"
		}
		due := ""
		if todo.Due != "" {
			due = "  due " + todo.Due
		}
		fmt.Fprintf(a.out, "%s  [%s]  %s%s\n", shortID(todo.ID), mark, todo.Title, due)
	}
	return nil
}

func (a *App) AddTodo(ctx context.Context) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "To-do title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}
	due, err := GetSimpleText(a.reader, "Due date YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return err
	}

	todo := models.NewTodo(title)
	todo.Due = due
	a.registry.Todos.Put(ctx, owner, todo)
	fmt.Fprintf(a.out, "Added to-do %s\n", shortID(todo.ID))
	return nil
}

func (a *App) DoneTodo(ctx context.Context, id string) error {
	owner, err := a.registry.Owner(ctx)
	if err != nil {
		return err
	}

	full, err := resolveID(a.registry.Todos.List(ctx, owner), id)
	if err != nil {
		return err
	}
	todo, err := a.registry.Todos.Get(ctx, owner, full)
	if err != nil {
		return err
	}

	todo.Done = true
	a.registry.Todos.Put(ctx, owner, todo.Touched())
	fmt.Fprintf(a.out, "Done: %s\n", todo.Title)
	return nil
}
