package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	ListTasks(ctx context.Context) error
	AddTask(ctx context.Context) error
	DoneTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error

	ListTodos(ctx context.Context) error
	AddTodo(ctx context.Context) error
	DoneTodo(ctx context.Context, id string) error

	MyDay(ctx context.Context) error
	Pin(ctx context.Context) error

	Sync(ctx context.Context) error
	Namespace(ctx context.Context) error
	SwitchNamespace(ctx context.Context) error
	VerifyNamespace(ctx context.Context) error
	Status(ctx context.Context) error
}

const helpLoggedIn = "Available commands: (l)ist, add, done <id>, del <id>, todos, todo, tododone <id>, myday, pin, sync, ns, nsswitch, nsverify, status, logout, exit"
const helpLoggedOut = "Available commands: login, status, exit"

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on 'a'. Errors from handlers are printed and swallowed so the
// loop stays alive. Exits on scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	report := func(err error) {
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	for {
		fmt.Fprintf(out, "daybook %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}

		case "login":
			report(a.Login(ctx))
		case "logout":
			report(a.Logout(ctx))

		case "l", "list":
			report(a.ListTasks(ctx))
		case "add":
			report(a.AddTask(ctx))
		case "done":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: done <id>")
				continue
			}
			report(a.DoneTask(ctx, args[0]))
		case "del":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: del <id>")
				continue
			}
			report(a.DeleteTask(ctx, args[0]))

		case "todos":
			report(a.ListTodos(ctx))
		case "todo":
			report(a.AddTodo(ctx))
		case "tododone":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: tododone <id>")
				continue
			}
			report(a.DoneTodo(ctx, args[0]))

		case "myday":
			report(a.MyDay(ctx))
		case "pin":
			report(a.Pin(ctx))

		case "sync":
			report(a.Sync(ctx))

		case "ns":
			report(a.Namespace(ctx))
		case "nsswitch":
			report(a.SwitchNamespace(ctx))
		case "nsverify":
			report(a.VerifyNamespace(ctx))

		case "status":
			report(a.Status(ctx))

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
