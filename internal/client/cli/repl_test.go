package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) ListTasks(ctx context.Context) error {
	f.calls = append(f.calls, "list")
	return nil
}
func (f *fakeExec) AddTask(ctx context.Context) error {
	f.calls = append(f.calls, "add")
	return nil
}
func (f *fakeExec) DoneTask(ctx context.Context, id string) error {
	f.calls = append(f.calls, "done")
	f.arg = id
	return nil
}
func (f *fakeExec) DeleteTask(ctx context.Context, id string) error {
	f.calls = append(f.calls, "del")
	f.arg = id
	return nil
}
func (f *fakeExec) ListTodos(ctx context.Context) error {
	f.calls = append(f.calls, "todos")
	return nil
}
func (f *fakeExec) AddTodo(ctx context.Context) error {
	f.calls = append(f.calls, "todo")
	return nil
}
func (f *fakeExec) DoneTodo(ctx context.Context, id string) error {
	f.calls = append(f.calls, "tododone")
	f.arg = id
	return nil
}
func (f *fakeExec) MyDay(ctx context.Context) error {
	f.calls = append(f.calls, "myday")
	return nil
}
func (f *fakeExec) Pin(ctx context.Context) error {
	f.calls = append(f.calls, "pin")
	return nil
}
func (f *fakeExec) Sync(ctx context.Context) error { f.calls = append(f.calls, "sync"); return nil }
func (f *fakeExec) Namespace(ctx context.Context) error {
	f.calls = append(f.calls, "ns")
	return nil
}
func (f *fakeExec) SwitchNamespace(ctx context.Context) error {
	f.calls = append(f.calls, "nsswitch")
	return nil
}
func (f *fakeExec) VerifyNamespace(ctx context.Context) error {
	f.calls = append(f.calls, "nsverify")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"add",
		"list",
		"done abc",
		"sync",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc, io.Discard)

	wantOrder := []string{"login", "add", "list", "done", "sync"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if exec.arg != "abc" {
		t.Fatalf("done id not forwarded: %q", exec.arg)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	input := strings.NewReader("done\ntododone\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc, io.Discard)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_NamespaceCommands(t *testing.T) {
	input := strings.NewReader("ns\nnsverify\nnsswitch\nexit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc, io.Discard)

	want := []string{"ns", "nsverify", "nsswitch"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls: %v", exec.calls)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("call %d: got %q, want %q", i, exec.calls[i], c)
		}
	}
}
