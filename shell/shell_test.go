package shell

import (
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/embedkit/hostbind/errors"
	"github.com/embedkit/hostbind/instances"
)

type counter struct {
	n      int
	closed bool
}

func counterType(closed *[]*counter) Type {
	return Type{
		Name: "counter",
		New:  func() any { return &counter{} },
		Delete: func(obj any) {
			c := obj.(*counter)
			c.closed = true
			if closed != nil {
				*closed = append(*closed, c)
			}
		},
		Command: func(obj any) Command {
			c := obj.(*counter)
			return func(args []string) (string, error) {
				if len(args) == 0 {
					return "", errors.InvalidInput(errors.PhaseCommand, "usage: <name> get|incr")
				}
				switch args[0] {
				case "get":
					return strconv.Itoa(c.n), nil
				case "incr":
					c.n++
					return strconv.Itoa(c.n), nil
				}
				return "", errors.InvalidInput(errors.PhaseCommand, "unknown method "+args[0])
			}
		},
	}
}

func newTestShell(t *testing.T, closed *[]*counter) *Shell {
	t.Helper()
	sh := New()
	if err := sh.RegisterType(counterType(closed)); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}
	return sh
}

func TestShell_NewAndDispatch(t *testing.T) {
	sh := newTestShell(t, nil)

	name, err := sh.Eval("new counter c1")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if name != "c1" {
		t.Fatalf("new returned %q, want c1", name)
	}

	if out, err := sh.Eval("c1 incr"); err != nil || out != "1" {
		t.Fatalf("incr = %q, %v", out, err)
	}
	if out, err := sh.Eval("c1 get"); err != nil || out != "1" {
		t.Fatalf("get = %q, %v", out, err)
	}

	if out, _ := sh.Eval("exists c1"); out != "true" {
		t.Fatalf("exists = %q, want true", out)
	}
	if out, _ := sh.Eval("type c1"); out != "counter" {
		t.Fatalf("type = %q, want counter", out)
	}
}

func TestShell_DeleteUnbindsCommand(t *testing.T) {
	var closed []*counter
	sh := newTestShell(t, &closed)

	sh.Eval("new counter c1")
	if _, err := sh.Eval("delete c1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(closed) != 1 || !closed[0].closed {
		t.Fatal("destruction function should have run once")
	}
	if out, _ := sh.Eval("exists c1"); out != "false" {
		t.Fatal("instance should be gone")
	}

	// The command binding goes away with the table entry.
	_, err := sh.Eval("c1 get")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCommand, Kind: errors.KindUnknownCommand}) {
		t.Fatalf("want unknown_command after delete, got %v", err)
	}
}

func TestShell_Temporaries(t *testing.T) {
	sh := newTestShell(t, nil)

	name, err := sh.Eval("new counter")
	if err != nil {
		t.Fatalf("new temp failed: %v", err)
	}
	if !instances.IsTemporary(name) {
		t.Fatalf("anonymous instance got non-temp name %q", name)
	}

	// Temp names dispatch like any other bound command.
	if out, err := sh.Eval(name + " incr"); err != nil || out != "1" {
		t.Fatalf("temp dispatch = %q, %v", out, err)
	}

	if err := sh.Registry().DeleteIfTemporary(name); err != nil {
		t.Fatalf("DeleteIfTemporary failed: %v", err)
	}
	if sh.Registry().Exists(name) {
		t.Fatal("temp should be swept")
	}

	// Reserved prefix is rejected for user names.
	if _, err := sh.Eval("new counter __tempX"); err == nil {
		t.Fatal("reserved prefix must be rejected")
	}
}

func TestShell_EvalSweepsTemporaries(t *testing.T) {
	sh := newTestShell(t, nil)

	// A temp minted mid-line is scoped to the evaluation and swept after it.
	if _, err := sh.Eval("new counter; exists nothing"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if n := sh.Registry().Len(); n != 0 {
		t.Fatalf("registry has %d instances after eval, want 0", n)
	}

	// A temp handed back as the result is the caller's and survives.
	name, err := sh.Eval("new counter")
	if err != nil {
		t.Fatalf("new temp failed: %v", err)
	}
	if !sh.Registry().Exists(name) {
		t.Fatal("result temp must survive the sweep")
	}

	// Named instances are never swept.
	sh.Eval("new counter c1; c1 incr")
	if !sh.Registry().Exists("c1") {
		t.Fatal("named instance must survive the sweep")
	}
}

func TestShell_EvalSweepsOnError(t *testing.T) {
	sh := newTestShell(t, nil)

	if _, err := sh.Eval("new counter; bogus method"); err == nil {
		t.Fatal("bogus command should fail the evaluation")
	}
	if n := sh.Registry().Len(); n != 0 {
		t.Fatalf("failed eval leaked %d instances, want 0", n)
	}
}

func TestShell_EvalSequence(t *testing.T) {
	sh := newTestShell(t, nil)

	out, err := sh.Eval("new counter c1; c1 incr; c1 incr; c1 get")
	if err != nil {
		t.Fatalf("sequence failed: %v", err)
	}
	if out != "2" {
		t.Fatalf("sequence result = %q, want 2", out)
	}

	// A failing segment stops the sequence.
	if _, err := sh.Eval("c1 incr; nope get; c1 incr"); err == nil {
		t.Fatal("failing segment should fail the line")
	}
	if out, _ := sh.Eval("c1 get"); out != "3" {
		t.Fatalf("counter = %q, want 3 (segment after the failure must not run)", out)
	}
}

func TestShell_SelfDeletionUnbinds(t *testing.T) {
	sh := newTestShell(t, nil)
	sh.Eval("new counter c1")

	obj, err := sh.Registry().GetObject("c1")
	if err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}

	// Native teardown path: the object notifies the registry itself.
	sh.Registry().DeleteCallBack(obj)

	if sh.Registry().Exists("c1") {
		t.Fatal("instance should be gone after self-deletion")
	}
	if _, err := sh.Eval("c1 get"); err == nil {
		t.Fatal("command should be unbound after self-deletion")
	}
}

func TestShell_Errors(t *testing.T) {
	sh := newTestShell(t, nil)

	if _, err := sh.Eval("new widget"); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCommand, Kind: errors.KindUnknownType}) {
		t.Fatalf("want unknown_type, got %v", err)
	}
	if _, err := sh.Eval("delete nope"); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRegistry, Kind: errors.KindUndefinedName}) {
		t.Fatalf("want undefined_name, got %v", err)
	}
	if _, err := sh.Eval("type nope"); err == nil {
		t.Fatal("type on absent name should fail")
	}
	if _, err := sh.Eval("nope get"); err == nil {
		t.Fatal("dispatch to unbound name should fail")
	}
	if out, err := sh.Eval("   "); err != nil || out != "" {
		t.Fatalf("blank line = %q, %v", out, err)
	}
}

func TestShell_Ls(t *testing.T) {
	sh := newTestShell(t, nil)
	sh.Eval("new counter b")
	sh.Eval("new counter a")

	out, err := sh.Eval("ls")
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}
	if out != "a\nb" {
		t.Fatalf("ls = %q, want sorted names", out)
	}
}
