package exec

import (
	"testing"

	"github.com/naftah-lang/naftah/internal/declare"
	"github.com/naftah-lang/naftah/internal/errors"
)

func TestResolveVariable_OrderAndShadowing(t *testing.T) {
	root := NewRootScope()
	if err := root.DefineVariable("x", declare.NewVariable("x", declare.TypeMeta{Name: "int"}), false); err != nil {
		t.Fatalf("DefineVariable: %v", err)
	}
	rootVar, _, _ := root.GetVariable("x", true)
	_ = rootVar

	child := newChildScope(root)
	callID := child.BeginCallScope("f")
	if err := child.DefineParameter("x", declare.NewParameter("x", declare.TypeMeta{Name: "int"}), false); err != nil {
		t.Fatalf("DefineParameter: %v", err)
	}

	// No values assigned yet: ResolveVariable should fall through to the
	// root variable since the parameter's Current is nil.
	if _, ok := child.ResolveVariable("x"); ok {
		t.Fatal("expected no resolution while all candidates are nil")
	}

	if _, param, err := child.GetParameter("x", false); err != nil {
		t.Fatalf("GetParameter: %v", err)
	} else {
		param.Current = stringValue("param-value")
	}

	got, ok := child.ResolveVariable("x")
	if !ok || got.String() != "param-value" {
		t.Fatalf("expected parameter to win over ordinary variable, got %v ok=%v", got, ok)
	}

	if err := child.DefineArgument("x", stringValue("arg-value"), false); err != nil {
		t.Fatalf("DefineArgument: %v", err)
	}
	got, ok = child.ResolveVariable("x")
	if !ok || got.String() != "arg-value" {
		t.Fatalf("expected argument to win over parameter, got %v ok=%v", got, ok)
	}

	child.BeginLoopScope(callID + "-loop")
	if err := child.DefineLoopVariable("x", stringValue("loop-value"), false); err != nil {
		t.Fatalf("DefineLoopVariable: %v", err)
	}
	got, ok = child.ResolveVariable("x")
	if !ok || got.String() != "loop-value" {
		t.Fatalf("expected loop variable to win over everything, got %v ok=%v", got, ok)
	}
}

func TestDefineVariable_RedeclarationError(t *testing.T) {
	root := NewRootScope()
	if err := root.DefineVariable("x", declare.NewVariable("x", declare.TypeMeta{}), false); err != nil {
		t.Fatalf("first DefineVariable: %v", err)
	}
	err := root.DefineVariable("x", declare.NewVariable("x", declare.TypeMeta{}), false)
	if !errors.IsRedeclaration(err) {
		t.Fatalf("expected RedeclarationError, got %v", err)
	}
	if err := root.DefineVariable("x", declare.NewVariable("x", declare.TypeMeta{}), true); err != nil {
		t.Fatalf("lenient redeclaration should succeed silently, got %v", err)
	}
}

func TestGetVariable_NameNotFound(t *testing.T) {
	root := NewRootScope()
	_, _, err := root.GetVariable("missing", false)
	if !errors.IsNameNotFound(err) {
		t.Fatalf("expected NameNotFoundError, got %v", err)
	}
	_, _, err = root.GetVariable("missing", true)
	if err != nil {
		t.Fatalf("safe lookup should not error, got %v", err)
	}
}

func TestSetVariable_UpdatesNearestAncestor(t *testing.T) {
	root := NewRootScope()
	root.DefineVariable("x", declare.NewVariable("x", declare.TypeMeta{}), false)
	child := newChildScope(root)

	updated := declare.NewVariable("x", declare.TypeMeta{})
	updated.Current = stringValue("updated")
	child.SetVariable("x", updated)

	_, v, err := root.GetVariable("x", false)
	if err != nil {
		t.Fatalf("GetVariable: %v", err)
	}
	if v.Current == nil || v.Current.String() != "updated" {
		t.Fatalf("expected root's binding to be updated in place, got %v", v.Current)
	}
}

func TestRemoveLoopVariable_LenientVsStrict(t *testing.T) {
	root := NewRootScope()
	root.BeginLoopScope("L")

	if err := root.RemoveLoopVariable("i", true); err != nil {
		t.Fatalf("lenient remove of an absent name should succeed, got %v", err)
	}
	if err := root.RemoveLoopVariable("i", false); !errors.IsNameNotFound(err) {
		t.Fatalf("strict remove of an absent name should fail with NameNotFoundError, got %v", err)
	}

	root.DefineLoopVariable("i", stringValue("0"), false)
	if err := root.RemoveLoopVariable("i", false); err != nil {
		t.Fatalf("remove of a present name should succeed, got %v", err)
	}
	if root.ContainsLoopVariable("i") {
		t.Fatal("expected i to be gone after removal")
	}
}

func TestBeginCallScope_FunctionCallIDShape(t *testing.T) {
	root := NewRootScope()
	child := newChildScope(root)
	id := child.BeginCallScope("greet")
	want := "1-greet-"
	if len(id) <= len(want) || id[:len(want)] != want {
		t.Fatalf("expected functionCallID to start with %q, got %q", want, id)
	}
}

type stringValue string

func (s stringValue) Type() string   { return "string" }
func (s stringValue) String() string { return string(s) }
