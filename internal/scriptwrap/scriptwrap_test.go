package scriptwrap

import (
	"testing"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/parser"
)

func parseUnit(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	p := parser.New(src)
	unit := p.ParseCompilationUnit()
	errs, _ := p.Errors()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return unit
}

func TestWrapLiftsLooseStatementsIntoScriptRun(t *testing.T) {
	unit := parseUnit(t, "int x = 10; print(x);")
	wrapped := Wrap(unit)

	if len(wrapped.Statements) != 1 {
		t.Fatalf("expected exactly one top-level statement, got %d", len(wrapped.Statements))
	}
	script, ok := wrapped.Statements[0].(*ast.ClassDeclaration)
	if !ok || script.Name.Value != ScriptClassName {
		t.Fatalf("expected a Script class, got %#v", wrapped.Statements[0])
	}
	if len(script.Members) != 1 {
		t.Fatalf("expected a single run() member, got %d", len(script.Members))
	}
	run, ok := script.Members[0].(*ast.MethodDeclaration)
	if !ok || run.Name.Value != RunMethodName || run.ReturnType != "void" {
		t.Fatalf("expected void run(), got %#v", script.Members[0])
	}
	if len(run.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements carried into run(), got %d", len(run.Body.Statements))
	}
}

func TestWrapLiftsTopLevelMethodsAsScriptMembers(t *testing.T) {
	unit := parseUnit(t, "int helper() { return 1; } int x = helper();")
	wrapped := Wrap(unit)
	script := wrapped.Statements[0].(*ast.ClassDeclaration)
	if len(script.Members) != 2 {
		t.Fatalf("expected run() plus the lifted helper method, got %d members", len(script.Members))
	}
	if script.Members[0].(*ast.MethodDeclaration).Name.Value != RunMethodName {
		t.Fatal("expected run() to be the first member")
	}
	if script.Members[1].(*ast.MethodDeclaration).Name.Value != "helper" {
		t.Fatalf("expected helper() preserved as a member, got %#v", script.Members[1])
	}
}

func TestWrapAppendsExistingClassesAfterScript(t *testing.T) {
	unit := parseUnit(t, "int x = 1; class Widget { int count; }")
	wrapped := Wrap(unit)
	if len(wrapped.Statements) != 2 {
		t.Fatalf("expected Script + Widget, got %d statements", len(wrapped.Statements))
	}
	if wrapped.Statements[0].(*ast.ClassDeclaration).Name.Value != ScriptClassName {
		t.Fatal("expected Script to come first")
	}
	if wrapped.Statements[1].(*ast.ClassDeclaration).Name.Value != "Widget" {
		t.Fatal("expected Widget preserved after Script")
	}
}

func TestWrapIsNoOpWhenOnlyClassesPresent(t *testing.T) {
	unit := parseUnit(t, "class A { int f; } class B { int g; }")
	wrapped := Wrap(unit)
	if wrapped != unit {
		t.Fatal("expected Wrap to return the same unit unchanged when only classes are present")
	}
}

func TestWrapIsIdempotentOnAlreadyWrappedUnit(t *testing.T) {
	unit := parseUnit(t, "int x = 1;")
	once := Wrap(unit)
	twice := Wrap(once)
	if twice != once {
		t.Fatal("expected Wrap to be a no-op on an already-wrapped unit")
	}
}

func TestWrapOnEmptySourceIsUnchanged(t *testing.T) {
	unit := parseUnit(t, "")
	wrapped := Wrap(unit)
	if len(wrapped.Statements) != 0 {
		t.Fatalf("expected empty unit to stay empty, got %d statements", len(wrapped.Statements))
	}
}
