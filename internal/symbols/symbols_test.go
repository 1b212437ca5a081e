package symbols

import (
	"testing"

	"github.com/sigma-lang/sigma/internal/types"
)

func TestNewSymbolTableSeedsBuiltins(t *testing.T) {
	st := NewSymbolTable()
	for _, name := range []string{"print", "println"} {
		sym, ok := st.Lookup(name)
		if !ok {
			t.Fatalf("expected built-in %q to be defined in Global", name)
		}
		if sym.Kind != KindMethod {
			t.Errorf("%q should be a method symbol, got %s", name, sym.Kind)
		}
	}
}

func TestDefineRejectsDuplicateInSameScope(t *testing.T) {
	st := NewSymbolTable()
	sym := &Symbol{Name: "x", Type: types.Int, Kind: KindVariable}
	if !st.Define(sym) {
		t.Fatal("first definition should succeed")
	}
	if st.Define(&Symbol{Name: "x", Type: types.Int, Kind: KindVariable}) {
		t.Fatal("duplicate definition in the same scope should fail")
	}
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	st := NewSymbolTable()
	st.Define(&Symbol{Name: "x", Type: types.Int, Kind: KindVariable})
	st.EnterScope(ScopeBlock)
	if !st.Define(&Symbol{Name: "x", Type: types.String, Kind: KindVariable}) {
		t.Fatal("shadowing in a nested scope should be allowed")
	}
	sym, _ := st.Lookup("x")
	if !types.Equal(sym.Type, types.String) {
		t.Errorf("inner x should shadow outer x, got type %s", sym.Type)
	}
	st.ExitScope()
	sym, _ = st.Lookup("x")
	if !types.Equal(sym.Type, types.Int) {
		t.Errorf("after exiting the block scope, outer x should be visible, got %s", sym.Type)
	}
}

func TestLookupLocalDoesNotSearchOuterScopes(t *testing.T) {
	st := NewSymbolTable()
	st.Define(&Symbol{Name: "x", Type: types.Int, Kind: KindVariable})
	st.EnterScope(ScopeBlock)
	if _, ok := st.LookupLocal("x"); ok {
		t.Fatal("LookupLocal should not see outer-scope symbols")
	}
	if _, ok := st.Lookup("x"); !ok {
		t.Fatal("Lookup should see outer-scope symbols")
	}
}

func TestIsInMethodScope(t *testing.T) {
	st := NewSymbolTable()
	if st.IsInMethodScope() {
		t.Fatal("global scope should not report as a method scope")
	}
	st.EnterScope(ScopeMethod)
	st.EnterScope(ScopeBlock)
	if !st.IsInMethodScope() {
		t.Fatal("a block nested in a method should report IsInMethodScope true")
	}
}

func TestEnclosingClass(t *testing.T) {
	st := NewSymbolTable()
	if got := st.EnclosingClass(); got != "" {
		t.Fatalf("expected no enclosing class at global scope, got %q", got)
	}
	st.EnterClassScope("Widget")
	st.EnterScope(ScopeMethod)
	if got := st.EnclosingClass(); got != "Widget" {
		t.Fatalf("expected enclosing class Widget, got %q", got)
	}
}

func TestExitScopePanicsAtGlobal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected ExitScope on Global scope to panic")
		}
	}()
	st := NewSymbolTable()
	st.ExitScope()
}

func TestScopeSymbolsPreserveDeclarationOrder(t *testing.T) {
	st := NewSymbolTable()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		st.Define(&Symbol{Name: n, Type: types.Int, Kind: KindVariable})
	}
	got := st.Global().Symbols()
	// built-ins (print, println) come first, then declarations in order.
	var gotNames []string
	for _, s := range got {
		gotNames = append(gotNames, s.Name)
	}
	wantTail := names
	if len(gotNames) < len(wantTail) {
		t.Fatalf("expected at least %d symbols, got %d", len(wantTail), len(gotNames))
	}
	tail := gotNames[len(gotNames)-len(wantTail):]
	for i, n := range wantTail {
		if tail[i] != n {
			t.Fatalf("declaration order not preserved: got %v, want tail %v", tail, wantTail)
		}
	}
}
