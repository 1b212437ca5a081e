package ast

import (
	"testing"

	"github.com/sigma-lang/sigma/internal/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.New(token.IDENT, name, token.Position{Line: 1, Column: 1}), Value: name}
}

func TestCompilationUnitEmpty(t *testing.T) {
	cu := &CompilationUnit{}
	if cu.TokenLiteral() != "" {
		t.Errorf("empty unit TokenLiteral() = %q, want empty", cu.TokenLiteral())
	}
	if cu.String() != "" {
		t.Errorf("empty unit String() = %q, want empty", cu.String())
	}
	if cu.Pos().Line != 1 || cu.Pos().Column != 1 {
		t.Errorf("empty unit Pos() = %+v, want 1:1 fallback", cu.Pos())
	}
}

func TestVariableDeclarationString(t *testing.T) {
	v := &VariableDeclaration{
		Token:    token.New(token.INT_TYPE, "int", token.Position{Line: 1, Column: 1}),
		TypeName: "int",
		Name:     ident("x"),
		Init:     &IntLiteral{Token: token.New(token.INT, "10", token.Position{Line: 1, Column: 9}), Value: 10},
	}
	want := "int x = 10;"
	if got := v.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestVariableDeclarationConstantString(t *testing.T) {
	v := &VariableDeclaration{
		Token:      token.New(token.FINAL, "final", token.Position{Line: 1, Column: 1}),
		TypeName:   "int",
		Name:       ident("K"),
		Init:       &IntLiteral{Token: token.New(token.INT, "1", token.Position{}), Value: 1},
		IsConstant: true,
	}
	want := "final int K = 1;"
	if got := v.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBinaryExpressionString(t *testing.T) {
	b := &Binary{
		Operator: "+",
		Left:     &IntLiteral{Token: token.New(token.INT, "10", token.Position{}), Value: 10},
		Right:    &IntLiteral{Token: token.New(token.INT, "5", token.Position{}), Value: 5},
	}
	want := "(10 + 5)"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCallOnMemberAccessString(t *testing.T) {
	call := &Call{
		Target: &MemberAccess{Object: ident("obj"), Member: "method"},
		Args:   []Expression{ident("a"), ident("b")},
	}
	want := "obj.method(a, b)"
	if got := call.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIfStatementWithElseString(t *testing.T) {
	stmt := &IfStatement{
		Condition: ident("cond"),
		Then:      &ExpressionStatement{Expression: ident("a")},
		Else:      &ExpressionStatement{Expression: ident("b")},
	}
	want := "if (cond) a; else b;"
	if got := stmt.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestClassDeclarationString(t *testing.T) {
	cls := &ClassDeclaration{
		Name: ident("Widget"),
		Members: []Statement{
			&FieldDeclaration{TypeName: "int", Name: ident("count")},
		},
	}
	got := cls.String()
	want := "class Widget {\n  int count;\n}"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewInstanceString(t *testing.T) {
	n := &NewInstance{ClassName: "Widget", Args: []Expression{ident("a")}}
	want := "new Widget(a)"
	if got := n.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
