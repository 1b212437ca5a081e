package ast

import (
	"bytes"

	"github.com/sigma-lang/sigma/internal/token"
)

// VariableDeclaration is `Type name;`, `Type name = init;`, or, when
// IsConstant is set, the `final` form. Init is nil when omitted.
type VariableDeclaration struct {
	Token      token.Token // the type-keyword or class-name token
	TypeName   string
	Name       *Identifier
	Init       Expression
	IsConstant bool
}

func (v *VariableDeclaration) statementNode()    {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Lexeme }
func (v *VariableDeclaration) Pos() token.Position  { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	var out bytes.Buffer
	if v.IsConstant {
		out.WriteString("final ")
	}
	out.WriteString(v.TypeName + " " + v.Name.String())
	if v.Init != nil {
		out.WriteString(" = " + v.Init.String())
	}
	out.WriteString(";")
	return out.String()
}

// Assignment is `name = value;`.
type Assignment struct {
	Token token.Token // the '=' token
	Name  *Identifier
	Value Expression
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Lexeme }
func (a *Assignment) Pos() token.Position  { return a.Name.Pos() }
func (a *Assignment) String() string {
	return a.Name.String() + " = " + a.Value.String() + ";"
}

// ExpressionStatement is an expression evaluated for its side effects,
// with the result discarded: `expr;`.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Lexeme }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String() + ";"
	}
	return ";"
}

// PrintStatement is `print(expr);` or `println(expr);`. Newline
// distinguishes between the two forms.
type PrintStatement struct {
	Token   token.Token // the print/println identifier token
	Newline bool
	Value   Expression
}

func (p *PrintStatement) statementNode()       {}
func (p *PrintStatement) TokenLiteral() string { return p.Token.Lexeme }
func (p *PrintStatement) Pos() token.Position  { return p.Token.Pos }
func (p *PrintStatement) String() string {
	name := "print"
	if p.Newline {
		name = "println"
	}
	return name + "(" + p.Value.String() + ");"
}

// IfStatement is `if (cond) then (else else)?`. Else is nil when absent.
type IfStatement struct {
	Token     token.Token // the 'if' token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Lexeme }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (" + i.Condition.String() + ") " + i.Then.String())
	if i.Else != nil {
		out.WriteString(" else " + i.Else.String())
	}
	return out.String()
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Lexeme }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// ForEachStatement is `for (Type? name in iterable) body`. TypeName is
// "" when the type is omitted (inferred, per spec — inference rules are
// not defined; see the semantic analyzer's unsupported-construct
// rejection of this node).
type ForEachStatement struct {
	Token    token.Token // the 'for' token
	TypeName string
	Iter     *Identifier
	Iterable Expression
	Body     Statement
}

func (f *ForEachStatement) statementNode()       {}
func (f *ForEachStatement) TokenLiteral() string { return f.Token.Lexeme }
func (f *ForEachStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForEachStatement) String() string {
	typePart := ""
	if f.TypeName != "" {
		typePart = f.TypeName + " "
	}
	return "for (" + typePart + f.Iter.String() + " in " + f.Iterable.String() + ") " + f.Body.String()
}

// ReturnStatement is `return expr?;`. Value is nil for a bare `return;`.
type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Lexeme }
func (r *ReturnStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Value != nil {
		return "return " + r.Value.String() + ";"
	}
	return "return;"
}

// Block is a brace-delimited statement sequence: `{ statements... }`.
type Block struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Lexeme }
func (b *Block) Pos() token.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Statements {
		out.WriteString(s.String())
	}
	out.WriteString(" }")
	return out.String()
}
