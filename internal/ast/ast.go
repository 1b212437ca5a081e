// Package ast defines the Abstract Syntax Tree node types produced by the
// Sigma parser and consumed by the semantic analyzer and RPN generator.
//
// Nodes are modeled as tagged variants rather than a class hierarchy:
// Statement and Expression are marker interfaces implemented by a closed
// set of concrete struct types, and traversal is an exhaustive type
// switch rather than a virtual dispatch. There is no inheritance between
// node kinds.
package ast

import (
	"bytes"
	"strings"

	"github.com/sigma-lang/sigma/internal/token"
)

// Node is the common interface of every AST node.
type Node interface {
	// TokenLiteral returns the lexeme of the token the node is anchored to.
	TokenLiteral() string

	// String renders the node for debugging and test output; it is not a
	// guaranteed round-trippable pretty-printer.
	String() string

	// Pos returns the node's source position.
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing
// a value.
type Statement interface {
	Node
	statementNode()
}

// CompilationUnit is the root of a parsed source file: a sequence of
// top-level declarations and statements in source order.
type CompilationUnit struct {
	Statements []Statement
}

func (cu *CompilationUnit) TokenLiteral() string {
	if len(cu.Statements) > 0 {
		return cu.Statements[0].TokenLiteral()
	}
	return ""
}

func (cu *CompilationUnit) Pos() token.Position {
	if len(cu.Statements) > 0 {
		return cu.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (cu *CompilationUnit) String() string {
	var out bytes.Buffer
	for _, s := range cu.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// Parameter is a single formal parameter of a method declaration:
// `TypeName name`.
type Parameter struct {
	TypeName string
	Name     *Identifier
	Token    token.Token
}

func (p *Parameter) Pos() token.Position { return p.Token.Pos }
func (p *Parameter) String() string      { return p.TypeName + " " + p.Name.String() }

// Identifier is a bare name reference, used both as an expression (a
// variable/field read) and as the name slot of declarations.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Lexeme }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }
func (i *Identifier) String() string         { return i.Value }

// IntLiteral is an integer literal expression, e.g. `42`.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntLiteral) expressionNode()      {}
func (l *IntLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *IntLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *IntLiteral) String() string       { return l.Token.Lexeme }

// DoubleLiteral is a floating-point literal expression, e.g. `3.14`.
type DoubleLiteral struct {
	Token token.Token
	Value float64
}

func (l *DoubleLiteral) expressionNode()      {}
func (l *DoubleLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *DoubleLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *DoubleLiteral) String() string       { return l.Token.Lexeme }

// StringLiteral is a string literal expression. Value holds the
// unescaped contents; Token.Lexeme retains the surrounding quotes and
// raw escape sequences.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *StringLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *StringLiteral) String() string       { return l.Token.Lexeme }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (l *BooleanLiteral) expressionNode()      {}
func (l *BooleanLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *BooleanLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *BooleanLiteral) String() string       { return l.Token.Lexeme }

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Token token.Token
}

func (l *NullLiteral) expressionNode()      {}
func (l *NullLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *NullLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *NullLiteral) String() string       { return "null" }

// joinExpressions renders a comma-separated argument/parameter list for
// String() output.
func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
