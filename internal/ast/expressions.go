package ast

import (
	"bytes"

	"github.com/sigma-lang/sigma/internal/token"
)

// Binary is a binary operator expression: `left op right`.
type Binary struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Lexeme }
func (b *Binary) Pos() token.Position  { return b.Token.Pos }
func (b *Binary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// Unary is a prefix operator expression: `op expr`. Operator is "-" or
// "!"; the parser marks a leading `-` as a negation rather than letting
// it collide with the binary `-`.
type Unary struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Lexeme }
func (u *Unary) Pos() token.Position  { return u.Token.Pos }
func (u *Unary) String() string {
	return "(" + u.Operator + u.Operand.String() + ")"
}

// Call is a function/method invocation: `target(args...)`. Target is
// either an Identifier (a free function/built-in call) or a MemberAccess
// (a method call on an object).
type Call struct {
	Token  token.Token // the '(' token
	Target Expression
	Args   []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Lexeme }
func (c *Call) Pos() token.Position  { return c.Target.Pos() }
func (c *Call) String() string {
	return c.Target.String() + "(" + joinExpressions(c.Args) + ")"
}

// MemberAccess is a `.` field or method-target reference: `object.member`.
type MemberAccess struct {
	Token  token.Token // the '.' token
	Object Expression
	Member string
}

func (m *MemberAccess) expressionNode()      {}
func (m *MemberAccess) TokenLiteral() string { return m.Token.Lexeme }
func (m *MemberAccess) Pos() token.Position  { return m.Object.Pos() }
func (m *MemberAccess) String() string {
	return m.Object.String() + "." + m.Member
}

// NewInstance is an object-construction expression: `new ClassName(args...)`.
type NewInstance struct {
	Token     token.Token // the 'new' token
	ClassName string
	Args      []Expression
}

func (n *NewInstance) expressionNode()      {}
func (n *NewInstance) TokenLiteral() string { return n.Token.Lexeme }
func (n *NewInstance) Pos() token.Position  { return n.Token.Pos }
func (n *NewInstance) String() string {
	return "new " + n.ClassName + "(" + joinExpressions(n.Args) + ")"
}
