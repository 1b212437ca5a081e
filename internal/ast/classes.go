package ast

import (
	"bytes"
	"strings"

	"github.com/sigma-lang/sigma/internal/token"
)

// MethodDeclaration is `ReturnType name(params...) body`. A top-level
// MethodDeclaration is lifted into Script by the script-wrapping
// transform; a class-body MethodDeclaration is an instance method of
// that class.
type MethodDeclaration struct {
	Token      token.Token // the return-type token
	ReturnType string
	Name       *Identifier
	Parameters []*Parameter
	Body       *Block
}

func (m *MethodDeclaration) statementNode()       {}
func (m *MethodDeclaration) TokenLiteral() string { return m.Token.Lexeme }
func (m *MethodDeclaration) Pos() token.Position  { return m.Token.Pos }
func (m *MethodDeclaration) String() string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.String()
	}
	var out bytes.Buffer
	out.WriteString(m.ReturnType + " " + m.Name.String())
	out.WriteString("(" + strings.Join(params, ", ") + ") ")
	out.WriteString(m.Body.String())
	return out.String()
}

// FieldDeclaration is a class-body field: `Type name;` or
// `Type name = init;`. Distinct from VariableDeclaration so the parser
// and semantic analyzer can treat class members and local variables
// differently without a runtime type assertion on context.
type FieldDeclaration struct {
	Token    token.Token // the type token
	TypeName string
	Name     *Identifier
	Init     Expression
}

func (f *FieldDeclaration) statementNode()       {}
func (f *FieldDeclaration) TokenLiteral() string { return f.Token.Lexeme }
func (f *FieldDeclaration) Pos() token.Position  { return f.Token.Pos }
func (f *FieldDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(f.TypeName + " " + f.Name.String())
	if f.Init != nil {
		out.WriteString(" = " + f.Init.String())
	}
	out.WriteString(";")
	return out.String()
}

// ClassDeclaration is `class Name { members... }`. Members is a mix of
// FieldDeclaration and MethodDeclaration statements. A `final` member
// parses as a VariableDeclaration (IsConstant set) rather than a
// FieldDeclaration, the same node parseConstantDeclaration produces at
// top level.
type ClassDeclaration struct {
	Token   token.Token // the 'class' token
	Name    *Identifier
	Members []Statement
}

func (c *ClassDeclaration) statementNode()       {}
func (c *ClassDeclaration) TokenLiteral() string { return c.Token.Lexeme }
func (c *ClassDeclaration) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("class " + c.Name.String() + " {\n")
	for _, m := range c.Members {
		out.WriteString("  " + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}
