// Package scriptwrap implements the transform that runs between parsing
// and semantic analysis: it lifts loose top-level statements into a
// synthesized Script class so the analyzer and RPN generator only ever
// have to deal with methods inside classes, never bare statements at
// the compilation-unit level.
package scriptwrap

import (
	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/token"
)

// ScriptClassName is the name of the synthesized wrapper class.
const ScriptClassName = "Script"

// RunMethodName is the name of the synthesized entry-point method.
const RunMethodName = "run"

// Wrap rewrites unit into a new CompilationUnit (unit itself is not
// mutated) so that every top-level statement that is not
// a ClassDeclaration ends up inside a synthesized `Script` class.
//
// Top-level MethodDeclarations become additional members of Script.
// Everything else that is not a ClassDeclaration (variable
// declarations, assignments, if/while/print/expression statements...)
// is gathered, in original order, into Script's `run()` body.
// Existing ClassDeclarations are appended, unchanged, after Script.
//
// If unit contains only ClassDeclarations (including the case where it
// is already wrapped — its sole top-level statement is a class named
// Script), Wrap returns unit unchanged: the transform is idempotent.
func Wrap(unit *ast.CompilationUnit) *ast.CompilationUnit {
	if onlyClassDeclarations(unit) {
		return unit
	}

	var runBody []ast.Statement
	var scriptMembers []ast.Statement
	var classes []ast.Statement
	anchor := token.New(token.CLASS, "class", unit.Statements[0].Pos())

	for _, stmt := range unit.Statements {
		switch s := stmt.(type) {
		case *ast.ClassDeclaration:
			classes = append(classes, s)
		case *ast.MethodDeclaration:
			scriptMembers = append(scriptMembers, s)
		default:
			runBody = append(runBody, s)
		}
	}

	runMethod := &ast.MethodDeclaration{
		Token:      anchor,
		ReturnType: "void",
		Name:       &ast.Identifier{Token: anchor, Value: RunMethodName},
		Body:       &ast.Block{Token: anchor, Statements: runBody},
	}

	members := append([]ast.Statement{runMethod}, scriptMembers...)
	script := &ast.ClassDeclaration{
		Token:   anchor,
		Name:    &ast.Identifier{Token: anchor, Value: ScriptClassName},
		Members: members,
	}

	wrapped := &ast.CompilationUnit{}
	wrapped.Statements = append(wrapped.Statements, script)
	wrapped.Statements = append(wrapped.Statements, classes...)
	return wrapped
}

// onlyClassDeclarations reports whether every top-level statement in
// unit is a ClassDeclaration — the no-op case for Wrap, which also
// covers the idempotence requirement (a previously-wrapped unit's only
// top-level statement is the Script class itself).
func onlyClassDeclarations(unit *ast.CompilationUnit) bool {
	for _, stmt := range unit.Statements {
		if _, ok := stmt.(*ast.ClassDeclaration); !ok {
			return false
		}
	}
	return true
}
