// Package semantic implements Sigma's two-pass semantic analyzer: scope
// and type resolution over a parsed CompilationUnit, producing a
// populated symbol table, an expression-to-type map, and a list of
// diagnostics.
package semantic

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/errors"
	"github.com/sigma-lang/sigma/internal/symbols"
	"github.com/sigma-lang/sigma/internal/token"
	"github.com/sigma-lang/sigma/internal/types"
)

// ExpressionTypeMap maps an Expression node, by identity, to its
// resolved Type. Two syntactically identical expressions in different
// scopes may carry different types (shadowing), so lookup is always by
// node pointer, never by structural comparison.
type ExpressionTypeMap map[ast.Expression]types.Type

// Result is the output of Analyze: the populated symbol table, the
// expression type map, and the diagnostics split into hard errors and
// non-fatal warnings.
type Result struct {
	SymbolTable     *symbols.SymbolTable
	ExpressionTypes ExpressionTypeMap
	Errors          []*errors.Diagnostic
	Warnings        []*errors.Diagnostic
}

// Analyzer holds the mutable state threaded through one Analyze run. It
// is not reusable across compilation units.
type Analyzer struct {
	symtab   *symbols.SymbolTable
	registry *types.Registry
	exprType ExpressionTypeMap
	diags    []*errors.Diagnostic
	warnings []*errors.Diagnostic

	// classScopes holds each class's member scope, keyed by class name,
	// so a member-access expression (`obj.member`) can resolve a field
	// or method on a class other than the one currently being visited.
	classScopes map[string]*symbols.Scope

	currentReturnType types.Type
}

// NewAnalyzer creates an Analyzer with a fresh symbol table and type
// registry.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		symtab:      symbols.NewSymbolTable(),
		registry:    types.NewRegistry(),
		exprType:    make(ExpressionTypeMap),
		classScopes: make(map[string]*symbols.Scope),
	}
}

// Analyze runs both passes over unit and returns the result. unit is
// typically the output of the scriptwrap transform (only top-level
// ClassDeclarations), but Analyze also accepts an unwrapped unit
// directly — top-level statements and methods are then analyzed in
// Global scope, which is useful for testing individual rules in
// isolation.
func Analyze(unit *ast.CompilationUnit) *Result {
	a := NewAnalyzer()
	a.pass1(unit)
	for _, stmt := range unit.Statements {
		a.analyzeStatement(stmt)
	}
	return &Result{
		SymbolTable:     a.symtab,
		ExpressionTypes: a.exprType,
		Errors:          a.diags,
		Warnings:        a.warnings,
	}
}

// pass1 registers every top-level ClassDeclaration and MethodDeclaration
// name in Global (so forward references between methods and types in
// the same compilation unit resolve), then builds a provisional member
// scope for every class so member access on a class that has not yet
// been visited by pass 2 still resolves correctly.
func (a *Analyzer) pass1(unit *ast.CompilationUnit) {
	for _, stmt := range unit.Statements {
		if cls, ok := stmt.(*ast.ClassDeclaration); ok {
			a.registerClassName(cls)
		}
	}
	for _, stmt := range unit.Statements {
		if m, ok := stmt.(*ast.MethodDeclaration); ok {
			a.registerTopLevelMethod(m)
		}
	}
	for _, stmt := range unit.Statements {
		if cls, ok := stmt.(*ast.ClassDeclaration); ok {
			a.classScopes[cls.Name.Value] = a.buildProvisionalClassScope(cls)
		}
	}
}

func (a *Analyzer) registerClassName(cls *ast.ClassDeclaration) {
	if err := a.registry.RegisterClass(cls.Name.Value); err != nil {
		a.addError("duplicate-definition", err.Error(), cls.Pos())
		return
	}
	sym := &symbols.Symbol{
		Name:      cls.Name.Value,
		Type:      types.Class(cls.Name.Value),
		Kind:      symbols.KindClass,
		DefLine:   cls.Pos().Line,
		DefColumn: cls.Pos().Column,
	}
	if !a.symtab.Define(sym) {
		a.addError("duplicate-definition", fmt.Sprintf("%q is already defined", cls.Name.Value), cls.Pos())
	}
}

func (a *Analyzer) registerTopLevelMethod(m *ast.MethodDeclaration) {
	sym := a.methodSymbol(m, "")
	if !a.symtab.Define(sym) {
		a.addError("duplicate-definition", fmt.Sprintf("%q is already defined", m.Name.Value), m.Pos())
	}
}

func (a *Analyzer) methodSymbol(m *ast.MethodDeclaration, containingClass string) *symbols.Symbol {
	paramTypes := make([]types.Type, len(m.Parameters))
	for i, p := range m.Parameters {
		paramTypes[i] = a.registry.Resolve(p.TypeName)
	}
	return &symbols.Symbol{
		Name:            m.Name.Value,
		Type:            a.registry.Resolve(m.ReturnType),
		Kind:            symbols.KindMethod,
		ParameterTypes:  paramTypes,
		ContainingClass: containingClass,
		DefLine:         m.Pos().Line,
		DefColumn:       m.Pos().Column,
	}
}

// resolveType resolves a declared type name, recording an
// undefined-type diagnostic (and returning types.Error) if it does not
// name a built-in or a registered class.
func (a *Analyzer) resolveType(name string, pos token.Position) types.Type {
	t := a.registry.Resolve(name)
	if t.IsError() {
		a.addError("undefined-type", fmt.Sprintf("undefined type %q", name), pos)
	}
	return t
}

func (a *Analyzer) addError(kind, message string, pos token.Position) {
	a.diags = append(a.diags, errors.New(errors.Semantic, kind, message, pos))
}

func (a *Analyzer) addWarning(kind, message string, pos token.Position) {
	a.warnings = append(a.warnings, errors.New(errors.Semantic, kind, message, pos))
}
