package semantic

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/symbols"
	"github.com/sigma-lang/sigma/internal/types"
)

// analyzeStatement dispatches over every Statement node kind. It
// handles top-level ClassDeclaration/MethodDeclaration (the normal
// entry points from Analyze's pass-2 loop) as well as every ordinary
// statement kind, so it also serves analyzeBlock's per-item visits.
func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ClassDeclaration:
		a.analyzeClassDeclaration(s)
	case *ast.MethodDeclaration:
		a.analyzeMethodDecl(s, "")
	case *ast.VariableDeclaration:
		a.analyzeVariableDeclaration(s)
	case *ast.Assignment:
		a.analyzeAssignment(s)
	case *ast.ExpressionStatement:
		a.analyzeExpression(s.Expression)
	case *ast.PrintStatement:
		a.analyzePrintStatement(s)
	case *ast.IfStatement:
		a.analyzeIfStatement(s)
	case *ast.WhileStatement:
		a.analyzeWhileStatement(s)
	case *ast.ForEachStatement:
		a.addError("unsupported-construct", "for-in loops are not implemented", s.Pos())
	case *ast.ReturnStatement:
		a.analyzeReturnStatement(s)
	case *ast.Block:
		a.analyzeBlock(s)
	default:
		a.addError("internal-error", fmt.Sprintf("semantic analyzer: unhandled statement node %T", stmt), stmt.Pos())
	}
}

// analyzeBlock opens a Block scope, visits every statement, and closes
// the scope unconditionally.
func (a *Analyzer) analyzeBlock(block *ast.Block) {
	a.symtab.EnterScope(symbols.ScopeBlock)
	for _, stmt := range block.Statements {
		a.analyzeStatement(stmt)
	}
	a.symtab.ExitScope()
}

// analyzeScopedBody opens the Block scope that if/while introduce
// around their body, whether that body is itself a Block node or a
// single bare statement.
func (a *Analyzer) analyzeScopedBody(stmt ast.Statement) {
	a.symtab.EnterScope(symbols.ScopeBlock)
	if block, ok := stmt.(*ast.Block); ok {
		for _, s := range block.Statements {
			a.analyzeStatement(s)
		}
	} else {
		a.analyzeStatement(stmt)
	}
	a.symtab.ExitScope()
}

func (a *Analyzer) analyzeVariableDeclaration(v *ast.VariableDeclaration) {
	declared := a.resolveType(v.TypeName, v.Pos())

	if v.Init == nil {
		if v.IsConstant {
			a.addError("constant-without-initializer", fmt.Sprintf("constant %q has no initializer", v.Name.Value), v.Pos())
		} else if !types.Equal(declared, types.Boolean) {
			a.addWarning("uninitialized-variable", fmt.Sprintf("variable %q is never initialized", v.Name.Value), v.Pos())
		}
	} else {
		initType := a.analyzeExpression(v.Init)
		if !types.IsCompatibleWith(initType, declared) {
			a.addError("type-mismatch", fmt.Sprintf("cannot assign %s to %q of type %s", initType, v.Name.Value, declared), v.Init.Pos())
		}
	}

	kind := symbols.KindVariable
	if v.IsConstant {
		kind = symbols.KindConstant
	}
	sym := &symbols.Symbol{
		Name: v.Name.Value, Type: declared, Kind: kind, IsFinal: v.IsConstant,
		DefLine: v.Pos().Line, DefColumn: v.Pos().Column,
	}
	if !a.symtab.Define(sym) {
		a.addError("duplicate-definition", fmt.Sprintf("%q is already defined in this scope", v.Name.Value), v.Pos())
	}
}

func (a *Analyzer) analyzeAssignment(asn *ast.Assignment) {
	valueType := a.analyzeExpression(asn.Value)

	sym, ok := a.symtab.Lookup(asn.Name.Value)
	if !ok {
		a.addError("undefined-identifier", fmt.Sprintf("undefined identifier %q", asn.Name.Value), asn.Name.Pos())
		return
	}
	if sym.Kind == symbols.KindConstant {
		a.addError("constant-reassignment", fmt.Sprintf("cannot reassign constant %q", asn.Name.Value), asn.Pos())
		return
	}
	if !types.IsCompatibleWith(valueType, sym.Type) {
		a.addError("type-mismatch", fmt.Sprintf("cannot assign %s to %q of type %s", valueType, asn.Name.Value, sym.Type), asn.Value.Pos())
	}
}

// printableType reports whether t is a valid print/println argument:
// any primitive, String, or null. A class instance has no
// stringification in Sigma, so it is not printable.
func printableType(t types.Type) bool {
	return t.IsPrimitive() || t.IsNull() || t.IsError()
}

func (a *Analyzer) analyzePrintStatement(p *ast.PrintStatement) {
	name := "print"
	if p.Newline {
		name = "println"
	}
	if _, ok := a.symtab.Lookup(name); !ok {
		a.addError("internal-error", fmt.Sprintf("built-in %q missing from Global scope", name), p.Pos())
	}
	valueType := a.analyzeExpression(p.Value)
	if !printableType(valueType) {
		a.addError("not-printable", fmt.Sprintf("%s argument of type %s is not printable", name, valueType), p.Value.Pos())
	}
}

func (a *Analyzer) analyzeIfStatement(ifs *ast.IfStatement) {
	condType := a.analyzeExpression(ifs.Condition)
	if !types.Equal(condType, types.Boolean) && !condType.IsError() {
		a.addError("condition-type", fmt.Sprintf("if condition must be boolean, got %s", condType), ifs.Condition.Pos())
	}
	a.analyzeScopedBody(ifs.Then)
	if ifs.Else != nil {
		a.analyzeScopedBody(ifs.Else)
	}
}

func (a *Analyzer) analyzeWhileStatement(ws *ast.WhileStatement) {
	condType := a.analyzeExpression(ws.Condition)
	if !types.Equal(condType, types.Boolean) && !condType.IsError() {
		a.addError("condition-type", fmt.Sprintf("while condition must be boolean, got %s", condType), ws.Condition.Pos())
	}
	a.analyzeScopedBody(ws.Body)
}

func (a *Analyzer) analyzeReturnStatement(ret *ast.ReturnStatement) {
	if !a.symtab.IsInMethodScope() {
		a.addError("return-type-mismatch", "return statement outside a method body", ret.Pos())
		return
	}
	if ret.Value == nil {
		if !types.Equal(a.currentReturnType, types.Void) {
			a.addError("return-type-mismatch", fmt.Sprintf("bare return not allowed in a method returning %s", a.currentReturnType), ret.Pos())
		}
		return
	}
	valueType := a.analyzeExpression(ret.Value)
	if !types.IsCompatibleWith(valueType, a.currentReturnType) {
		a.addError("return-type-mismatch", fmt.Sprintf("cannot return %s from a method returning %s", valueType, a.currentReturnType), ret.Value.Pos())
	}
}
