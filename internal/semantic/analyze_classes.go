package semantic

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/symbols"
	"github.com/sigma-lang/sigma/internal/types"
)

// buildProvisionalClassScope populates a Class scope with a class's
// field and method symbols without emitting diagnostics — used by pass
// 1 so member access against a class pass 2 has not reached yet still
// resolves. pass 2's real visit of the class replaces this entry in
// a.classScopes with the duplicate-checked final scope.
func (a *Analyzer) buildProvisionalClassScope(cls *ast.ClassDeclaration) *symbols.Scope {
	a.symtab.EnterClassScope(cls.Name.Value)
	scope := a.symtab.Current()
	for _, member := range cls.Members {
		switch m := member.(type) {
		case *ast.FieldDeclaration:
			scope.Define(&symbols.Symbol{
				Name:            m.Name.Value,
				Type:            a.registry.Resolve(m.TypeName),
				Kind:            symbols.KindField,
				ContainingClass: cls.Name.Value,
				DefLine:         m.Pos().Line,
				DefColumn:       m.Pos().Column,
			})
		case *ast.MethodDeclaration:
			scope.Define(a.methodSymbol(m, cls.Name.Value))
		case *ast.VariableDeclaration:
			// 'final' class members parse as VariableDeclaration (see
			// parseClassMember); they behave as constant fields.
			scope.Define(&symbols.Symbol{
				Name:            m.Name.Value,
				Type:            a.registry.Resolve(m.TypeName),
				Kind:            symbols.KindConstant,
				IsFinal:         true,
				ContainingClass: cls.Name.Value,
				DefLine:         m.Pos().Line,
				DefColumn:       m.Pos().Column,
			})
		}
	}
	a.symtab.ExitScope()
	return scope
}

// analyzeClassDeclaration visits a class body: first (re-)defining
// every member in a fresh Class scope so duplicate-definition is
// reported and sibling methods can forward-reference each other, then
// visiting each member's body (field initializer, method parameters +
// statements).
func (a *Analyzer) analyzeClassDeclaration(cls *ast.ClassDeclaration) {
	a.symtab.EnterClassScope(cls.Name.Value)
	scope := a.symtab.Current()

	for _, member := range cls.Members {
		sym := a.memberSymbol(member, cls.Name.Value)
		if sym == nil {
			continue
		}
		if !scope.Define(sym) {
			a.addError("duplicate-definition", fmt.Sprintf("%q is already defined in class %q", sym.Name, cls.Name.Value), member.Pos())
		}
	}
	a.classScopes[cls.Name.Value] = scope

	for _, member := range cls.Members {
		switch m := member.(type) {
		case *ast.FieldDeclaration:
			a.analyzeFieldDeclaration(m)
		case *ast.VariableDeclaration:
			a.analyzeConstantMember(m)
		case *ast.MethodDeclaration:
			a.analyzeMethodDecl(m, cls.Name.Value)
		}
	}
	a.symtab.ExitScope()
}

func (a *Analyzer) memberSymbol(member ast.Statement, className string) *symbols.Symbol {
	switch m := member.(type) {
	case *ast.FieldDeclaration:
		return &symbols.Symbol{
			Name: m.Name.Value, Type: a.registry.Resolve(m.TypeName), Kind: symbols.KindField,
			ContainingClass: className, DefLine: m.Pos().Line, DefColumn: m.Pos().Column,
		}
	case *ast.MethodDeclaration:
		return a.methodSymbol(m, className)
	case *ast.VariableDeclaration:
		return &symbols.Symbol{
			Name: m.Name.Value, Type: a.registry.Resolve(m.TypeName), Kind: symbols.KindConstant,
			IsFinal: true, ContainingClass: className, DefLine: m.Pos().Line, DefColumn: m.Pos().Column,
		}
	default:
		return nil
	}
}

func (a *Analyzer) analyzeFieldDeclaration(f *ast.FieldDeclaration) {
	declared := a.resolveType(f.TypeName, f.Pos())
	if f.Init == nil {
		if !types.Equal(declared, types.Boolean) {
			a.addWarning("uninitialized-variable", fmt.Sprintf("field %q is never initialized", f.Name.Value), f.Pos())
		}
		return
	}
	initType := a.analyzeExpression(f.Init)
	if !types.IsCompatibleWith(initType, declared) {
		a.addError("type-mismatch", fmt.Sprintf("cannot assign %s to field %q of type %s", initType, f.Name.Value, declared), f.Init.Pos())
	}
}

func (a *Analyzer) analyzeConstantMember(v *ast.VariableDeclaration) {
	declared := a.resolveType(v.TypeName, v.Pos())
	if v.Init == nil {
		a.addError("constant-without-initializer", fmt.Sprintf("constant %q has no initializer", v.Name.Value), v.Pos())
		return
	}
	initType := a.analyzeExpression(v.Init)
	if !types.IsCompatibleWith(initType, declared) {
		a.addError("type-mismatch", fmt.Sprintf("cannot assign %s to constant %q of type %s", initType, v.Name.Value, declared), v.Init.Pos())
	}
}

// analyzeMethodDecl opens a Method scope, defines parameters in
// declaration order, then visits the body with the enclosing return
// type tracked for return-statement validation. containingClass is ""
// for a top-level method (only reachable when Analyze is handed an
// unwrapped unit directly).
func (a *Analyzer) analyzeMethodDecl(m *ast.MethodDeclaration, containingClass string) {
	returnType := a.resolveType(m.ReturnType, m.Pos())

	a.symtab.EnterScope(symbols.ScopeMethod)
	for _, p := range m.Parameters {
		pt := a.resolveType(p.TypeName, p.Pos())
		sym := &symbols.Symbol{
			Name: p.Name.Value, Type: pt, Kind: symbols.KindParameter, IsParam: true,
			DefLine: p.Pos().Line, DefColumn: p.Pos().Column,
		}
		if !a.symtab.Define(sym) {
			a.addError("duplicate-definition", fmt.Sprintf("parameter %q is already defined", p.Name.Value), p.Pos())
		}
	}

	prevReturn := a.currentReturnType
	a.currentReturnType = returnType
	a.analyzeBlock(m.Body)
	a.currentReturnType = prevReturn

	a.symtab.ExitScope()
}
