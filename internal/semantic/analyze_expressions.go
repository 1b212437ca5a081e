package semantic

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/symbols"
	"github.com/sigma-lang/sigma/internal/token"
	"github.com/sigma-lang/sigma/internal/types"
)

// analyzeExpression types e, recording the result in the expression
// type map (even on failure, where it records types.Error so enclosing
// expressions do not chain-fail), and returns the resolved type.
func (a *Analyzer) analyzeExpression(e ast.Expression) types.Type {
	switch expr := e.(type) {
	case *ast.IntLiteral:
		return a.setType(e, types.Int)
	case *ast.DoubleLiteral:
		return a.setType(e, types.Double)
	case *ast.StringLiteral:
		return a.setType(e, types.String)
	case *ast.BooleanLiteral:
		return a.setType(e, types.Boolean)
	case *ast.NullLiteral:
		return a.setType(e, types.Null)
	case *ast.Identifier:
		return a.analyzeIdentifier(expr)
	case *ast.Binary:
		return a.analyzeBinary(expr)
	case *ast.Unary:
		return a.analyzeUnary(expr)
	case *ast.Call:
		return a.analyzeCall(expr)
	case *ast.MemberAccess:
		return a.analyzeMemberAccess(expr)
	case *ast.NewInstance:
		return a.analyzeNewInstance(expr)
	default:
		a.addError("internal-error", fmt.Sprintf("semantic analyzer: unhandled expression node %T", e), e.Pos())
		return a.setType(e, types.Error)
	}
}

func (a *Analyzer) setType(e ast.Expression, t types.Type) types.Type {
	a.exprType[e] = t
	return t
}

func (a *Analyzer) analyzeIdentifier(id *ast.Identifier) types.Type {
	sym, ok := a.symtab.Lookup(id.Value)
	if !ok {
		a.addError("undefined-identifier", fmt.Sprintf("undefined identifier %q", id.Value), id.Pos())
		return a.setType(id, types.Error)
	}
	return a.setType(id, sym.Type)
}

func (a *Analyzer) analyzeBinary(b *ast.Binary) types.Type {
	left := a.analyzeExpression(b.Left)
	right := a.analyzeExpression(b.Right)

	switch b.Operator {
	case "+":
		if types.Equal(left, types.String) || types.Equal(right, types.String) {
			return a.setType(b, types.String)
		}
		return a.setType(b, a.arithmeticResult(b, left, right))
	case "-", "*", "/":
		return a.setType(b, a.arithmeticResult(b, left, right))
	case "%":
		if types.Equal(left, types.Int) && types.Equal(right, types.Int) {
			return a.setType(b, types.Int)
		}
		return a.setType(b, a.invalidOperation(b, left, right))
	case "**":
		if left.IsNumeric() && right.IsNumeric() {
			return a.setType(b, types.Double)
		}
		return a.setType(b, a.invalidOperation(b, left, right))
	case "<", "<=", ">", ">=":
		if left.IsNumeric() && right.IsNumeric() {
			return a.setType(b, types.Boolean)
		}
		return a.setType(b, a.invalidOperation(b, left, right))
	case "==", "!=":
		if left.IsError() || right.IsError() || types.IsCompatibleWith(left, right) || types.IsCompatibleWith(right, left) {
			return a.setType(b, types.Boolean)
		}
		return a.setType(b, a.invalidOperation(b, left, right))
	case "&&", "||":
		if types.Equal(left, types.Boolean) && types.Equal(right, types.Boolean) {
			return a.setType(b, types.Boolean)
		}
		return a.setType(b, a.invalidOperation(b, left, right))
	default:
		a.addError("internal-error", fmt.Sprintf("unknown binary operator %q", b.Operator), b.Pos())
		return a.setType(b, types.Error)
	}
}

func (a *Analyzer) arithmeticResult(b *ast.Binary, left, right types.Type) types.Type {
	if left.IsNumeric() && right.IsNumeric() {
		return widenNumeric(left, right)
	}
	return a.invalidOperation(b, left, right)
}

func (a *Analyzer) invalidOperation(b *ast.Binary, left, right types.Type) types.Type {
	if left.IsError() || right.IsError() {
		return types.Error
	}
	a.addError("invalid-operation", fmt.Sprintf("operator %q is not defined for %s and %s", b.Operator, left, right), b.Pos())
	return types.Error
}

// widenNumeric returns whichever of a, b is the wider numeric type,
// using the compatibility lattice's widening direction rather than
// duplicating its rank table.
func widenNumeric(a, b types.Type) types.Type {
	if types.IsCompatibleWith(a, b) {
		return b
	}
	return a
}

func (a *Analyzer) analyzeUnary(u *ast.Unary) types.Type {
	operand := a.analyzeExpression(u.Operand)
	switch u.Operator {
	case "-":
		if operand.IsNumeric() {
			return a.setType(u, operand)
		}
		if operand.IsError() {
			return a.setType(u, types.Error)
		}
		a.addError("invalid-operation", fmt.Sprintf("unary '-' requires a numeric operand, got %s", operand), u.Pos())
		return a.setType(u, types.Error)
	case "!":
		if types.Equal(operand, types.Boolean) {
			return a.setType(u, types.Boolean)
		}
		if operand.IsError() {
			return a.setType(u, types.Error)
		}
		a.addError("invalid-operation", fmt.Sprintf("unary '!' requires a boolean operand, got %s", operand), u.Pos())
		return a.setType(u, types.Error)
	default:
		a.addError("internal-error", fmt.Sprintf("unknown unary operator %q", u.Operator), u.Pos())
		return a.setType(u, types.Error)
	}
}

// analyzeCall handles both Call(Identifier, args) — a top-level method
// or a same-class sibling method reached through the active scope
// chain — and Call(MemberAccess(obj, m), args), a call against an
// explicit receiver resolved through a.classScopes.
func (a *Analyzer) analyzeCall(call *ast.Call) types.Type {
	switch target := call.Target.(type) {
	case *ast.Identifier:
		sym, ok := a.symtab.Lookup(target.Value)
		if !ok {
			a.addError("undefined-identifier", fmt.Sprintf("undefined identifier %q", target.Value), target.Pos())
			a.analyzeArgsForError(call.Args)
			return a.setType(call, types.Error)
		}
		if sym.Kind != symbols.KindMethod {
			a.addError("member-access-error", fmt.Sprintf("%q is not callable", target.Value), target.Pos())
			a.analyzeArgsForError(call.Args)
			return a.setType(call, types.Error)
		}
		return a.setType(call, a.checkCallArguments(sym, call.Args, call.Pos()))
	case *ast.MemberAccess:
		receiverType := a.analyzeExpression(target.Object)
		sym := a.resolveMember(receiverType, target.Member, target.Pos())
		if sym == nil {
			a.analyzeArgsForError(call.Args)
			return a.setType(call, types.Error)
		}
		if sym.Kind != symbols.KindMethod {
			a.addError("member-access-error", fmt.Sprintf("%q is not callable", target.Member), target.Pos())
			a.analyzeArgsForError(call.Args)
			return a.setType(call, types.Error)
		}
		return a.setType(call, a.checkCallArguments(sym, call.Args, call.Pos()))
	default:
		a.addError("member-access-error", "call target is not callable", call.Pos())
		a.analyzeArgsForError(call.Args)
		return a.setType(call, types.Error)
	}
}

// analyzeArgsForError still types each argument (so the expression type
// map stays total, per spec.md's testable property) when the call
// target itself could not be resolved.
func (a *Analyzer) analyzeArgsForError(args []ast.Expression) {
	for _, arg := range args {
		a.analyzeExpression(arg)
	}
}

// checkCallArguments types every argument, validates arity and
// per-argument compatibility against sym's declared parameter types,
// and returns sym's return type. A nil ParameterTypes (the built-in
// print/println symbols) skips arity/type checking. A statement that
// starts with print( or println( parses as a dedicated PrintStatement;
// a print/println call nested inside an expression reaches here as a
// Call node.
func (a *Analyzer) checkCallArguments(sym *symbols.Symbol, args []ast.Expression, pos token.Position) types.Type {
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = a.analyzeExpression(arg)
	}
	if sym.ParameterTypes == nil {
		return sym.Type
	}
	if len(args) != len(sym.ParameterTypes) {
		a.addError("arity-mismatch", fmt.Sprintf("%q expects %d argument(s), got %d", sym.Name, len(sym.ParameterTypes), len(args)), pos)
		return sym.Type
	}
	for i, want := range sym.ParameterTypes {
		if !types.IsCompatibleWith(argTypes[i], want) {
			a.addError("argument-type-mismatch", fmt.Sprintf("argument %d of %q: cannot use %s as %s", i+1, sym.Name, argTypes[i], want), args[i].Pos())
		}
	}
	return sym.Type
}

// resolveMember looks up memberName on a class-typed receiver through
// a.classScopes, reporting member-access-error for a non-class
// receiver, an unregistered class, or a missing member.
func (a *Analyzer) resolveMember(receiverType types.Type, memberName string, pos token.Position) *symbols.Symbol {
	if receiverType.IsError() {
		return nil
	}
	if !receiverType.IsClass() {
		a.addError("member-access-error", fmt.Sprintf("cannot access member %q on non-class type %s", memberName, receiverType), pos)
		return nil
	}
	scope, ok := a.classScopes[receiverType.Name()]
	if !ok {
		a.addError("member-access-error", fmt.Sprintf("unknown class %q", receiverType.Name()), pos)
		return nil
	}
	sym, ok := scope.LookupLocal(memberName)
	if !ok {
		a.addError("member-access-error", fmt.Sprintf("%s has no member %q", receiverType, memberName), pos)
		return nil
	}
	return sym
}

func (a *Analyzer) analyzeMemberAccess(ma *ast.MemberAccess) types.Type {
	receiverType := a.analyzeExpression(ma.Object)
	sym := a.resolveMember(receiverType, ma.Member, ma.Pos())
	if sym == nil {
		return a.setType(ma, types.Error)
	}
	return a.setType(ma, sym.Type)
}

func (a *Analyzer) analyzeNewInstance(n *ast.NewInstance) types.Type {
	if !a.registry.HasClass(n.ClassName) {
		a.addError("unknown-class", fmt.Sprintf("%q is not a registered class", n.ClassName), n.Pos())
		a.analyzeArgsForError(n.Args)
		return a.setType(n, types.Error)
	}
	// Sigma has no user-declared constructors in its grammar (spec.md
	// §6 lists no constructor-declaration syntax), so there is no
	// parameter list to validate arguments against beyond typing them.
	a.analyzeArgsForError(n.Args)
	return a.setType(n, types.Class(n.ClassName))
}
