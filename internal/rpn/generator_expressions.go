package rpn

import "github.com/sigma-lang/sigma/internal/ast"

func (g *Generator) lowerExpression(e ast.Expression) error {
	switch expr := e.(type) {
	case *ast.IntLiteral:
		return g.emit(NewPush(expr.Value, g.typeOf(expr), expr.Pos()), nil)
	case *ast.DoubleLiteral:
		return g.emit(NewPush(expr.Value, g.typeOf(expr), expr.Pos()), nil)
	case *ast.StringLiteral:
		return g.emit(NewPush(expr.Value, g.typeOf(expr), expr.Pos()), nil)
	case *ast.BooleanLiteral:
		return g.emit(NewPush(expr.Value, g.typeOf(expr), expr.Pos()), nil)
	case *ast.NullLiteral:
		return g.emit(NewPush(nil, g.typeOf(expr), expr.Pos()), nil)
	case *ast.Identifier:
		return g.lowerIdentifier(expr)
	case *ast.Binary:
		return g.lowerBinary(expr)
	case *ast.Unary:
		return g.lowerUnary(expr)
	case *ast.Call:
		return g.lowerCall(expr)
	case *ast.MemberAccess:
		return g.lowerMemberAccess(expr)
	case *ast.NewInstance:
		return g.lowerNewInstance(expr)
	default:
		return internalError("unsupported expression node %T", e)
	}
}

func (g *Generator) lowerIdentifier(id *ast.Identifier) error {
	if lv, ok := g.resolveLocal(id.Value); ok {
		return g.emit(NewLoad(id.Value, lv.slot, lv.typ, id.Pos()))
	}
	if g.isClassField(id.Value) {
		return g.emit(NewFieldAccess(GET_FIELD, id.Value, id.Pos()))
	}
	return g.emit(NewLoad(id.Value, -1, g.typeOf(id), id.Pos()))
}

var binaryOpcodes = map[string]Opcode{
	"+": ADD, "-": SUB, "*": MUL, "/": DIV, "%": MOD, "**": POW,
	"<": LT, "<=": LE, ">": GT, ">=": GE, "==": EQ, "!=": NE,
	"&&": AND, "||": OR,
}

func (g *Generator) lowerBinary(b *ast.Binary) error {
	if err := g.lowerExpression(b.Left); err != nil {
		return err
	}
	if err := g.lowerExpression(b.Right); err != nil {
		return err
	}
	op, ok := binaryOpcodes[b.Operator]
	if !ok {
		return internalError("unknown binary operator %q", b.Operator)
	}
	inst, err := NewSimple(op, b.Pos())
	if err != nil {
		return err
	}
	inst.Type = g.typeOf(b)
	return g.emit(inst, nil)
}

func (g *Generator) lowerUnary(u *ast.Unary) error {
	if err := g.lowerExpression(u.Operand); err != nil {
		return err
	}
	switch u.Operator {
	case "-":
		return g.emit(NewSimple(NEG, u.Pos()))
	case "!":
		return g.emit(NewSimple(NOT, u.Pos()))
	default:
		return internalError("unknown unary operator %q", u.Operator)
	}
}

// lowerCall lowers Call(Identifier, args) as a direct, receiver-less
// call by name, and Call(MemberAccess(obj, m), args) receiver-first:
// the receiver, then each argument in source order, then CALL m
// argCount.
func (g *Generator) lowerCall(call *ast.Call) error {
	switch target := call.Target.(type) {
	case *ast.Identifier:
		if err := g.lowerArgs(call.Args); err != nil {
			return err
		}
		return g.emit(NewCall(CALL, target.Value, len(call.Args), call.Pos()))
	case *ast.MemberAccess:
		if err := g.lowerExpression(target.Object); err != nil {
			return err
		}
		if err := g.lowerArgs(call.Args); err != nil {
			return err
		}
		return g.emit(NewCall(CALL, target.Member, len(call.Args), call.Pos()))
	default:
		return internalError("unsupported call target %T", call.Target)
	}
}

func (g *Generator) lowerArgs(args []ast.Expression) error {
	for _, arg := range args {
		if err := g.lowerExpression(arg); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) lowerMemberAccess(ma *ast.MemberAccess) error {
	if err := g.lowerExpression(ma.Object); err != nil {
		return err
	}
	return g.emit(NewFieldAccess(GET_FIELD, ma.Member, ma.Pos()))
}

// lowerNewInstance emits NEW T, DUP, lowers constructor arguments, then
// INVOKESPECIAL <init> argCount — the conventional JVM construction
// sequence, leaving one initialized reference on the stack.
func (g *Generator) lowerNewInstance(n *ast.NewInstance) error {
	if err := g.emit(NewNew(n.ClassName, n.Pos())); err != nil {
		return err
	}
	if err := g.emit(NewSimple(DUP, n.Pos())); err != nil {
		return err
	}
	if err := g.lowerArgs(n.Args); err != nil {
		return err
	}
	return g.emit(NewCall(INVOKESPECIAL, "<init>", len(n.Args), n.Pos()))
}
