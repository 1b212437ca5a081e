package rpn

import (
	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/types"
)

// lowerStatements lowers a list of statements in source order, the
// shape shared by a method body and every scoped block.
func (g *Generator) lowerStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := g.lowerStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) lowerStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return g.lowerVariableDeclaration(s)
	case *ast.Assignment:
		return g.lowerAssignment(s)
	case *ast.ExpressionStatement:
		if err := g.lowerExpression(s.Expression); err != nil {
			return err
		}
		return g.emit(NewSimple(POP, s.Pos()))
	case *ast.PrintStatement:
		return g.lowerPrintStatement(s)
	case *ast.IfStatement:
		return g.lowerIfStatement(s)
	case *ast.WhileStatement:
		return g.lowerWhileStatement(s)
	case *ast.ReturnStatement:
		return g.lowerReturnStatement(s)
	case *ast.Block:
		g.pushLocalFrame()
		defer g.popLocalFrame()
		return g.lowerStatements(s.Statements)
	case *ast.ForEachStatement:
		return internalError("for-in statement reached the IR generator; the semantic pass should have rejected it")
	default:
		return internalError("unsupported statement node %T", stmt)
	}
}

// lowerScopedBody lowers the single statement or block an if/while
// introduces as its body, opening a fresh local frame around it exactly
// once regardless of which shape it is.
func (g *Generator) lowerScopedBody(stmt ast.Statement) error {
	if block, ok := stmt.(*ast.Block); ok {
		g.pushLocalFrame()
		defer g.popLocalFrame()
		return g.lowerStatements(block.Statements)
	}
	g.pushLocalFrame()
	defer g.popLocalFrame()
	return g.lowerStatement(stmt)
}

func (g *Generator) lowerVariableDeclaration(v *ast.VariableDeclaration) error {
	declared := resolveTypeName(v.TypeName)
	if v.Init != nil {
		if err := g.lowerExpression(v.Init); err != nil {
			return err
		}
	}
	slot := g.defineLocal(v.Name.Value, declared)
	if v.Init == nil {
		return nil
	}
	return g.emit(NewStore(v.Name.Value, slot, declared, v.Pos()))
}

func (g *Generator) lowerAssignment(asn *ast.Assignment) error {
	if err := g.lowerExpression(asn.Value); err != nil {
		return err
	}
	if lv, ok := g.resolveLocal(asn.Name.Value); ok {
		return g.emit(NewStore(asn.Name.Value, lv.slot, lv.typ, asn.Pos()))
	}
	if g.isClassField(asn.Name.Value) {
		return g.emit(NewFieldAccess(SET_FIELD, asn.Name.Value, asn.Pos()))
	}
	return g.emit(NewStore(asn.Name.Value, -1, types.Error, asn.Pos()))
}

func (g *Generator) lowerPrintStatement(p *ast.PrintStatement) error {
	if err := g.lowerExpression(p.Value); err != nil {
		return err
	}
	name := "print"
	if p.Newline {
		name = "println"
	}
	return g.emit(NewCall(CALL, name, 1, p.Pos()))
}

func (g *Generator) lowerIfStatement(ifs *ast.IfStatement) error {
	lelse := g.nextLabel("else")
	lend := g.nextLabel("end_if")

	if err := g.lowerExpression(ifs.Condition); err != nil {
		return err
	}
	if err := g.emit(NewJump(JUMP_IF_FALSE, lelse, ifs.Pos())); err != nil {
		return err
	}
	if err := g.lowerScopedBody(ifs.Then); err != nil {
		return err
	}
	if err := g.emit(NewJump(JUMP, lend, ifs.Pos())); err != nil {
		return err
	}
	if err := g.emit(NewLabel(lelse, ifs.Pos())); err != nil {
		return err
	}
	if ifs.Else != nil {
		if err := g.lowerScopedBody(ifs.Else); err != nil {
			return err
		}
	}
	return g.emit(NewLabel(lend, ifs.Pos()))
}

func (g *Generator) lowerWhileStatement(ws *ast.WhileStatement) error {
	lstart := g.nextLabel("while_start")
	lend := g.nextLabel("while_end")

	if err := g.emit(NewLabel(lstart, ws.Pos())); err != nil {
		return err
	}
	if err := g.lowerExpression(ws.Condition); err != nil {
		return err
	}
	if err := g.emit(NewJump(JUMP_IF_FALSE, lend, ws.Pos())); err != nil {
		return err
	}
	if err := g.lowerScopedBody(ws.Body); err != nil {
		return err
	}
	if err := g.emit(NewJump(JUMP, lstart, ws.Pos())); err != nil {
		return err
	}
	return g.emit(NewLabel(lend, ws.Pos()))
}

func (g *Generator) lowerReturnStatement(ret *ast.ReturnStatement) error {
	if ret.Value == nil {
		return g.emit(NewReturn(false, ret.Pos()))
	}
	if err := g.lowerExpression(ret.Value); err != nil {
		return err
	}
	return g.emit(NewReturn(true, ret.Pos()))
}
