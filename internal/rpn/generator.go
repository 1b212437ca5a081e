package rpn

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/scriptwrap"
	"github.com/sigma-lang/sigma/internal/semantic"
	"github.com/sigma-lang/sigma/internal/types"
)

// Generator holds the mutable state threaded through one Generate run:
// the instruction buffer being built, the label-name bookkeeping, and
// the stack of per-method local-variable environments. It is not
// reusable across compilation units.
type Generator struct {
	exprType semantic.ExpressionTypeMap

	instructions   []Instruction
	labelPositions map[string]int
	labelCounter   int

	allocators []*LocalVariableAllocator
	locals     []map[string]localVar // one frame per open block, innermost last
	classFields map[string]bool      // field/constant names of the class currently being lowered
	entryHalted bool                 // HALT already emitted right after the inlined Script.run body
}

// localVar is a local variable or parameter's allocated slot and
// declared type, as recorded the moment the generator's own walk
// defines it — the semantic analyzer's symbol table no longer has this
// binding by the time Generate runs, since every method/block scope it
// opened was already popped when analysis finished.
type localVar struct {
	slot int
	typ  types.Type
}

// Generate lowers unit (the output of the script-wrapping transform,
// already run through the semantic analyzer producing result) into a
// Program. It is a pure, single-pass walk; unsupported AST nodes or
// unknown operators are internal-compiler-errors (spec: these indicate
// a frontend/IR contract violation, not user error) and abort
// generation with an error rather than a diagnostic.
func Generate(unit *ast.CompilationUnit, result *semantic.Result) (*Program, error) {
	g := &Generator{
		exprType:       result.ExpressionTypes,
		labelPositions: make(map[string]int),
	}

	for _, stmt := range unit.Statements {
		cls, ok := stmt.(*ast.ClassDeclaration)
		if !ok {
			return nil, fmt.Errorf("rpn: top-level statement %T is not a class declaration; did the script-wrapping transform run?", stmt)
		}
		if err := g.lowerClass(cls); err != nil {
			return nil, err
		}
	}

	if !g.entryHalted {
		if err := g.emit(NewSimple(HALT, unit.Pos())); err != nil {
			return nil, err
		}
	}

	prog := &Program{
		Instructions:   g.instructions,
		LabelPositions: g.labelPositions,
		SymbolTable:    result.SymbolTable,
	}
	if err := prog.Validate(); err != nil {
		return nil, err
	}
	return prog, nil
}

// lowerClass emits every method member of cls. The synthesized
// Script.run() method (see internal/scriptwrap) is the program's entry
// point: its body is inlined directly into the instruction stream with
// no LABEL/RETURN_VOID wrapper, ahead of every other method (including
// Script's own sibling methods and any other declared class), which are
// lowered out of line behind a LABEL and reached only via CALL. The
// inlined body is followed directly by the program's single HALT, so
// execution never falls through into an out-of-line method.
func (g *Generator) lowerClass(cls *ast.ClassDeclaration) error {
	g.classFields = collectFieldNames(cls)

	if cls.Name.Value == scriptwrap.ScriptClassName {
		run, siblings := splitRunMethod(cls)
		if run != nil {
			if err := g.lowerInline(run); err != nil {
				return err
			}
			if err := g.emit(NewSimple(HALT, run.Pos())); err != nil {
				return err
			}
			g.entryHalted = true
		}
		for _, m := range siblings {
			if err := g.lowerMethod(m, cls.Name.Value); err != nil {
				return err
			}
		}
		return nil
	}

	for _, member := range cls.Members {
		if m, ok := member.(*ast.MethodDeclaration); ok {
			if err := g.lowerMethod(m, cls.Name.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectFieldNames(cls *ast.ClassDeclaration) map[string]bool {
	fields := make(map[string]bool)
	for _, member := range cls.Members {
		switch m := member.(type) {
		case *ast.FieldDeclaration:
			fields[m.Name.Value] = true
		case *ast.VariableDeclaration:
			fields[m.Name.Value] = true
		}
	}
	return fields
}

func splitRunMethod(cls *ast.ClassDeclaration) (run *ast.MethodDeclaration, siblings []*ast.MethodDeclaration) {
	for _, member := range cls.Members {
		m, ok := member.(*ast.MethodDeclaration)
		if !ok {
			continue
		}
		if run == nil && m.Name.Value == scriptwrap.RunMethodName {
			run = m
			continue
		}
		siblings = append(siblings, m)
	}
	return run, siblings
}

// lowerInline lowers run's body directly into the main instruction
// stream, with no LABEL or RETURN_VOID framing — the inlined program
// entry point's HALT (emitted by lowerClass right after this body)
// serves as its implicit return.
func (g *Generator) lowerInline(run *ast.MethodDeclaration) error {
	g.pushAllocator(true)
	defer g.popAllocator()

	g.pushLocalFrame()
	defer g.popLocalFrame()

	for _, p := range run.Parameters {
		g.defineLocal(p.Name.Value, g.resolveParamType(p))
	}
	return g.lowerStatements(run.Body.Statements)
}

// lowerMethod lowers an out-of-line method: LABEL, body, implicit
// RETURN_VOID for a void method whose body did not already end in an
// explicit return.
func (g *Generator) lowerMethod(m *ast.MethodDeclaration, containingClass string) error {
	g.pushAllocator(containingClass != "")
	defer g.popAllocator()

	g.pushLocalFrame()
	defer g.popLocalFrame()

	label := methodLabel(containingClass, m.Name.Value)
	if err := g.emit(NewLabel(label, m.Pos())); err != nil {
		return err
	}

	for _, p := range m.Parameters {
		g.defineLocal(p.Name.Value, g.resolveParamType(p))
	}

	if err := g.lowerStatements(m.Body.Statements); err != nil {
		return err
	}

	if m.ReturnType == "void" && !endsInReturn(m.Body) {
		if err := g.emit(NewSimple(RETURN_VOID, m.Pos())); err != nil {
			return err
		}
	}
	return nil
}

func methodLabel(containingClass, name string) string {
	if containingClass == "" {
		return "method_" + name
	}
	return "method_" + containingClass + "_" + name
}

func endsInReturn(block *ast.Block) bool {
	if len(block.Statements) == 0 {
		return false
	}
	_, ok := block.Statements[len(block.Statements)-1].(*ast.ReturnStatement)
	return ok
}

func (g *Generator) resolveParamType(p *ast.Parameter) types.Type {
	return resolveTypeName(p.TypeName)
}

// resolveTypeName turns a declared type name from the AST (a
// VariableDeclaration's TypeName, a Parameter's TypeName) back into a
// types.Type, the same way the semantic analyzer's type registry would
// — needed here because locals and parameters are not expressions, so
// they never got an entry in the semantic result's ExpressionTypeMap.
func resolveTypeName(name string) types.Type {
	if isPrimitiveTypeName(name) {
		return primitiveTypeByName(name)
	}
	return types.Class(name)
}

func isPrimitiveTypeName(name string) bool {
	switch name {
	case "int", "float", "double", "boolean", "String":
		return true
	default:
		return false
	}
}

func primitiveTypeByName(name string) types.Type {
	switch name {
	case "int":
		return types.Int
	case "float":
		return types.Float
	case "double":
		return types.Double
	case "boolean":
		return types.Boolean
	case "String":
		return types.String
	default:
		return types.Error
	}
}

func (g *Generator) pushAllocator(isInstanceMethod bool) {
	g.allocators = append(g.allocators, NewLocalVariableAllocator(isInstanceMethod))
}

func (g *Generator) popAllocator() {
	g.allocators = g.allocators[:len(g.allocators)-1]
}

func (g *Generator) currentAllocator() *LocalVariableAllocator {
	return g.allocators[len(g.allocators)-1]
}

func (g *Generator) pushLocalFrame() {
	g.locals = append(g.locals, make(map[string]localVar))
}

func (g *Generator) popLocalFrame() {
	g.locals = g.locals[:len(g.locals)-1]
}

// defineLocal allocates a fresh slot for name in the innermost open
// frame and returns it.
func (g *Generator) defineLocal(name string, t types.Type) int {
	slot := g.currentAllocator().Allocate(name, t)
	g.locals[len(g.locals)-1][name] = localVar{slot: slot, typ: t}
	return slot
}

// resolveLocal searches the open frames from innermost to outermost.
func (g *Generator) resolveLocal(name string) (localVar, bool) {
	for i := len(g.locals) - 1; i >= 0; i-- {
		if lv, ok := g.locals[i][name]; ok {
			return lv, true
		}
	}
	return localVar{}, false
}

func (g *Generator) isClassField(name string) bool {
	return g.classFields != nil && g.classFields[name]
}

func (g *Generator) nextLabel(prefix string) string {
	name := fmt.Sprintf("%s_%d", prefix, g.labelCounter)
	g.labelCounter++
	return name
}

func (g *Generator) emit(inst Instruction, err error) error {
	if err != nil {
		return err
	}
	if inst.Opcode == LABEL {
		g.labelPositions[inst.Operand] = len(g.instructions)
	}
	g.instructions = append(g.instructions, inst)
	return nil
}

func (g *Generator) typeOf(e ast.Expression) types.Type {
	if t, ok := g.exprType[e]; ok {
		return t
	}
	return types.Error
}

func internalError(format string, args ...interface{}) error {
	return fmt.Errorf("rpn: internal-compiler-error: "+format, args...)
}
