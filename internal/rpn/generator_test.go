package rpn

import (
	"testing"

	"github.com/sigma-lang/sigma/internal/parser"
	"github.com/sigma-lang/sigma/internal/scriptwrap"
	"github.com/sigma-lang/sigma/internal/semantic"
)

func compileRPN(t *testing.T, src string) *Program {
	t.Helper()
	p := parser.New(src)
	unit := p.ParseCompilationUnit()
	if errs, _ := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	wrapped := scriptwrap.Wrap(unit)
	result := semantic.Analyze(wrapped)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected semantic errors: %v", result.Errors)
	}
	prog, err := Generate(wrapped, result)
	if err != nil {
		t.Fatalf("unexpected generation error: %v", err)
	}
	return prog
}

func opcodes(prog *Program) []Opcode {
	ops := make([]Opcode, len(prog.Instructions))
	for i, inst := range prog.Instructions {
		ops[i] = inst.Opcode
	}
	return ops
}

func assertOpcodes(t *testing.T, prog *Program, want []Opcode) {
	t.Helper()
	got := opcodes(prog)
	if len(got) != len(want) {
		t.Fatalf("expected %d instructions %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("instruction %d: expected %s, got %s (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestGenerateSimpleVariableDeclaration(t *testing.T) {
	prog := compileRPN(t, "int x = 10;")
	assertOpcodes(t, prog, []Opcode{PUSH, STORE, HALT})
}

func TestGenerateAdditionExpression(t *testing.T) {
	prog := compileRPN(t, "int r = 10 + 5;")
	assertOpcodes(t, prog, []Opcode{PUSH, PUSH, ADD, STORE, HALT})
}

func TestGenerateMultiplicativeBindsTighterThanAdditive(t *testing.T) {
	prog := compileRPN(t, "int r = 10 * 5 + 3;")
	assertOpcodes(t, prog, []Opcode{PUSH, PUSH, MUL, PUSH, ADD, STORE, HALT})
}

func TestGenerateIfElseStructure(t *testing.T) {
	prog := compileRPN(t, "int x = 1; int y = 0; if (x > 0) y = 1; else y = 2;")
	ops := opcodes(prog)
	// last 11 instructions (after the two leading declarations) should match
	// LOAD x, PUSH 0, GT, JUMP_IF_FALSE, PUSH 1, STORE y, JUMP, LABEL, PUSH 2, STORE y, LABEL
	tail := ops[len(ops)-12 : len(ops)-1] // excluding trailing HALT
	want := []Opcode{LOAD, PUSH, GT, JUMP_IF_FALSE, PUSH, STORE, JUMP, LABEL, PUSH, STORE, LABEL}
	if len(tail) != len(want) {
		t.Fatalf("expected %d tail instructions, got %d: %v", len(want), len(tail), tail)
	}
	for i := range want {
		if tail[i] != want[i] {
			t.Fatalf("tail instruction %d: expected %s, got %s (full: %v)", i, want[i], tail[i], ops)
		}
	}
}

func TestGenerateWhileStructure(t *testing.T) {
	prog := compileRPN(t, "int i = 0; while (i < 3) { i = i + 1; }")
	ops := opcodes(prog)
	foundLabelStart := false
	for _, op := range ops {
		if op == LABEL {
			foundLabelStart = true
		}
	}
	if !foundLabelStart {
		t.Fatalf("expected at least one LABEL in a while loop's lowering, got %v", ops)
	}
	if ops[len(ops)-1] != HALT {
		t.Fatalf("expected program to end in HALT, got %v", ops)
	}
}

func TestGenerateInstanceMethodEmitsClassQualifiedLabel(t *testing.T) {
	src := `class C {
		void f(int a) {
			double d;
			int i;
		}
	}`
	prog := compileRPN(t, src)
	var fLabel *Instruction
	for idx := range prog.Instructions {
		inst := &prog.Instructions[idx]
		if inst.Opcode == LABEL && inst.Operand == "method_C_f" {
			fLabel = inst
			break
		}
	}
	if fLabel == nil {
		t.Fatalf("expected a method_C_f label, got %v", opcodes(prog))
	}
}

func TestGenerateProgramValidates(t *testing.T) {
	prog := compileRPN(t, "int x = 1; if (x > 0) { x = x + 1; } while (x < 10) { x = x + 1; }")
	if err := prog.Validate(); err != nil {
		t.Fatalf("generated program failed validation: %v", err)
	}
}

func TestGenerateClassMethodCallReceiverFirst(t *testing.T) {
	src := `class Widget {
		int value() { return 1; }
	}
	Widget w = new Widget();
	int v = w.value();`
	prog := compileRPN(t, src)
	// find the CALL value/0 instruction and confirm a LOAD of w precedes it
	ops := opcodes(prog)
	callIdx := -1
	for i, inst := range prog.Instructions {
		if inst.Opcode == CALL && inst.Operand == "value" {
			callIdx = i
			break
		}
	}
	if callIdx < 1 {
		t.Fatalf("expected a CALL value instruction, got %v", ops)
	}
	if prog.Instructions[callIdx-1].Opcode != LOAD {
		t.Fatalf("expected receiver LOAD immediately before CALL value, got %s", prog.Instructions[callIdx-1].Opcode)
	}
}

func TestGenerateNewInstanceSequence(t *testing.T) {
	src := `class Widget { int n; }
	Widget w = new Widget();`
	prog := compileRPN(t, src)
	ops := opcodes(prog)
	// NEW, DUP, INVOKESPECIAL, STORE somewhere in the sequence
	foundNew, foundDup, foundInvoke := false, false, false
	for i, op := range ops {
		switch op {
		case NEW:
			foundNew = true
			if ops[i+1] != DUP {
				t.Fatalf("expected DUP immediately after NEW, got %s", ops[i+1])
			}
			foundDup = true
		case INVOKESPECIAL:
			foundInvoke = true
		}
	}
	if !foundNew || !foundDup || !foundInvoke {
		t.Fatalf("expected NEW, DUP, INVOKESPECIAL in %v", ops)
	}
}
