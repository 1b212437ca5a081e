// Package rpn lowers a semantically-analyzed Sigma AST into a flat,
// reverse-Polish-notation instruction sequence: the intermediate
// representation a stack-machine backend consumes. The operand stack
// itself is implicit — the generator never materializes one, only the
// instructions that assume one at runtime.
package rpn

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/token"
	"github.com/sigma-lang/sigma/internal/types"
)

// Opcode is one of the fixed RPN instruction kinds.
type Opcode int

const (
	PUSH Opcode = iota
	LOAD
	STORE
	POP
	DUP
	ADD
	SUB
	MUL
	DIV
	MOD
	POW
	NEG
	AND
	OR
	NOT
	EQ
	NE
	LT
	LE
	GT
	GE
	LABEL
	JUMP
	JUMP_IF_FALSE
	JUMP_IF_TRUE
	CALL
	RETURN
	RETURN_VOID
	INVOKESPECIAL
	NEW
	GET_FIELD
	SET_FIELD
	NOP
	HALT
)

var opcodeNames = [...]string{
	PUSH:           "PUSH",
	LOAD:           "LOAD",
	STORE:          "STORE",
	POP:            "POP",
	DUP:            "DUP",
	ADD:            "ADD",
	SUB:            "SUB",
	MUL:            "MUL",
	DIV:            "DIV",
	MOD:            "MOD",
	POW:            "POW",
	NEG:            "NEG",
	AND:            "AND",
	OR:             "OR",
	NOT:            "NOT",
	EQ:             "EQ",
	NE:             "NE",
	LT:             "LT",
	LE:             "LE",
	GT:             "GT",
	GE:             "GE",
	LABEL:          "LABEL",
	JUMP:           "JUMP",
	JUMP_IF_FALSE:  "JUMP_IF_FALSE",
	JUMP_IF_TRUE:   "JUMP_IF_TRUE",
	CALL:           "CALL",
	RETURN:         "RETURN",
	RETURN_VOID:    "RETURN_VOID",
	INVOKESPECIAL:  "INVOKESPECIAL",
	NEW:            "NEW",
	GET_FIELD:      "GET_FIELD",
	SET_FIELD:      "SET_FIELD",
	NOP:            "NOP",
	HALT:           "HALT",
}

func (op Opcode) String() string {
	if int(op) >= 0 && int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "UNKNOWN"
}

// opcodesRequiringOperand are the opcodes whose Operand field must be
// non-empty: a name, a label, or a literal's textual form.
var opcodesRequiringOperand = map[Opcode]bool{
	PUSH: true, LOAD: true, STORE: true,
	LABEL: true, JUMP: true, JUMP_IF_FALSE: true, JUMP_IF_TRUE: true,
	CALL: true, INVOKESPECIAL: true, NEW: true, GET_FIELD: true, SET_FIELD: true,
}

// opcodesRequiringArgCount are the call-shaped opcodes that additionally
// carry an argument count.
var opcodesRequiringArgCount = map[Opcode]bool{
	CALL: true, INVOKESPECIAL: true,
}

// Instruction is a single RPN instruction: `{ opcode, operand?, type?,
// sourceLine, sourceColumn, slotIndex? }` per the instruction schema.
// Value carries PUSH's literal payload; ArgCount carries CALL/
// INVOKESPECIAL's argument count; SlotIndex is set once by a
// LocalVariableAllocator for LOAD/STORE of a local variable (left at
// -1 for globals and anything else).
type Instruction struct {
	Opcode   Opcode
	Operand  string
	Value    interface{}
	Type     types.Type
	ArgCount int
	SlotIndex int

	SourceLine   int
	SourceColumn int
}

// newInstruction validates op's operand/argCount requirements against
// what the caller supplied, and is the single chokepoint every exported
// constructor below funnels through.
func newInstruction(op Opcode, operand string, pos token.Position) (Instruction, error) {
	if opcodesRequiringOperand[op] && operand == "" {
		return Instruction{}, fmt.Errorf("rpn: opcode %s requires a non-empty operand", op)
	}
	return Instruction{
		Opcode: op, Operand: operand, SlotIndex: -1,
		SourceLine: pos.Line, SourceColumn: pos.Column,
	}, nil
}

// NewSimple builds a zero-operand instruction (POP, DUP, ADD, ..., NOP,
// HALT, RETURN). It rejects any opcode that requires an operand.
func NewSimple(op Opcode, pos token.Position) (Instruction, error) {
	if opcodesRequiringOperand[op] {
		return Instruction{}, fmt.Errorf("rpn: opcode %s is not a simple instruction", op)
	}
	inst, _ := newInstruction(op, "", pos)
	return inst, nil
}

// NewPush builds a PUSH instruction carrying a literal value.
func NewPush(value interface{}, t types.Type, pos token.Position) Instruction {
	inst, _ := newInstruction(PUSH, fmt.Sprintf("%v", value), pos)
	inst.Value = value
	inst.Type = t
	return inst
}

// NewLoad builds a LOAD instruction for a named variable, with slot
// pre-assigned by a LocalVariableAllocator (slot -1 for a non-local,
// e.g. a field or global, reference).
func NewLoad(name string, slot int, t types.Type, pos token.Position) (Instruction, error) {
	inst, err := newInstruction(LOAD, name, pos)
	if err != nil {
		return Instruction{}, err
	}
	inst.SlotIndex = slot
	inst.Type = t
	return inst, nil
}

// NewStore is NewLoad's write-side counterpart.
func NewStore(name string, slot int, t types.Type, pos token.Position) (Instruction, error) {
	inst, err := newInstruction(STORE, name, pos)
	if err != nil {
		return Instruction{}, err
	}
	inst.SlotIndex = slot
	inst.Type = t
	return inst, nil
}

// NewLabel builds a LABEL marker instruction.
func NewLabel(name string, pos token.Position) (Instruction, error) {
	return newInstruction(LABEL, name, pos)
}

// NewJump builds one of JUMP / JUMP_IF_FALSE / JUMP_IF_TRUE targeting
// label.
func NewJump(op Opcode, label string, pos token.Position) (Instruction, error) {
	if op != JUMP && op != JUMP_IF_FALSE && op != JUMP_IF_TRUE {
		return Instruction{}, fmt.Errorf("rpn: opcode %s is not a jump", op)
	}
	return newInstruction(op, label, pos)
}

// NewCall builds a CALL (or INVOKESPECIAL, for constructor dispatch)
// instruction against name with the given argument count.
func NewCall(op Opcode, name string, argCount int, pos token.Position) (Instruction, error) {
	if !opcodesRequiringArgCount[op] {
		return Instruction{}, fmt.Errorf("rpn: opcode %s does not take an argument count", op)
	}
	inst, err := newInstruction(op, name, pos)
	if err != nil {
		return Instruction{}, err
	}
	inst.ArgCount = argCount
	return inst, nil
}

// NewReturn builds RETURN (with a value already on the stack) or
// RETURN_VOID.
func NewReturn(hasValue bool, pos token.Position) (Instruction, error) {
	if hasValue {
		return NewSimple(RETURN, pos)
	}
	return NewSimple(RETURN_VOID, pos)
}

// NewNew builds a NEW instruction naming the class to instantiate.
func NewNew(className string, pos token.Position) (Instruction, error) {
	return newInstruction(NEW, className, pos)
}

// NewFieldAccess builds GET_FIELD or SET_FIELD against memberName.
func NewFieldAccess(op Opcode, memberName string, pos token.Position) (Instruction, error) {
	if op != GET_FIELD && op != SET_FIELD {
		return Instruction{}, fmt.Errorf("rpn: opcode %s is not a field access", op)
	}
	return newInstruction(op, memberName, pos)
}
