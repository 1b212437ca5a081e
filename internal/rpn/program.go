package rpn

import (
	"fmt"

	"github.com/sigma-lang/sigma/internal/symbols"
)

// Program is the finished output of Generate: an ordered instruction
// sequence, a label-name-to-index map, and the symbol table the
// semantic analyzer produced (carried through for a backend that needs
// to resolve a name's declared type or containing class).
type Program struct {
	Instructions   []Instruction
	LabelPositions map[string]int
	SymbolTable    *symbols.SymbolTable
}

// Validate confirms every JUMP/JUMP_IF_FALSE/JUMP_IF_TRUE operand names
// a LABEL that exists exactly once in the program. A violation here is
// an internal-compiler-error: the generator is the only producer of
// these instructions and must never emit a dangling or duplicate label.
func (p *Program) Validate() error {
	seen := make(map[string]int, len(p.LabelPositions))
	for i, inst := range p.Instructions {
		if inst.Opcode != LABEL {
			continue
		}
		if _, dup := seen[inst.Operand]; dup {
			return fmt.Errorf("rpn: duplicate label %q at instruction %d", inst.Operand, i)
		}
		seen[inst.Operand] = i
	}
	for i, inst := range p.Instructions {
		switch inst.Opcode {
		case JUMP, JUMP_IF_FALSE, JUMP_IF_TRUE:
			if _, ok := seen[inst.Operand]; !ok {
				return fmt.Errorf("rpn: jump at instruction %d targets undefined label %q", i, inst.Operand)
			}
		}
	}
	return nil
}

// Dump renders the program as one opcode-plus-operand line per
// instruction, in execution order — the format go-snaps-backed
// instruction-dump tests snapshot against.
func (p *Program) Dump() string {
	var out []byte
	for _, inst := range p.Instructions {
		out = append(out, []byte(instructionText(inst))...)
		out = append(out, '\n')
	}
	return string(out)
}

func instructionText(inst Instruction) string {
	switch inst.Opcode {
	case PUSH:
		return fmt.Sprintf("PUSH %v", inst.Value)
	case LOAD, STORE:
		if inst.SlotIndex >= 0 {
			return fmt.Sprintf("%s %s@%d", inst.Opcode, inst.Operand, inst.SlotIndex)
		}
		return fmt.Sprintf("%s %s", inst.Opcode, inst.Operand)
	case LABEL:
		return fmt.Sprintf("LABEL %s", inst.Operand)
	case JUMP, JUMP_IF_FALSE, JUMP_IF_TRUE:
		return fmt.Sprintf("%s %s", inst.Opcode, inst.Operand)
	case CALL, INVOKESPECIAL:
		return fmt.Sprintf("%s %s/%d", inst.Opcode, inst.Operand, inst.ArgCount)
	case NEW, GET_FIELD, SET_FIELD:
		return fmt.Sprintf("%s %s", inst.Opcode, inst.Operand)
	default:
		return inst.Opcode.String()
	}
}
