package rpn

import (
	"testing"

	"github.com/sigma-lang/sigma/internal/token"
	"github.com/sigma-lang/sigma/internal/types"
)

func pos() token.Position { return token.Position{Line: 1, Column: 1} }

func TestNewSimpleRejectsOperandOpcode(t *testing.T) {
	if _, err := NewSimple(LOAD, pos()); err == nil {
		t.Fatal("expected an error constructing a simple instruction from an operand opcode")
	}
}

func TestNewLoadRejectsEmptyName(t *testing.T) {
	if _, err := NewLoad("", 0, types.Int, pos()); err == nil {
		t.Fatal("expected an error for an empty LOAD operand")
	}
}

func TestNewJumpRejectsNonJumpOpcode(t *testing.T) {
	if _, err := NewJump(ADD, "L", pos()); err == nil {
		t.Fatal("expected an error constructing a jump from a non-jump opcode")
	}
}

func TestNewCallRejectsNonCallOpcode(t *testing.T) {
	if _, err := NewCall(ADD, "f", 1, pos()); err == nil {
		t.Fatal("expected an error constructing a call from a non-call opcode")
	}
}

func TestNewPushCarriesValueAndType(t *testing.T) {
	inst := NewPush(int64(10), types.Int, pos())
	if inst.Opcode != PUSH || inst.Value != int64(10) {
		t.Fatalf("unexpected PUSH instruction: %+v", inst)
	}
}

func TestOpcodeStringKnownAndUnknown(t *testing.T) {
	if ADD.String() != "ADD" {
		t.Fatalf("expected ADD, got %s", ADD.String())
	}
	if Opcode(999).String() != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN for an out-of-range opcode")
	}
}
