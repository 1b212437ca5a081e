package rpn

import (
	"testing"

	"github.com/sigma-lang/sigma/internal/types"
)

func TestAllocatorReservesSlotZeroForThisInInstanceMethod(t *testing.T) {
	a := NewLocalVariableAllocator(true)
	slot := a.Allocate("x", types.Int)
	if slot != 1 {
		t.Fatalf("expected first instance-method local at slot 1, got %d", slot)
	}
}

func TestAllocatorStaticMethodStartsAtSlotZero(t *testing.T) {
	a := NewLocalVariableAllocator(false)
	slot := a.Allocate("x", types.Int)
	if slot != 0 {
		t.Fatalf("expected first static-method local at slot 0, got %d", slot)
	}
}

func TestAllocatorDoubleConsumesTwoSlots(t *testing.T) {
	a := NewLocalVariableAllocator(false)
	first := a.Allocate("d", types.Double)
	second := a.Allocate("n", types.Int)
	if first != 0 {
		t.Fatalf("expected d at slot 0, got %d", first)
	}
	if second != 2 {
		t.Fatalf("expected n to skip the double's second slot and land at 2, got %d", second)
	}
}

func TestAllocatorMaxLocalsReflectsTotalWidth(t *testing.T) {
	a := NewLocalVariableAllocator(true)
	a.Allocate("d", types.Double)
	a.Allocate("b", types.Boolean)
	if got := a.MaxLocals(); got != 4 {
		t.Fatalf("expected max locals 4 (this@0 + double@1..2 + bool@3), got %d", got)
	}
}

func TestAllocatorSlotLooksUpAllocatedName(t *testing.T) {
	a := NewLocalVariableAllocator(false)
	a.Allocate("x", types.Int)
	slot, ok := a.Slot("x")
	if !ok || slot != 0 {
		t.Fatalf("expected x at slot 0, got (%d, %v)", slot, ok)
	}
	if _, ok := a.Slot("missing"); ok {
		t.Fatal("expected no slot for an unallocated name")
	}
}
