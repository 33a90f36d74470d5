package placement

import (
	"errors"
	"testing"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
	"github.com/dekarrin/brickgrammar/internal/voxel"
)

func mustLexAll(t *testing.T, text string) []Operation {
	t.Helper()
	ops, err := LexAll(text)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return ops
}

// S3: parse("FillRect(2,3,2) Place(3005)") yields one element at the base
// state and exactly 12 new voxels from the fill.
func TestExecFillRectAndPlace(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)
	ops := mustLexAll(t, "FillRect(2,3,2) Place(3005)")

	elements, _, err := Exec(img, stack, ops, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elements) != 1 || elements[0].PartID != "3005" {
		t.Fatalf("expected one Place(3005) element, got %v", elements)
	}
	if elements[0].State != InitialState {
		t.Fatalf("expected element at initial state, got %v", elements[0].State)
	}
	if img.Len() != 12 {
		t.Fatalf("expected 12 new voxels (2*3*2), got %d", img.Len())
	}
}

// S5: Rotate(90) then Move(1,0,0) updates position by the rotated delta;
// a second Rotate(90) then Move(1,0,0) accumulates further.
func TestExecRotateThenMove(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)
	ops := mustLexAll(t, "Rotate(90) Move(1,0,0)")

	_, newStack, err := Exec(img, stack, ops, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := newStack.Top().Pos
	want := voxel.V(0, 0, 1)
	if got != want {
		t.Fatalf("after Rotate(90) Move(1,0,0): got %v want %v", got, want)
	}

	ops2 := mustLexAll(t, "Rotate(90) Move(1,0,0)")
	_, newStack2, err := Exec(img, newStack, ops2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got2 := newStack2.Top().Pos
	want2 := voxel.V(-1, 0, 1)
	if got2 != want2 {
		t.Fatalf("after second Rotate(90) Move(1,0,0): got %v want %v", got2, want2)
	}
}

// S6: AssertFilled on an empty cell raises AssertionError; immediately
// after filling that cell, the assertion passes.
func TestExecAssertFilledInvertedContract(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)

	_, _, err := Exec(img, stack, mustLexAll(t, "AssertFilled()"), false)
	if !errors.Is(err, bgerr.ErrAssertion) {
		t.Fatalf("expected AssertionError on empty cell, got %v", err)
	}

	_, stack2, err := Exec(img, stack, mustLexAll(t, "FillRect(2,1,2)"), false)
	if err != nil {
		t.Fatalf("unexpected error filling: %v", err)
	}

	_, _, err = Exec(img, stack2, mustLexAll(t, "AssertFilled()"), false)
	if err != nil {
		t.Fatalf("expected assertion to pass on filled cell, got %v", err)
	}
}

// Operation sequences without fill operations leave the image unchanged.
func TestExecNoFillLeavesImageUnchanged(t *testing.T) {
	img := voxel.NewImage()
	img.Points.Add(voxel.V(9, 9, 9)) // pre-existing point, distinct from default sphere trigger
	before := img.Len()

	stack := NewStack(InitialState)
	ops := mustLexAll(t, "( Move(1,2,3) Rotate(90) SetColor(4) ( Move(-1,0,0) ) )")

	_, _, err := Exec(img, stack, ops, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Len() != before {
		t.Fatalf("image without fills should be unchanged: got %d want %d", img.Len(), before)
	}
}

// Stack depth after interpretation equals 1 + count('(') - count(')').
func TestExecStackDepthBalance(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)
	ops := mustLexAll(t, "( ( Move(1,0,0) ) ( Move(0,1,0) ) )")

	_, newStack, err := Exec(img, stack, ops, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(newStack) != 1 {
		t.Fatalf("expected stack depth 1, got %d", len(newStack))
	}
}

func TestExecStackUnderflow(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)
	ops := mustLexAll(t, ")")

	_, _, err := Exec(img, stack, ops, false)
	if !errors.Is(err, bgerr.ErrStackUnderflow) {
		t.Fatalf("expected stack underflow, got %v", err)
	}
}

// A fill whose target overlaps an existing voxel leaves the image
// unchanged (atomicity).
func TestExecFillCollisionIsAtomic(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)

	_, stack, err := Exec(img, stack, mustLexAll(t, "FillRect(2,3,2)"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := img.Len()

	_, _, err = Exec(img, stack, mustLexAll(t, "FillRect(2,3,2)"), false)
	if !errors.Is(err, bgerr.ErrCollision) {
		t.Fatalf("expected collision, got %v", err)
	}
	if img.Len() != before {
		t.Fatalf("image should be unchanged after collision: got %d want %d", img.Len(), before)
	}
}

// Dry-run execution leaves image and stack value-equal to their inputs.
func TestExecDryRunIdempotent(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)
	ops := mustLexAll(t, "( Move(1,2,3) FillRect(2,3,2) Place(3001) )")

	beforeLen := img.Len()
	beforeStack := stack.Clone()

	elements, gotStack, err := Exec(img, stack, ops, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("dry run should still report elements that would be placed, got %v", elements)
	}
	if img.Len() != beforeLen {
		t.Fatalf("dry run must not mutate image: got %d want %d", img.Len(), beforeLen)
	}
	if len(gotStack) != len(beforeStack) || gotStack.Top() != beforeStack.Top() {
		t.Fatalf("dry run must not mutate caller's stack: got %v want %v", gotStack, beforeStack)
	}
}

func TestExecDefaultBoundingSphereInjected(t *testing.T) {
	img := voxel.NewImage()
	stack := NewStack(InitialState)
	ops := mustLexAll(t, "Move(0,0,0)")

	_, _, err := Exec(img, stack, ops, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Len() == 0 {
		t.Fatalf("expected default bounding sphere to be injected once the image would otherwise be empty")
	}
}
