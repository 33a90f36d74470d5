package placement

import (
	"testing"

	"github.com/dekarrin/brickgrammar/internal/voxel"
)

// S2: lex("Move(1,2,3)") -> (Move, (1, 2, 3)).
func TestLexMove(t *testing.T) {
	op, err := Lex("Move(1,2,3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Kind != OpMove {
		t.Fatalf("expected OpMove, got %v", op.Kind)
	}
	if op.Vec != voxel.V(1, 2, 3) {
		t.Fatalf("expected (1,2,3), got %v", op.Vec)
	}
}

func TestLexScopeMarkers(t *testing.T) {
	open, err := Lex("(")
	if err != nil || open.Kind != OpPush {
		t.Fatalf("expected OpPush, got %v, err %v", open, err)
	}
	close_, err := Lex(")")
	if err != nil || close_.Kind != OpPop {
		t.Fatalf("expected OpPop, got %v, err %v", close_, err)
	}
}

func TestLexPlace(t *testing.T) {
	op, err := Lex("Place(3005)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Kind != OpPlace || op.ID != "3005" {
		t.Fatalf("expected Place(3005), got %v", op)
	}
}

func TestLexUnknownOp(t *testing.T) {
	_, err := Lex("Teleport(1,2,3)")
	if err == nil {
		t.Fatalf("expected error for unknown op")
	}
}

func TestLexMalformed(t *testing.T) {
	_, err := Lex("Move(1,2")
	if err == nil {
		t.Fatalf("expected error for malformed lexeme")
	}
}

func TestLexIsMemoized(t *testing.T) {
	a, _ := Lex("Rotate(90)")
	b, _ := Lex("Rotate(90)")
	if a != b {
		t.Fatalf("expected memoized lex to return equal results")
	}
}
