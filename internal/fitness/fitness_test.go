package fitness

import (
	"testing"

	"github.com/dekarrin/brickgrammar/internal/placement"
)

func TestScorePerfectOnFirstFill(t *testing.T) {
	cache := placement.NewCache()

	score, err := Score(cache, []string{"FillRect(2,3,2)", "Place(3005)"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.0 {
		t.Fatalf("expected perfect fitness, got %v", score)
	}
}

func TestScoreZeroOnCollision(t *testing.T) {
	cache := placement.NewCache()

	if _, _, _, err := cache.Parse([]string{"FillRect(2,3,2)"}); err != nil {
		t.Fatalf("unexpected error priming cache: %v", err)
	}

	score, err := Score(cache, []string{"FillRect(2,3,2)"}, []string{"FillRect(2,3,2)"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.0 {
		t.Fatalf("expected zero fitness on collision, got %v", score)
	}
}

func TestScorePropagatesLexError(t *testing.T) {
	cache := placement.NewCache()
	_, err := Score(cache, []string{"Teleport(1,2,3)"}, nil)
	if err == nil {
		t.Fatalf("expected lex error to propagate rather than score as 0")
	}
}
