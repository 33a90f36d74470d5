package generate

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
	"github.com/dekarrin/brickgrammar/internal/grammar"
	"github.com/dekarrin/brickgrammar/internal/placement"
)

// A self-recursive stud-stacking rule with no probabilities, so the
// generator falls into the fitness-greedy branch and must terminate once
// the next FillRect would collide with the bounding sphere's shell or a
// prior fill.
const g1Source = `Stud -> '(' 'Move(0,-3,0)' 'FillRect(2,3,2)' 'Place(3005)' Stud ')'
Stud ->`

func TestGenerateG1Terminates(t *testing.T) {
	g, err := grammar.Load(g1Source)
	if err != nil {
		t.Fatalf("unexpected grammar load error: %v", err)
	}

	cache := placement.NewCache()
	rng := rand.New(rand.NewSource(1))

	sentence, err := Generate(g, cache, 500, rng)
	if err != nil {
		t.Fatalf("unexpected generation error: %v", err)
	}

	text := strings.Join(terminalsOnly(sentence), " ")
	if !strings.Contains(text, "FillRect(2,3,2)") {
		t.Fatalf("expected at least one stud placement, got %q", text)
	}

	// The committed interpretation of the final sentence must succeed with
	// no collision.
	elements, _, _, err := cache.Parse(terminalsOnly(sentence))
	if err != nil {
		t.Fatalf("committed interpretation should succeed: %v", err)
	}
	if len(elements) < 1 {
		t.Fatalf("expected at least one placed element, got %d", len(elements))
	}
}

func TestGenerateRespectsMaxSentenceLen(t *testing.T) {
	// A single production with probability 1.0 that recurses on itself will
	// never terminate on its own; the generator must catch this via
	// maxSentenceLen rather than looping forever.
	g, err := grammar.Load("Stud -> 'a' Stud [1.0]")
	if err != nil {
		t.Fatalf("unexpected grammar load error: %v", err)
	}

	cache := placement.NewCache()
	rng := rand.New(rand.NewSource(1))

	_, err = Generate(g, cache, 10, rng)
	if !errors.Is(err, bgerr.ErrGenerationLimitExceeded) {
		t.Fatalf("expected generation limit exceeded, got %v", err)
	}
}

func TestGenerateProbabilisticSelection(t *testing.T) {
	g, err := grammar.Load("Start -> 'a' [1.0] | 'b' [0.0]")
	if err != nil {
		t.Fatalf("unexpected grammar load error: %v", err)
	}

	cache := placement.NewCache()
	rng := rand.New(rand.NewSource(1))

	sentence, err := Generate(g, cache, 10, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sentence) != 1 || sentence[0].Name != "a" {
		t.Fatalf("expected deterministic pick of 'a' given probability 1.0, got %v", sentence)
	}
}
