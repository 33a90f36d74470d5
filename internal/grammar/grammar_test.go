package grammar

import (
	"errors"
	"math"
	"testing"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
)

func TestLoadSimpleRule(t *testing.T) {
	g, err := Load("Start -> 'a' 'b'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Start != "Start" {
		t.Fatalf("expected start symbol Start, got %q", g.Start)
	}
	prods := g.ProductionsFor("Start")
	if len(prods) != 1 || len(prods[0].RHS) != 2 {
		t.Fatalf("expected one production with 2 RHS symbols, got %v", prods)
	}
	if prods[0].Probability != 0 {
		t.Fatalf("expected implicit probability 0, got %v", prods[0].Probability)
	}
}

func TestLoadWithProbabilitiesAndAlternation(t *testing.T) {
	g, err := Load("Start -> 'a' [.3] | 'b' [.7]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prods := g.ProductionsFor("Start")
	if len(prods) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(prods))
	}
	if math.Abs(prods[0].Probability-0.3) > 1e-9 || math.Abs(prods[1].Probability-0.7) > 1e-9 {
		t.Fatalf("expected probabilities .3 and .7, got %v", prods)
	}
}

func TestLoadEmptyRHSIsNullable(t *testing.T) {
	g, err := Load("Nothing -> ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prods := g.ProductionsFor("Nothing")
	if len(prods) != 1 || len(prods[0].RHS) != 0 {
		t.Fatalf("expected single nullable production, got %v", prods)
	}
}

func TestLoadContinuationLine(t *testing.T) {
	g, err := Load("Stud -> '(' 'Move(0,-3,0)' Stud ')'\n|\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prods := g.ProductionsFor("Stud")
	if len(prods) != 2 {
		t.Fatalf("expected continuation to add a second alternative, got %d", len(prods))
	}
}

func TestLoadToTerminalDerivation(t *testing.T) {
	g, err := Load("Leaf -> 'a' 'b'\nOther -> Leaf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rhs, ok := g.ToTerminal["Leaf"]
	if !ok || len(rhs) != 2 {
		t.Fatalf("expected Leaf to have a canonical terminal expansion, got %v", rhs)
	}
	if _, ok := g.ToTerminal["Other"]; ok {
		t.Fatalf("Other's RHS includes a nonterminal and should not be in ToTerminal")
	}
}

func TestLoadInvalidProbability(t *testing.T) {
	_, err := Load("Start -> 'a' [notanumber]")
	if !errors.Is(err, bgerr.ErrInvalidProbability) {
		t.Fatalf("expected ErrInvalidProbability, got %v", err)
	}
}

func TestLoadProbabilitiesNeedNotSumToOne(t *testing.T) {
	g, err := Load("Start -> 'a' [0.9] | 'b' [0.9]")
	if err != nil {
		t.Fatalf("loader should tolerate probabilities that don't sum to 1: %v", err)
	}
	if len(g.ProductionsFor("Start")) != 2 {
		t.Fatalf("expected both alternatives to load")
	}
}
