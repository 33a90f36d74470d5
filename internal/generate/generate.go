// Package generate implements the PCFG leftmost-expansion loop: stochastic
// selection where a nonterminal's productions carry a valid probability
// distribution, fitness-greedy selection otherwise.
package generate

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
	"github.com/dekarrin/brickgrammar/internal/fitness"
	"github.com/dekarrin/brickgrammar/internal/grammar"
	"github.com/dekarrin/brickgrammar/internal/placement"
)

// probabilitySumTolerance is how close a LHS's production probabilities
// must sum to 1.0 to be treated as a valid distribution rather than as
// "unset".
const probabilitySumTolerance = 1e-6

// maxTerminateDepth caps the recursion terminate() can do while resolving a
// candidate RHS to a tuple of terminals, so that ill-formed
// (non-terminating) grammars fail cleanly rather than stack-overflowing.
const maxTerminateDepth = 1000

// ErrUndefinedNonterminal is returned when a nonterminal appears on some
// RHS but has no productions of its own.
var ErrUndefinedNonterminal = errors.New("nonterminal has no productions")

// ErrTerminateDepthExceeded is returned by terminate when resolving a
// candidate RHS recurses past maxTerminateDepth — almost always a sign of a
// left-recursive or otherwise non-terminating grammar rule.
var ErrTerminateDepthExceeded = errors.New("terminal resolution recursion limit exceeded")

// Sentence is the generator's mutable working set of symbols.
type Sentence []grammar.Symbol

// Lexemes returns the lexeme text of every terminal symbol in the sentence,
// in order. A fully-generated sentence (one Generate returned without error)
// contains only terminals, so this is the sequence to hand to
// placement.Exec or placement.Cache.Parse.
func (s Sentence) Lexemes() []string {
	return terminalsOnly(s)
}

// Generate runs the leftmost-expansion loop to completion (or until
// maxSentenceLen is exceeded, returning bgerr.ErrGenerationLimitExceeded)
// and returns the final terminal-and-nonterminal sequence.
//
// rng supplies both the probabilistic-production sampler and the
// equal-fitness tie-break; pass a seeded *rand.Rand for reproducible runs.
func Generate(g *grammar.Grammar, cache *placement.Cache, maxSentenceLen int, rng *rand.Rand) (Sentence, error) {
	sentence := Sentence{grammar.NonTerm(g.Start)}

	for {
		cursor := nextNonterminal(sentence, 0)
		if cursor < 0 {
			return sentence, nil
		}
		if len(sentence) > maxSentenceLen {
			return nil, bgerr.ErrGenerationLimitExceeded
		}

		lhs := sentence[cursor].Name
		prods := g.ProductionsFor(lhs)
		if len(prods) == 0 {
			// An unbound nonterminal contributes nothing rather than
			// aborting the whole generation.
			sentence = replaceAt(sentence, cursor, nil)
			continue
		}

		var chosen grammar.Production
		if sum, ok := validDistribution(prods); ok {
			chosen = sampleByProbability(prods, sum, rng)
		} else {
			var err error
			chosen, err = chooseByFitness(g, cache, prods, sentence, cursor, rng)
			if err != nil {
				return nil, err
			}
		}

		sentence = replaceAt(sentence, cursor, chosen.RHS)
	}
}

// chooseByFitness scores every production's fully-terminated RHS against the
// sentence prefix already committed, keeps the pool of productions tied for
// the best score, short-circuits as soon as one scores 1.0, and picks
// uniformly at random from that pool (falling back to the last-considered
// production if the pool somehow ends up empty).
func chooseByFitness(g *grammar.Grammar, cache *placement.Cache, prods []grammar.Production, sentence Sentence, cursor int, rng *rand.Rand) (grammar.Production, error) {
	prefix := terminalsOnly(sentence[:cursor])

	bestFitness := 0.0
	var bestProds []grammar.Production

	for _, prod := range prods {
		terminals, err := terminateAll(g, prod.RHS, rng, maxTerminateDepth)
		if err != nil {
			return grammar.Production{}, err
		}

		f, err := fitness.Score(cache, terminals, prefix)
		if err != nil {
			return grammar.Production{}, err
		}

		if f > bestFitness {
			bestProds = nil
		}
		if f >= bestFitness {
			bestFitness = f
			bestProds = append(bestProds, prod)
			if f >= 1.0 {
				break
			}
		}
	}

	if len(bestProds) == 0 {
		return prods[len(prods)-1], nil
	}
	return bestProds[rng.Intn(len(bestProds))], nil
}

// terminate resolves a single symbol to its tuple of terminal lexemes,
// recursing through nonterminals that have a canonical all-terminal
// expansion, a single production, or are resolved by weighted choice when
// several productions exist with no probabilities present — in which case
// the LAST production is used, following the convention of placing the
// empty/terminating rule last.
func terminate(g *grammar.Grammar, sym grammar.Symbol, rng *rand.Rand, depth int) ([]string, error) {
	if sym.Terminal {
		return []string{sym.Name}, nil
	}
	if depth <= 0 {
		return nil, fmt.Errorf("%w: resolving %q", ErrTerminateDepthExceeded, sym.Name)
	}

	if rhs, ok := g.ToTerminal[sym.Name]; ok {
		return symbolNames(rhs), nil
	}

	prods := g.ProductionsFor(sym.Name)
	if len(prods) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedNonterminal, sym.Name)
	}

	var prod grammar.Production
	switch {
	case len(prods) == 1:
		prod = prods[0]
	default:
		if sum, ok := validDistribution(prods); ok {
			prod = sampleByProbability(prods, sum, rng)
		} else {
			prod = prods[len(prods)-1]
		}
	}

	return terminateAll(g, prod.RHS, rng, depth-1)
}

func terminateAll(g *grammar.Grammar, syms []grammar.Symbol, rng *rand.Rand, depth int) ([]string, error) {
	var out []string
	for _, s := range syms {
		t, err := terminate(g, s, rng, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, t...)
	}
	return out, nil
}

func symbolNames(syms []grammar.Symbol) []string {
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name
	}
	return names
}

// terminalsOnly returns the lexemes of the already-terminal prefix of a
// sentence. The generator only ever calls this on sentence[0:cursor], which
// by leftmost expansion contains no nonterminals.
func terminalsOnly(syms Sentence) []string {
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		out = append(out, s.Name)
	}
	return out
}

// validDistribution reports whether prods' probabilities sum to
// approximately 1.0, and if so returns that sum (for use by
// sampleByProbability, which divides by it to tolerate minor floating
// drift).
func validDistribution(prods []grammar.Production) (float64, bool) {
	sum := 0.0
	for _, p := range prods {
		sum += p.Probability
	}
	if sum >= 1.0-probabilitySumTolerance && sum <= 1.0+probabilitySumTolerance {
		return sum, true
	}
	return 0, false
}

func sampleByProbability(prods []grammar.Production, sum float64, rng *rand.Rand) grammar.Production {
	r := rng.Float64() * sum
	acc := 0.0
	for _, p := range prods {
		acc += p.Probability
		if r < acc {
			return p
		}
	}
	return prods[len(prods)-1]
}

// nextNonterminal returns the index of the first Nonterminal in sentence at
// or after from, or -1 if none remain. Advancing from the insertion point
// rather than i+1 is necessary because an expansion may insert zero or more
// symbols, so the cursor must re-scan starting where the replacement began.
func nextNonterminal(sentence Sentence, from int) int {
	for i := from; i < len(sentence); i++ {
		if !sentence[i].Terminal {
			return i
		}
	}
	return -1
}

func replaceAt(sentence Sentence, i int, rhs []grammar.Symbol) Sentence {
	out := make(Sentence, 0, len(sentence)-1+len(rhs))
	out = append(out, sentence[:i]...)
	out = append(out, rhs...)
	out = append(out, sentence[i+1:]...)
	return out
}
