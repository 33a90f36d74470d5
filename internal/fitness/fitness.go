// Package fitness implements the spatial fitness function that the PCFG
// generator consults on each candidate production.
package fitness

import (
	"errors"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
	"github.com/dekarrin/brickgrammar/internal/placement"
)

// Score calls cache.Parse(prefix) to obtain the committed state up to
// prefix, then dry-run executes candidate against it. It returns 1.0 if the
// candidate raises neither a collision nor a failed assertion, 0.0 if it
// does, and propagates any other error — a malformed lexeme or unknown op
// is a grammar bug, not a physically-invalid placement, and must not be
// silently scored as 0.
func Score(cache *placement.Cache, candidate, prefix []string) (float64, error) {
	_, img, stack, err := cache.Parse(prefix)
	if err != nil {
		return 0, err
	}

	ops := make([]placement.Operation, 0, len(candidate))
	for _, lexeme := range candidate {
		op, err := placement.Lex(lexeme)
		if err != nil {
			return 0, err
		}
		ops = append(ops, op)
	}

	_, _, err = placement.Exec(img, stack, ops, true)
	if err == nil {
		return 1.0, nil
	}
	if errors.Is(err, bgerr.ErrCollision) || errors.Is(err, bgerr.ErrAssertion) {
		return 0.0, nil
	}
	return 0, err
}
