package placement

import "github.com/dekarrin/brickgrammar/internal/voxel"

// Cache is an incremental parser: it retains at most one
// complete interpretation and, when called with a lexeme sequence that
// extends the cached one by exactly one lexeme, applies only that lexeme
// instead of re-executing the whole sequence. This is what lets the PCFG
// generator's successive fitness probes run in O(|new tokens|).
//
// The returned Image and Stack are owned by the Cache; a caller that will
// mutate either (e.g. a committed, non-dry-run continuation) must clone
// first. The fitness path never mutates.
type Cache struct {
	lexemes  []string
	elements []Element
	img      *voxel.Image
	stack    Stack
}

// NewCache returns an empty parse cache (equivalent to having parsed zero
// lexemes).
func NewCache() *Cache {
	c := &Cache{}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.lexemes = nil
	c.elements = nil
	c.img = voxel.NewImage()
	c.stack = NewStack(InitialState)
}

// Parse returns (elements, image, stack) such that executing lexemes from
// the empty initial state yields them.
func (c *Cache) Parse(lexemes []string) ([]Element, *voxel.Image, Stack, error) {
	if stringsEqual(lexemes, c.lexemes) {
		return c.elements, c.img, c.stack, nil
	}

	if len(lexemes) > 0 && stringsEqual(lexemes[:len(lexemes)-1], c.lexemes) {
		last := lexemes[len(lexemes)-1]
		op, err := Lex(last)
		if err != nil {
			return nil, nil, nil, err
		}

		newElements, newStack, err := Exec(c.img, c.stack, []Operation{op}, false)
		if err != nil {
			return nil, nil, nil, err
		}

		c.elements = append(c.elements, newElements...)
		c.stack = newStack
		c.lexemes = append(append([]string{}, c.lexemes...), last)
		return c.elements, c.img, c.stack, nil
	}

	if len(lexemes) == 0 {
		c.reset()
		return c.elements, c.img, c.stack, nil
	}

	// Prefix didn't match: rebuild recursively from one shorter, then retry
	// — this will now hit the extend branch above.
	if _, _, _, err := c.Parse(lexemes[:len(lexemes)-1]); err != nil {
		return nil, nil, nil, err
	}
	return c.Parse(lexemes)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
