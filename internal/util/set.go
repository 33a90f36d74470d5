// Package util holds small generic collection helpers shared across the
// placement machine. KeySet backs the voxel occupancy image.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// ISet is the common contract implemented by KeySet. Trimmed from a larger
// set hierarchy down to the operations the voxel image and grammar loader
// actually use: membership, union (for bounding-shape placement), and
// snapshotting (for the parse cache's cloned images).
type ISet[E any] interface {
	Add(element E)
	Has(element E) bool
	Remove(element E)
	Len() int
	Elements() []E
	Copy() ISet[E]
	Union(o ISet[E]) ISet[E]
	String() string
}

// KeySet is a map[E]bool with methods added to fulfill ISet[E].
type KeySet[E comparable] map[E]bool

func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func KeySetOf[E comparable](sl []E) KeySet[E] {
	s := NewKeySet[E]()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

func (s KeySet[E]) Len() int {
	return len(s)
}

func (s KeySet[E]) Elements() []E {
	if s == nil {
		return nil
	}
	sl := make([]E, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

// Copy returns a new KeySet with the same elements. Used whenever the parse
// cache or a dry-run path needs to mutate a voxel image without touching the
// caller's.
func (s KeySet[E]) Copy() ISet[E] {
	newS := NewKeySet[E]()
	for k := range s {
		newS[k] = true
	}
	return newS
}

func (s KeySet[E]) Union(o ISet[E]) ISet[E] {
	newSet := NewKeySet[E]()
	for k := range s {
		newSet.Add(k)
	}
	for _, k := range o.Elements() {
		newSet.Add(k)
	}
	return newSet
}

// String shows the contents of the set, ordered by each element's %v
// representation for deterministic test output. Order is not otherwise
// meaningful.
func (s KeySet[E]) String() string {
	convs := make([]string, 0, len(s))
	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(convs, ", "))
	sb.WriteRune('}')
	return sb.String()
}
