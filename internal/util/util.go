package util

import (
	"sort"
	"strings"
)

// MakeTextList gives a nice list of things based on their display name.
//
// TODO: turn this into a generic function that accepts displayable OR ~string
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	output := ""

	if len(items) == 1 {
		output += items[0]
	} else if len(items) == 2 {
		output += items[0] + " and " + items[1]
	} else {
		// if its more than two, use an oxford comma
		items[len(items)-1] = "and " + items[len(items)-1]
		output += strings.Join(items, ", ")
	}

	return output
}

// SortBy returns a sorted copy of items using less as the ordering function.
// The input slice is not modified.
func SortBy[E any](items []E, less func(l, r E) bool) []E {
	sorted := make([]E, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// SliceIndexOf returns the index of the first occurrence of target in items,
// or -1 if it is not present.
func SliceIndexOf[E comparable](target E, items []E) int {
	for i := range items {
		if items[i] == target {
			return i
		}
	}
	return -1
}

// SliceRemove returns a copy of items with the first occurrence of target
// removed. If target is not present, the returned slice is equal to items.
func SliceRemove[E comparable](target E, items []E) []E {
	pos := SliceIndexOf(target, items)
	if pos < 0 {
		out := make([]E, len(items))
		copy(out, items)
		return out
	}

	out := make([]E, 0, len(items)-1)
	out = append(out, items[:pos]...)
	out = append(out, items[pos+1:]...)
	return out
}
