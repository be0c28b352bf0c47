// Package benchmark times Go's unstable sort over cached inputs.
package benchmark

import (
	"cmp"
	"slices"
)

// Pass is one copy-and-sort of the scratch buffer.
type Pass int

const (
	// PassDefault sorts with the element type's natural ordering.
	PassDefault Pass = iota
	// PassAscending sorts with an explicit ascending comparator.
	PassAscending
	// PassDescending sorts with an explicit descending comparator.
	PassDescending
)

// Passes lists the passes in the order SortUnstable runs them.
var Passes = []Pass{PassDefault, PassAscending, PassDescending}

func (p Pass) String() string {
	switch p {
	case PassDefault:
		return "default"
	case PassAscending:
		return "ascending"
	case PassDescending:
		return "descending"
	default:
		return "unknown"
	}
}

func ascending(a, b int32) int {
	return cmp.Compare(a, b)
}

func descending(a, b int32) int {
	return cmp.Compare(b, a)
}

// Run resets scratch from input and sorts it in place.
// scratch must be at least as long as input.
func (p Pass) Run(input, scratch []int32) {
	scratch = scratch[:len(input)]
	copy(scratch, input)
	switch p {
	case PassDefault:
		slices.Sort(scratch)
	case PassAscending:
		slices.SortFunc(scratch, ascending)
	case PassDescending:
		slices.SortFunc(scratch, descending)
	}
}

// SortUnstable is the timed unit: three full passes, each starting from a
// fresh copy of input so no pass inherits another's order.
func SortUnstable(input, scratch []int32) {
	for _, p := range Passes {
		p.Run(input, scratch)
	}
}
