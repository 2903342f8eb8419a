// Package contraction implements partial-meet contraction (spec §4.3.1)
// and the kernel-contraction surrogate for large bases, plus the
// priority-sorted linear alternative (§4.3.2), behind one Contract
// contract.
package contraction

// Selector names a remainder-selection function (spec §6).
type Selector string

const (
	SelectAll Selector = "all"
	SelectMax Selector = "max"
	SelectMin Selector = "min"
)

// TieBreak names how ties are resolved when a selector must choose a
// single remainder among several of equal standing (spec §4.3.1).
type TieBreak string

const (
	TieBreakPriority       TieBreak = "priority"
	TieBreakLexicographic  TieBreak = "lexicographic"
	TieBreakInsertionOrder TieBreak = "insertion_order"
)

// Algorithm names which of §4.3's two contraction algorithms a
// Contractor runs.
type Algorithm string

const (
	// AlgorithmPartialMeet is §4.3.1: remainder enumeration (or, past
	// RemainderSearchCap, the kernel-contraction surrogate) plus a
	// Selector. This is the default.
	AlgorithmPartialMeet Algorithm = "partial_meet"
	// AlgorithmLinear is §4.3.2: priority-sorted linear contraction,
	// offered for callers with explicit priorities who want faster,
	// non-extensional contraction. Selector/TieBreak are unused when
	// this is elected.
	AlgorithmLinear Algorithm = "linear"
)

// Options configures a Contractor (spec §6's configuration table).
type Options struct {
	Selector           Selector
	TieBreak           TieBreak
	RemainderSearchCap int
	Algorithm          Algorithm
}

// DefaultOptions returns spec §6's defaults: full meet, lexicographic
// tie-break (the ordering §4.3.1 describes as the built-in
// determinism guarantee), a remainder search cap of 20 beliefs, and
// partial-meet contraction (§4.3.2's linear alternative is opt-in).
func DefaultOptions() Options {
	return Options{
		Selector:           SelectAll,
		TieBreak:           TieBreakLexicographic,
		RemainderSearchCap: 20,
		Algorithm:          AlgorithmPartialMeet,
	}
}
