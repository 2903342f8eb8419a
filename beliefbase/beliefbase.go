package beliefbase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agm-labs/abr/formula"
)

// BeliefBase is an insertion-ordered, duplicate-free collection of
// Beliefs with a text→priority mapping (§3). Priorities not explicitly
// set via SetPriorities default to the monotonic rank N, N-1, ..., 1
// where N is the base's current size and earlier insertions rank
// higher; because N is evaluated at query time the default ranking
// shifts as beliefs are added or removed, matching §3's "earlier
// insertions have higher priority" without requiring a priority to be
// frozen in at insertion.
type BeliefBase struct {
	order    []string
	beliefs  map[string]*Belief
	explicit map[string]int
}

// New returns an empty BeliefBase.
func New() *BeliefBase {
	return &BeliefBase{
		beliefs:  make(map[string]*Belief),
		explicit: make(map[string]int),
	}
}

// Add inserts a belief with the given text and parsed AST, returning
// false without effect if text is already present (§3 invariant: no
// duplicate textual formulas).
func (bb *BeliefBase) Add(text string, ast *formula.Formula) bool {
	if _, ok := bb.beliefs[text]; ok {
		return false
	}
	bb.beliefs[text] = newBelief(text, ast)
	bb.order = append(bb.order, text)
	return true
}

// Remove deletes the belief with the given text if present. Removing
// an absent belief is a silent no-op (§6).
func (bb *BeliefBase) Remove(text string) {
	if _, ok := bb.beliefs[text]; !ok {
		return
	}
	delete(bb.beliefs, text)
	delete(bb.explicit, text)
	for i, t := range bb.order {
		if t == text {
			bb.order = append(bb.order[:i:i], bb.order[i+1:]...)
			break
		}
	}
}

// Has reports whether text is present in the base.
func (bb *BeliefBase) Has(text string) bool {
	_, ok := bb.beliefs[text]
	return ok
}

// List returns the base's formula texts in insertion order.
func (bb *BeliefBase) List() []string {
	out := make([]string, len(bb.order))
	copy(out, bb.order)
	return out
}

// Clear empties the base, discarding all beliefs and explicit priorities.
func (bb *BeliefBase) Clear() {
	bb.order = nil
	bb.beliefs = make(map[string]*Belief)
	bb.explicit = make(map[string]int)
}

// Len returns the number of beliefs in the base.
func (bb *BeliefBase) Len() int { return len(bb.order) }

// Belief returns the belief with the given text, if present.
func (bb *BeliefBase) Belief(text string) (*Belief, bool) {
	b, ok := bb.beliefs[text]
	return b, ok
}

// Beliefs returns every belief in the base, in insertion order.
func (bb *BeliefBase) Beliefs() []*Belief {
	out := make([]*Belief, len(bb.order))
	for i, t := range bb.order {
		out[i] = bb.beliefs[t]
	}
	return out
}

// InsertionIndex returns the position at which text was inserted, or
// -1 if text is absent. Used by contraction's insertion_order tie-break.
func (bb *BeliefBase) InsertionIndex(text string) int {
	for i, t := range bb.order {
		if t == text {
			return i
		}
	}
	return -1
}

// SetPriorities merges explicit priorities into the base, overriding
// the default rank for the named beliefs. Unknown texts are recorded
// regardless (§6: set_priorities never fails), so a priority set before
// the matching belief is added still takes effect once it is.
func (bb *BeliefBase) SetPriorities(priorities map[string]int) {
	for text, p := range priorities {
		bb.explicit[text] = p
	}
}

// ExplicitPriority returns the priority text was given via
// SetPriorities, if any, distinct from the computed default rank.
func (bb *BeliefBase) ExplicitPriority(text string) (int, bool) {
	p, ok := bb.explicit[text]
	return p, ok
}

// Priority returns text's priority: the explicit value from
// SetPriorities if one was given, otherwise the default rank (higher
// for earlier insertions).
func (bb *BeliefBase) Priority(text string) int {
	if p, ok := bb.explicit[text]; ok {
		return p
	}
	idx := bb.InsertionIndex(text)
	if idx < 0 {
		return 0
	}
	return len(bb.order) - idx
}

// Clone returns a deep-enough copy of bb: a new base with the same
// beliefs (by reference, since Beliefs are never mutated in place) and
// priorities, independent of further Add/Remove on the original.
func (bb *BeliefBase) Clone() *BeliefBase {
	out := New()
	out.order = append([]string(nil), bb.order...)
	for k, v := range bb.beliefs {
		out.beliefs[k] = v
	}
	for k, v := range bb.explicit {
		out.explicit[k] = v
	}
	return out
}

// String renders the base for CLI/manual-mode display: an empty base
// reports itself as such, otherwise its formulas are listed sorted
// lexicographically, one per line.
func (bb *BeliefBase) String() string {
	if len(bb.order) == 0 {
		return "belief base is empty"
	}
	sorted := append([]string(nil), bb.order...)
	sort.Strings(sorted)
	var b strings.Builder
	b.WriteString("belief base:\n")
	for _, text := range sorted {
		fmt.Fprintf(&b, "- %s\n", text)
	}
	return strings.TrimRight(b.String(), "\n")
}
