package contraction

import (
	"context"
	"sort"

	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/formula"
)

// partialMeetContract enumerates remainder sets (§4.3.1) and applies
// the configured selection function.
func (c *Contractor) partialMeetContract(ctx context.Context, bb *beliefbase.BeliefBase, phi *formula.Formula, phiText string, selector Selector) (*beliefbase.BeliefBase, error) {
	beliefs := bb.Beliefs()
	remainders, err := c.generateRemainders(ctx, beliefs, phi, phiText)
	if err != nil {
		return nil, err
	}
	if len(remainders) == 0 {
		// No subset of B, including the empty one, fails to entail
		// phi: phi is a tautology even the empty base entails.
		return beliefbase.New(), nil
	}

	var kept map[string]bool
	switch selector {
	case SelectAll:
		kept = keptSetAll(remainders)
	case SelectMax:
		kept = keptSetMaxPriority(remainders, bb)
	case SelectMin:
		kept = keptSetSmallestRemainder(remainders, c.better(bb))
	}
	return c.buildResult(bb, kept), nil
}

// generateRemainders searches subsets of beliefs in decreasing
// cardinality, keeping a subset as a remainder when it does not entail
// phi and pruning any candidate that is a (non-maximal) subset of an
// already-found remainder.
func (c *Contractor) generateRemainders(ctx context.Context, beliefs []*beliefbase.Belief, phi *formula.Formula, phiText string) ([][]*beliefbase.Belief, error) {
	n := len(beliefs)
	total := 1 << uint(n)

	masks := make([]int, total)
	for m := 0; m < total; m++ {
		masks[m] = m
	}
	sort.Slice(masks, func(i, j int) bool {
		return popcount(masks[i]) > popcount(masks[j])
	})

	var remainders [][]*beliefbase.Belief
	var remainderMasks []int
	for _, mask := range masks {
		if mask == total-1 {
			// The full base entails phi (checked by the caller before
			// enumeration starts), so it is never itself a remainder.
			continue
		}
		if isProperSubsetOfAny(mask, remainderMasks) {
			continue
		}
		subset := subsetOf(beliefs, mask)
		entails, err := c.entailsConservative(ctx, subset, phi, phiText)
		if err != nil {
			return nil, err
		}
		if !entails {
			remainders = append(remainders, subset)
			remainderMasks = append(remainderMasks, mask)
		}
	}
	return remainders, nil
}

func popcount(m int) int {
	count := 0
	for m != 0 {
		count += m & 1
		m >>= 1
	}
	return count
}

func isProperSubsetOfAny(mask int, supersets []int) bool {
	for _, s := range supersets {
		if mask&s == mask && mask != s {
			return true
		}
	}
	return false
}

func subsetOf(beliefs []*beliefbase.Belief, mask int) []*beliefbase.Belief {
	var out []*beliefbase.Belief
	for i, b := range beliefs {
		if mask&(1<<uint(i)) != 0 {
			out = append(out, b)
		}
	}
	return out
}

// keptSetAll is the "all" selector (§4.3.1): the classical full meet,
// the intersection of every remainder.
func keptSetAll(remainders [][]*beliefbase.Belief) map[string]bool {
	counts := make(map[string]int)
	for _, r := range remainders {
		for _, b := range r {
			counts[b.Text()]++
		}
	}
	kept := make(map[string]bool)
	for text, n := range counts {
		if n == len(remainders) {
			kept[text] = true
		}
	}
	return kept
}

// keptSetMaxPriority is the "max" selector: the intersection of the
// remainders whose total priority is maximal.
func keptSetMaxPriority(remainders [][]*beliefbase.Belief, bb *beliefbase.BeliefBase) map[string]bool {
	sums := make([]int, len(remainders))
	best := 0
	for i, r := range remainders {
		sums[i] = sumPriority(bb, r)
		if i == 0 || sums[i] > best {
			best = sums[i]
		}
	}
	var qualifying [][]*beliefbase.Belief
	for i, r := range remainders {
		if sums[i] == best {
			qualifying = append(qualifying, r)
		}
	}
	return keptSetAll(qualifying)
}

// keptSetSmallestRemainder is the "min" selector (spec §4.3.1 names it
// "min / cardinality"): a single remainder of extremal cardinality.
// original_source/contraction.py resolves the ambiguity as
// `min(remainder_sets, key=len)`, so the smallest remainder is the one
// chosen; ties are broken per the configured TieBreak.
func keptSetSmallestRemainder(remainders [][]*beliefbase.Belief, better func(a, b []*beliefbase.Belief) bool) map[string]bool {
	bestIdx := 0
	for i := 1; i < len(remainders); i++ {
		switch {
		case len(remainders[i]) < len(remainders[bestIdx]):
			bestIdx = i
		case len(remainders[i]) == len(remainders[bestIdx]) && better(remainders[i], remainders[bestIdx]):
			bestIdx = i
		}
	}
	kept := make(map[string]bool, len(remainders[bestIdx]))
	for _, b := range remainders[bestIdx] {
		kept[b.Text()] = true
	}
	return kept
}

func (c *Contractor) buildResult(bb *beliefbase.BeliefBase, kept map[string]bool) *beliefbase.BeliefBase {
	out := beliefbase.New()
	for _, text := range bb.List() {
		if !kept[text] {
			continue
		}
		belief, _ := bb.Belief(text)
		out.Add(text, belief.AST())
		if p, ok := bb.ExplicitPriority(text); ok {
			out.SetPriorities(map[string]int{text: p})
		}
	}
	return out
}
