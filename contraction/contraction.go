package contraction

import (
	"context"
	"sort"
	"strings"

	"github.com/agm-labs/abr/abrerr"
	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/cnf"
	"github.com/agm-labs/abr/formula"
	"github.com/agm-labs/abr/prover"
)

// Contractor implements B ÷ φ: the partial-meet contraction contract
// (§4.3) over a beliefbase.BeliefBase, using a prover.Prover as its
// entailment oracle.
type Contractor struct {
	Normalizer *cnf.Normalizer
	Prover     *prover.Prover
	Options    Options
}

// New returns a Contractor with the given options; zero-value fields
// of opts fall back to DefaultOptions.
func New(n *cnf.Normalizer, p *prover.Prover, opts Options) *Contractor {
	defaults := DefaultOptions()
	if opts.Selector == "" {
		opts.Selector = defaults.Selector
	}
	if opts.TieBreak == "" {
		opts.TieBreak = defaults.TieBreak
	}
	if opts.RemainderSearchCap <= 0 {
		opts.RemainderSearchCap = defaults.RemainderSearchCap
	}
	if opts.Algorithm == "" {
		opts.Algorithm = defaults.Algorithm
	}
	return &Contractor{Normalizer: n, Prover: p, Options: opts}
}

// Contract computes B ÷ φ, returning a new BeliefBase (bb is never
// mutated). selector overrides c.Options.Selector for this call when
// non-empty. Success, inclusion, and vacuity (§4.3) hold by
// construction; extensionality follows from the prover's CNF-keyed
// memoization.
func (c *Contractor) Contract(ctx context.Context, bb *beliefbase.BeliefBase, phi *formula.Formula, phiText string, selector Selector) (*beliefbase.BeliefBase, error) {
	algorithm := c.Options.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmPartialMeet
	}
	if selector == "" {
		selector = c.Options.Selector
	}
	if algorithm == AlgorithmPartialMeet {
		switch selector {
		case SelectAll, SelectMax, SelectMin:
		default:
			return nil, abrerr.NewInvalidSelector("contract", phiText, string(selector))
		}
	}

	top, err := c.Prover.Entails(ctx, toClauseSources(bb.Beliefs()), phi, phiText)
	if err != nil {
		return nil, err
	}
	if top == prover.Unknown {
		return nil, abrerr.NewOverbudget("contract", phiText)
	}
	if top != prover.True {
		// Vacuity: B already does not entail phi.
		return bb.Clone(), nil
	}

	if algorithm == AlgorithmLinear {
		return c.LinearContract(ctx, bb, phi, phiText)
	}

	cap := c.Options.RemainderSearchCap
	if bb.Len() > cap {
		return c.kernelContract(ctx, bb, phi, phiText)
	}
	return c.partialMeetContract(ctx, bb, phi, phiText, selector)
}

// LinearContract implements §4.3.2's priority-sorted linear
// contraction: B is sorted ascending by priority and beliefs are
// dropped in that order until entailment of phi becomes false. It is
// faster than partial-meet but does not in general satisfy
// extensionality; callers opt in explicitly.
func (c *Contractor) LinearContract(ctx context.Context, bb *beliefbase.BeliefBase, phi *formula.Formula, phiText string) (*beliefbase.BeliefBase, error) {
	out := bb.Clone()
	for {
		beliefs := out.Beliefs()
		if len(beliefs) == 0 {
			return out, nil
		}
		entails, err := c.entailsConservative(ctx, beliefs, phi, phiText)
		if err != nil {
			return nil, err
		}
		if !entails {
			return out, nil
		}
		sort.SliceStable(beliefs, func(i, j int) bool {
			return out.Priority(beliefs[i].Text()) < out.Priority(beliefs[j].Text())
		})
		out.Remove(beliefs[0].Text())
	}
}

// entailsConservative reports whether beliefs may entail phi: anything
// other than a definitive False (Unknown, or an Overbudget error)
// counts as entailed. Internal entails calls used for remainder/kernel
// membership checks are conservative (§7): a subset is kept as a
// remainder only when non-entailment is definite, so contraction
// over-contracts rather than risks an unsound base.
func (c *Contractor) entailsConservative(ctx context.Context, beliefs []*beliefbase.Belief, phi *formula.Formula, phiText string) (bool, error) {
	result, err := c.Prover.Entails(ctx, toClauseSources(beliefs), phi, phiText)
	if err != nil {
		return true, nil
	}
	return result != prover.False, nil
}

func toClauseSources(beliefs []*beliefbase.Belief) []prover.ClauseSource {
	out := make([]prover.ClauseSource, len(beliefs))
	for i, b := range beliefs {
		out[i] = b
	}
	return out
}

// better returns a comparator usable to pick a single winner among
// remainders tied on the primary selection criterion, per c.Options.TieBreak.
func (c *Contractor) better(bb *beliefbase.BeliefBase) func(a, b []*beliefbase.Belief) bool {
	switch c.Options.TieBreak {
	case TieBreakPriority:
		return func(a, b []*beliefbase.Belief) bool {
			return sumPriority(bb, a) > sumPriority(bb, b)
		}
	case TieBreakInsertionOrder:
		order := bb.List()
		return func(a, b []*beliefbase.Belief) bool {
			setA, setB := textSet(a), textSet(b)
			for _, text := range order {
				inA, inB := setA[text], setB[text]
				if inA != inB {
					return inA
				}
			}
			return false
		}
	default: // TieBreakLexicographic
		return func(a, b []*beliefbase.Belief) bool {
			return joinedSorted(a) < joinedSorted(b)
		}
	}
}

func sumPriority(bb *beliefbase.BeliefBase, beliefs []*beliefbase.Belief) int {
	sum := 0
	for _, b := range beliefs {
		sum += bb.Priority(b.Text())
	}
	return sum
}

func textSet(beliefs []*beliefbase.Belief) map[string]bool {
	out := make(map[string]bool, len(beliefs))
	for _, b := range beliefs {
		out[b.Text()] = true
	}
	return out
}

func joinedSorted(beliefs []*beliefbase.Belief) string {
	texts := make([]string, len(beliefs))
	for i, b := range beliefs {
		texts[i] = b.Text()
	}
	sort.Strings(texts)
	return strings.Join(texts, "\x00")
}
