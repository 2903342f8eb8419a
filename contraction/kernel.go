package contraction

import (
	"context"

	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/formula"
)

// kernelContract is the kernel-contraction surrogate for bases beyond
// Options.RemainderSearchCap (§4.3.1): repeatedly shrinks the entailing
// base down to one minimal entailing subset (a phi-kernel) by deletion,
// drops that kernel's lowest-priority belief, and repeats until the
// base no longer entails phi. Each kernel is found in O(n) entailment
// checks rather than by enumerating subsets, so the whole surrogate
// runs in polynomial time and always terminates with success.
func (c *Contractor) kernelContract(ctx context.Context, bb *beliefbase.BeliefBase, phi *formula.Formula, phiText string) (*beliefbase.BeliefBase, error) {
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

		kernel, err := c.shrinkToKernel(ctx, beliefs, phi, phiText)
		if err != nil {
			return nil, err
		}

		lowest := kernel[0]
		lowestPriority := out.Priority(lowest.Text())
		for _, b := range kernel[1:] {
			p := out.Priority(b.Text())
			if p < lowestPriority || (p == lowestPriority && out.InsertionIndex(b.Text()) > out.InsertionIndex(lowest.Text())) {
				lowest, lowestPriority = b, p
			}
		}
		out.Remove(lowest.Text())
	}
}

// shrinkToKernel deletion-minimizes beliefs, known to entail phi, down
// to a minimal subset that still entails phi.
func (c *Contractor) shrinkToKernel(ctx context.Context, beliefs []*beliefbase.Belief, phi *formula.Formula, phiText string) ([]*beliefbase.Belief, error) {
	kernel := append([]*beliefbase.Belief(nil), beliefs...)
	for i := 0; i < len(kernel); {
		trial := make([]*beliefbase.Belief, 0, len(kernel)-1)
		trial = append(trial, kernel[:i]...)
		trial = append(trial, kernel[i+1:]...)

		entails, err := c.entailsConservative(ctx, trial, phi, phiText)
		if err != nil {
			return nil, err
		}
		if entails {
			kernel = trial
			continue
		}
		i++
	}
	return kernel, nil
}
