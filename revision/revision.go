// Package revision implements belief revision via the Levi identity
// (spec §4.3.3, Component I): B * φ = (B ÷ ¬φ) + φ.
package revision

import (
	"context"

	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/contraction"
	"github.com/agm-labs/abr/formula"
)

// Reviser computes B * φ by chaining a Contractor (÷) and a plain
// expansion (+).
type Reviser struct {
	Contractor *contraction.Contractor
}

// New returns a Reviser backed by c.
func New(c *contraction.Contractor) *Reviser {
	return &Reviser{Contractor: c}
}

// Revise computes B * φ = (B ÷ ¬φ) + φ. Success, inclusion, and
// consistency (§8) are inherited from the Contractor's postulates
// plus a plain insertion of phi after contraction; extensionality is
// inherited from contraction's CNF-keyed canonicalization.
func (r *Reviser) Revise(ctx context.Context, bb *beliefbase.BeliefBase, phi *formula.Formula, phiText string, selector contraction.Selector) (*beliefbase.BeliefBase, error) {
	negPhi := negate(phi)
	contracted, err := r.Contractor.Contract(ctx, bb, negPhi, negPhi.String(), selector)
	if err != nil {
		return nil, err
	}
	contracted.Add(phiText, phi)
	return contracted, nil
}

// negate computes the formula used for the Levi identity's
// contraction step: phi wrapped in negation, unless phi is already of
// the form ¬ψ, in which case ψ is used directly rather than
// double-wrapping (§4.3.3).
func negate(phi *formula.Formula) *formula.Formula {
	if phi.Kind() == formula.Not {
		return phi.Left()
	}
	return formula.NewNot(phi)
}
