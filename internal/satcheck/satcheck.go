// Package satcheck encodes an already-normalized clause.Set directly as
// a gini CNF circuit, giving the resolution prover a fast independent
// oracle for "definitely inconsistent." It is adapted from the
// teacher's solver.litMapping/dict (which translate Installables and
// Constraints into gini literals through a Constraint indirection); a
// clause set needs none of that indirection, since every literal is
// already in CNF, so this package wires gini directly to clause.Literal
// without a constraint-compilation layer.
package satcheck

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/agm-labs/abr/clause"
)

// Checker runs a one-shot SAT query per call; it holds no state
// between calls (a fresh gini.Gini is built for each clause set, since
// the clause sets a prover checks rarely repeat verbatim).
type Checker struct{}

// New returns a Checker.
func New() *Checker {
	return &Checker{}
}

// Satisfiable reports whether set has a satisfying assignment. Both
// outcomes are sound (gini is a complete SAT solver); callers that
// want resolution to remain the sole source of a negative entailment
// result should consult only the false case (see prover.Prover.Entails).
func (c *Checker) Satisfiable(set *clause.Set) bool {
	clauses := set.Clauses()
	if len(clauses) == 0 {
		return true
	}

	g := gini.New()
	lits := make(map[int32]z.Lit)
	litOf := func(atom int32) z.Lit {
		if m, ok := lits[atom]; ok {
			return m
		}
		m := g.Lit()
		lits[atom] = m
		return m
	}

	for _, cl := range clauses {
		if cl.IsEmpty() {
			return false
		}
		for _, l := range cl.Literals() {
			m := litOf(l.Atom)
			if l.Negated {
				m = m.Not()
			}
			g.Add(m)
		}
		g.Add(0)
	}

	return g.Solve() == 1
}
