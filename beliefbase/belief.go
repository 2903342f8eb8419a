// Package beliefbase implements the belief base of spec §3/§4.3,
// Component F: an insertion-ordered, duplicate-free collection of
// Beliefs, each a textual formula plus its parsed AST and an on-demand,
// invalidate-on-replace clause cache.
package beliefbase

import (
	"github.com/agm-labs/abr/clause"
	"github.com/agm-labs/abr/cnf"
	"github.com/agm-labs/abr/formula"
)

// Belief is a single entry of a BeliefBase: the textual form is its
// identity (§3: "two beliefs with identical text are the same
// belief"), the AST is parsed once on insertion, and the clause set is
// computed lazily and cached. Beliefs are never mutated in place; an
// edit replaces the Belief value wholesale, which naturally discards
// the old clause cache.
type Belief struct {
	text string
	ast  *formula.Formula

	clauses *clause.Set
}

func newBelief(text string, ast *formula.Formula) *Belief {
	return &Belief{text: text, ast: ast}
}

// Text returns the belief's textual formula, its identity within a base.
func (b *Belief) Text() string { return b.text }

// AST returns the belief's parsed formula tree.
func (b *Belief) AST() *formula.Formula { return b.ast }

// Clauses returns the belief's CNF clause set, normalizing and caching
// it on first use. n must be the same Normalizer (and therefore the
// same atom Interner) used for every other belief compared against
// this one, or clause keys will not line up.
func (b *Belief) Clauses(n *cnf.Normalizer) (*clause.Set, error) {
	if b.clauses != nil {
		return b.clauses, nil
	}
	result, err := n.Normalize("add", b.text, b.ast)
	if err != nil {
		return nil, err
	}
	b.clauses = result.Clauses
	return b.clauses, nil
}
