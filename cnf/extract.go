package cnf

import (
	"github.com/agm-labs/abr/clause"
	"github.com/agm-labs/abr/formula"
)

// extractClauses flattens a CNF-shaped AST (an And-spine of Or-spines
// of literals) into a clause.Set, interning atom names via in. The
// distinguished atom False (§6) is recognized directly: a positive
// occurrence never satisfies its clause and is dropped from the
// disjunction (so a clause that was exactly {False} becomes the empty
// clause, i.e. ⊥); a negated occurrence (¬False) is always true, so the
// whole clause it appears in is a tautology and is discarded (§4.2).
func extractClauses(f *formula.Formula, in *clause.Interner) *clause.Set {
	set := clause.NewSet()
	for _, conj := range flattenAnd(f) {
		lits, tautology := literalsOf(conj, in)
		if tautology {
			continue
		}
		c, isTaut := clause.NewClause(lits...)
		if isTaut {
			continue
		}
		set.Add(c)
	}
	return set
}

// flattenAnd walks an And-spine, returning the leaf clause-formulas in
// left-to-right order.
func flattenAnd(f *formula.Formula) []*formula.Formula {
	if f.Kind() == formula.And {
		return append(flattenAnd(f.Left()), flattenAnd(f.Right())...)
	}
	return []*formula.Formula{f}
}

// literalsOf walks an Or-spine, returning its literals. A positive
// occurrence of False never satisfies the clause and is simply dropped
// (so a clause that was exactly {False} collapses to the empty
// clause). tautology is true if a ¬False literal was found anywhere in
// the disjunction, making the whole clause vacuously true.
func literalsOf(f *formula.Formula, in *clause.Interner) (lits []clause.Literal, tautology bool) {
	for _, leaf := range flattenOr(f) {
		switch leaf.Kind() {
		case formula.Atom:
			if leaf.IsFalse() {
				continue
			}
			lits = append(lits, clause.Literal{Atom: in.Intern(leaf.Name())})
		case formula.Not:
			atom := leaf.Left()
			if atom.IsFalse() {
				return nil, true
			}
			lits = append(lits, clause.Literal{Atom: in.Intern(atom.Name()), Negated: true})
		default:
			// Should not occur after normalization; treat as an
			// opaque atom keyed by its rendered text so malformed
			// input still yields a deterministic literal rather than
			// panicking.
			lits = append(lits, clause.Literal{Atom: in.Intern(leaf.String())})
		}
	}
	return lits, false
}

func flattenOr(f *formula.Formula) []*formula.Formula {
	if f.Kind() == formula.Or {
		return append(flattenOr(f.Left()), flattenOr(f.Right())...)
	}
	return []*formula.Formula{f}
}
