package cnf

import "github.com/agm-labs/abr/formula"

// Each step below is a pure function of its input formula, memoized by
// formula identity (pointer) within a single Normalize call, per
// spec §4.1. overbudget is reported once and short-circuits the walk.

type memo map[*formula.Formula]*formula.Formula

// eliminateIff rewrites A ↔ B as (¬A ∨ B) ∧ (¬B ∨ A).
func eliminateIff(f *formula.Formula, b *budget, m memo) (*formula.Formula, bool) {
	if cached, ok := m[f]; ok {
		return cached, false
	}
	if b.tick() {
		return nil, true
	}

	var out *formula.Formula
	switch f.Kind() {
	case formula.Atom:
		out = f
	case formula.Not:
		child, over := eliminateIff(f.Left(), b, m)
		if over {
			return nil, true
		}
		out = formula.NewNot(child)
	case formula.Iff:
		left, over := eliminateIff(f.Left(), b, m)
		if over {
			return nil, true
		}
		right, over := eliminateIff(f.Right(), b, m)
		if over {
			return nil, true
		}
		out = formula.NewAnd(
			formula.NewOr(formula.NewNot(left), right),
			formula.NewOr(formula.NewNot(right), left),
		)
	default:
		left, over := eliminateIff(f.Left(), b, m)
		if over {
			return nil, true
		}
		right, over := eliminateIff(f.Right(), b, m)
		if over {
			return nil, true
		}
		out = rebuild(f.Kind(), left, right)
	}
	m[f] = out
	return out, false
}

// eliminateImplies rewrites A → B as ¬A ∨ B.
func eliminateImplies(f *formula.Formula, b *budget, m memo) (*formula.Formula, bool) {
	if cached, ok := m[f]; ok {
		return cached, false
	}
	if b.tick() {
		return nil, true
	}

	var out *formula.Formula
	switch f.Kind() {
	case formula.Atom:
		out = f
	case formula.Not:
		child, over := eliminateImplies(f.Left(), b, m)
		if over {
			return nil, true
		}
		out = formula.NewNot(child)
	case formula.Implies:
		left, over := eliminateImplies(f.Left(), b, m)
		if over {
			return nil, true
		}
		right, over := eliminateImplies(f.Right(), b, m)
		if over {
			return nil, true
		}
		out = formula.NewOr(formula.NewNot(left), right)
	default:
		left, over := eliminateImplies(f.Left(), b, m)
		if over {
			return nil, true
		}
		right, over := eliminateImplies(f.Right(), b, m)
		if over {
			return nil, true
		}
		out = rebuild(f.Kind(), left, right)
	}
	m[f] = out
	return out, false
}

// toNNF pushes ¬ down to the atoms via De Morgan, collapsing ¬¬A to A.
// The input must already be free of Implies/Iff.
func toNNF(f *formula.Formula, b *budget, m memo) (*formula.Formula, bool) {
	if cached, ok := m[f]; ok {
		return cached, false
	}
	if b.tick() {
		return nil, true
	}

	var out *formula.Formula
	switch f.Kind() {
	case formula.Atom:
		out = f
	case formula.Not:
		child := f.Left()
		switch child.Kind() {
		case formula.Atom:
			out = f
		case formula.Not:
			// ¬¬A -> A
			nested, over := toNNF(child.Left(), b, m)
			if over {
				return nil, true
			}
			out = nested
		case formula.And:
			negLeft, over := toNNF(formula.NewNot(child.Left()), b, m)
			if over {
				return nil, true
			}
			negRight, over := toNNF(formula.NewNot(child.Right()), b, m)
			if over {
				return nil, true
			}
			out = formula.NewOr(negLeft, negRight)
		case formula.Or:
			negLeft, over := toNNF(formula.NewNot(child.Left()), b, m)
			if over {
				return nil, true
			}
			negRight, over := toNNF(formula.NewNot(child.Right()), b, m)
			if over {
				return nil, true
			}
			out = formula.NewAnd(negLeft, negRight)
		default:
			// Implies/Iff should not reach here; treat defensively
			// as an opaque literal-bearing negation.
			child2, over := toNNF(child, b, m)
			if over {
				return nil, true
			}
			out = formula.NewNot(child2)
		}
	case formula.And, formula.Or:
		left, over := toNNF(f.Left(), b, m)
		if over {
			return nil, true
		}
		right, over := toNNF(f.Right(), b, m)
		if over {
			return nil, true
		}
		out = rebuild(f.Kind(), left, right)
	default:
		// Implies/Iff should not reach here; fall back to atoms only.
		out = f
	}
	m[f] = out
	return out, false
}

// distribute rewrites (X ∧ Y) ∨ Z as (X ∨ Z) ∧ (Y ∨ Z), and
// symmetrically Z ∨ (X ∧ Y), recursively, until the result is in CNF.
func distribute(f *formula.Formula, b *budget, m memo) (*formula.Formula, bool) {
	if cached, ok := m[f]; ok {
		return cached, false
	}
	if b.tick() {
		return nil, true
	}

	var out *formula.Formula
	switch f.Kind() {
	case formula.Atom, formula.Not:
		out = f
	case formula.And:
		left, over := distribute(f.Left(), b, m)
		if over {
			return nil, true
		}
		right, over := distribute(f.Right(), b, m)
		if over {
			return nil, true
		}
		out = formula.NewAnd(left, right)
	case formula.Or:
		left, over := distribute(f.Left(), b, m)
		if over {
			return nil, true
		}
		right, over := distribute(f.Right(), b, m)
		if over {
			return nil, true
		}
		out, over = distributeOr(left, right, b, m)
		if over {
			return nil, true
		}
	default:
		out = f
	}
	m[f] = out
	return out, false
}

// distributeOr combines two already-distributed operands under ∨,
// pushing ∧ outward whenever either side is a conjunction.
func distributeOr(left, right *formula.Formula, b *budget, m memo) (*formula.Formula, bool) {
	if b.tick() {
		return nil, true
	}
	if left.Kind() == formula.And {
		a, over := distributeOr(left.Left(), right, b, m)
		if over {
			return nil, true
		}
		c, over := distributeOr(left.Right(), right, b, m)
		if over {
			return nil, true
		}
		return formula.NewAnd(a, c), false
	}
	if right.Kind() == formula.And {
		a, over := distributeOr(left, right.Left(), b, m)
		if over {
			return nil, true
		}
		c, over := distributeOr(left, right.Right(), b, m)
		if over {
			return nil, true
		}
		return formula.NewAnd(a, c), false
	}
	return formula.NewOr(left, right), false
}

func rebuild(k formula.Kind, left, right *formula.Formula) *formula.Formula {
	switch k {
	case formula.And:
		return formula.NewAnd(left, right)
	case formula.Or:
		return formula.NewOr(left, right)
	case formula.Implies:
		return formula.NewImplies(left, right)
	case formula.Iff:
		return formula.NewIff(left, right)
	default:
		return left
	}
}
