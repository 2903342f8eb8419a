// Package cnf implements the CNF normalization pipeline of spec §4.1,
// Component C: biconditional elimination, implication elimination,
// negation normal form, and distribution of ∨ over ∧, each step
// budgeted and memoized.
package cnf

import (
	"time"

	"github.com/agm-labs/abr/abrerr"
	"github.com/agm-labs/abr/clause"
	"github.com/agm-labs/abr/formula"
)

// Result is the outcome of normalizing one formula: its CNF-shaped AST
// and the extracted clause set.
type Result struct {
	Formula *formula.Formula
	Clauses *clause.Set
}

// Normalizer runs the pipeline with a configured budget, memoizing
// results by the input formula's stable hash. One Normalizer (and the
// Interner it owns) is shared by every Belief and query evaluated by a
// single engine instance, so that atom ids — and therefore clause
// canonical keys — stay stable across calls (per the "class-level
// caches -> per-engine memo tables" design note).
type Normalizer struct {
	Timeout  time.Duration
	MaxNodes int
	Interner *clause.Interner

	cache map[uint64]*Result
}

// NewNormalizer returns a Normalizer with the given budget, default
// 5s/1e5 per spec §4.1 if zero values are passed.
func NewNormalizer(timeout time.Duration, maxNodes int) *Normalizer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxNodes <= 0 {
		maxNodes = 100000
	}
	return &Normalizer{
		Timeout:  timeout,
		MaxNodes: maxNodes,
		Interner: clause.NewInterner(),
		cache:    make(map[uint64]*Result),
	}
}

// Normalize runs the four-step pipeline on f and extracts its clause
// set. operation/text are carried only for the returned error's
// context (spec §7). On budget exhaustion it returns an *abrerr.Error
// of kind Overbudget and leaves the cache untouched.
func (n *Normalizer) Normalize(operation, text string, f *formula.Formula) (*Result, error) {
	if f == nil {
		return &Result{Formula: f, Clauses: clause.NewSet()}, nil
	}
	key := f.Hash()
	if cached, ok := n.cache[key]; ok {
		return cached, nil
	}

	b := newBudget(n.Timeout, n.MaxNodes)

	step1, over := eliminateIff(f, b, memo{})
	if over {
		return nil, abrerr.NewOverbudget(operation, text)
	}
	step2, over := eliminateImplies(step1, b, memo{})
	if over {
		return nil, abrerr.NewOverbudget(operation, text)
	}
	step3, over := toNNF(step2, b, memo{})
	if over {
		return nil, abrerr.NewOverbudget(operation, text)
	}
	step4, over := distribute(step3, b, memo{})
	if over {
		return nil, abrerr.NewOverbudget(operation, text)
	}

	clauses := extractClauses(step4, n.Interner)

	result := &Result{Formula: step4, Clauses: clauses}
	n.cache[key] = result
	return result, nil
}

// Clear discards the memoization cache (the CNF cache is process-local
// and can be dropped at any time without affecting correctness, §3).
func (n *Normalizer) Clear() {
	n.cache = make(map[uint64]*Result)
}
