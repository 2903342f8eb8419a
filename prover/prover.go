// Package prover implements the resolution-based entailment decision
// procedure of spec §4.2, Component E: refutation over clause sets with
// pair deduplication, canonical clause hashing, early exit on the empty
// clause, and time/clause/iteration budgets.
package prover

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/agm-labs/abr/clause"
	"github.com/agm-labs/abr/cnf"
	"github.com/agm-labs/abr/formula"
	"github.com/agm-labs/abr/internal/satcheck"
)

// Result is the tri-valued outcome of entails(B, φ). Unknown is
// returned only on budget exhaustion.
type Result int

const (
	False Result = iota
	True
	Unknown
)

func (r Result) String() string {
	switch r {
	case True:
		return "True"
	case False:
		return "False"
	default:
		return "Unknown"
	}
}

// Budget bounds a single Entails call, per §4.2's required
// optimizations.
type Budget struct {
	Timeout       time.Duration
	MaxClauses    int
	MaxIterations int
}

// DefaultBudget matches spec §6's defaults.
func DefaultBudget() Budget {
	return Budget{Timeout: 10 * time.Second, MaxClauses: 10000, MaxIterations: 100}
}

// ClauseSource is anything that can produce its text and normalized
// clauses on demand. beliefbase.Belief satisfies this without prover
// importing beliefbase, mirroring the teacher's ConstraintProvider
// decoupling (solver/constraint_provider.go).
type ClauseSource interface {
	Text() string
	Clauses(n *cnf.Normalizer) (*clause.Set, error)
}

// Prover decides entailment by resolution refutation, memoized by
// (canonical belief base, canonical query).
type Prover struct {
	Normalizer *cnf.Normalizer
	Budget     Budget

	sat  *satcheck.Checker
	memo map[string]Result
}

// Option configures a Prover.
type Option func(*Prover)

// WithBudget overrides the default resource budget.
func WithBudget(b Budget) Option {
	return func(p *Prover) { p.Budget = b }
}

// New returns a Prover backed by n, which every ClauseSource passed to
// Entails must also have been normalized with.
func New(n *cnf.Normalizer, opts ...Option) *Prover {
	p := &Prover{
		Normalizer: n,
		Budget:     DefaultBudget(),
		sat:        satcheck.New(),
		memo:       make(map[string]Result),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Entails decides whether beliefs ⊨ phi. phiText is used only for
// error context.
func (p *Prover) Entails(ctx context.Context, beliefs []ClauseSource, phi *formula.Formula, phiText string) (Result, error) {
	baseSet := clause.NewSet()
	texts := make([]string, 0, len(beliefs))
	for _, belief := range beliefs {
		clauses, err := belief.Clauses(p.Normalizer)
		if err != nil {
			return Unknown, err
		}
		baseSet.AddAll(clauses)
		texts = append(texts, belief.Text())
	}
	sort.Strings(texts)
	baseKey := strings.Join(texts, "\x00")

	negPhi := formula.NewNot(phi)
	negResult, err := p.Normalizer.Normalize("entails", phiText, negPhi)
	if err != nil {
		return Unknown, err
	}

	memoKey := baseKey + "||" + negResult.Clauses.Key()
	if cached, ok := p.memo[memoKey]; ok {
		return cached, nil
	}

	combined := clause.NewSet()
	combined.AddAll(baseSet)
	combined.AddAll(negResult.Clauses)

	if combined.HasEmptyClause() {
		p.memo[memoKey] = True
		return True, nil
	}

	// Fast path: a definitive UNSAT from gini is sound proof of
	// entailment without running the saturation loop. A SAT answer is
	// equally sound, but is deliberately not trusted here: resolution
	// stays the sole source of a negative (False) entailment result,
	// matching §4.2's contract that the engine is a resolution prover,
	// not a SAT-solver wrapper.
	if !p.sat.Satisfiable(combined) {
		p.memo[memoKey] = True
		return True, nil
	}

	result, err := p.saturate(ctx, combined)
	if err != nil {
		return Unknown, err
	}
	if result != Unknown {
		p.memo[memoKey] = result
	}
	return result, nil
}

// Consistent reports is_consistent(B) = not entails(B, False).
func (p *Prover) Consistent(ctx context.Context, beliefs []ClauseSource) (Result, error) {
	r, err := p.Entails(ctx, beliefs, formula.NewAtom("False"), "False")
	if err != nil {
		return Unknown, err
	}
	switch r {
	case True:
		return False, nil
	case False:
		return True, nil
	default:
		return Unknown, nil
	}
}

// Clear discards the memoization cache.
func (p *Prover) Clear() {
	p.memo = make(map[string]Result)
}

type pairKey struct{ a, b string }

// saturate runs the resolution refutation loop to a fixed point or
// until a budget is exhausted.
func (p *Prover) saturate(ctx context.Context, set *clause.Set) (Result, error) {
	deadline := time.Now().Add(p.Budget.Timeout)
	clauses := set.Clauses()
	tried := make(map[pairKey]struct{})
	present := make(map[string]bool, len(clauses))
	for _, c := range clauses {
		present[c.Key()] = true
	}

	for iter := 0; iter < p.Budget.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return Unknown, nil
		default:
		}
		if time.Now().After(deadline) {
			return Unknown, nil
		}
		if len(clauses) > p.Budget.MaxClauses {
			return Unknown, nil
		}

		var fresh []clause.Clause
		n := len(clauses)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				key := pairKey{clauses[i].Key(), clauses[j].Key()}
				if _, ok := tried[key]; ok {
					continue
				}
				tried[key] = struct{}{}

				for _, r := range resolve(clauses[i], clauses[j]) {
					if r.IsEmpty() {
						return True, nil
					}
					if r.Tautology() {
						continue
					}
					rk := r.Key()
					if !present[rk] {
						present[rk] = true
						fresh = append(fresh, r)
					}
				}
			}
			if len(clauses)+len(fresh) > p.Budget.MaxClauses {
				return Unknown, nil
			}
		}

		if len(fresh) == 0 {
			return False, nil
		}
		clauses = append(clauses, fresh...)
	}
	return Unknown, nil
}

// resolve computes every non-trivial resolvent of ci and cj: for each
// literal of ci whose complement appears in cj, the clause formed by
// their union minus that complementary pair.
func resolve(ci, cj clause.Clause) []clause.Clause {
	var out []clause.Clause
	for _, li := range ci.Literals() {
		neg := li.Negate()
		if _, ok := cj[neg]; !ok {
			continue
		}
		merged := ci.Union(cj)
		delete(merged, li)
		delete(merged, neg)
		out = append(out, merged)
	}
	return out
}
