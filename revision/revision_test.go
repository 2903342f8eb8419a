package revision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/cnf"
	"github.com/agm-labs/abr/contraction"
	"github.com/agm-labs/abr/formula"
	"github.com/agm-labs/abr/parser"
	"github.com/agm-labs/abr/prover"
)

func newTestReviser() *Reviser {
	n := cnf.NewNormalizer(0, 0)
	p := prover.New(n)
	c := contraction.New(n, p, contraction.DefaultOptions())
	return New(c)
}

func addAll(t *testing.T, bb *beliefbase.BeliefBase, texts ...string) {
	t.Helper()
	for _, text := range texts {
		f, err := parser.Parse("test", text)
		assert.NoError(t, err)
		bb.Add(text, f)
	}
}

// TestReviseInsertsPhiAndEntailsIt traces the Levi identity on a
// base that already contradicts phi: B = {A}, phi = ¬A. Contracting
// ¬¬A (= A, per negate's double-negation collapse) from {A} must drop
// A, then phi is inserted, leaving {¬A}, which entails phi.
func TestReviseInsertsPhiAndEntailsIt(t *testing.T) {
	r := newTestReviser()
	bb := beliefbase.New()
	addAll(t, bb, "A")

	phi, err := parser.Parse("test", "¬A")
	assert.NoError(t, err)

	out, err := r.Revise(context.Background(), bb, phi, "¬A", contraction.SelectAll)
	assert.NoError(t, err)

	assert.True(t, out.Has("¬A"))
	assert.False(t, out.Has("A"))

	p := r.Contractor.Prover
	result, err := p.Entails(context.Background(), clauseSources(out), phi, "¬A")
	assert.NoError(t, err)
	assert.Equal(t, prover.True, result)
}

// TestReviseOnUnrelatedBaseIsPlainExpansion: when B doesn't bear on
// ¬phi at all, contraction is vacuous and Revise degenerates to B + phi.
func TestReviseOnUnrelatedBaseIsPlainExpansion(t *testing.T) {
	r := newTestReviser()
	bb := beliefbase.New()
	addAll(t, bb, "A")

	phi, err := parser.Parse("test", "B")
	assert.NoError(t, err)

	out, err := r.Revise(context.Background(), bb, phi, "B", contraction.SelectAll)
	assert.NoError(t, err)

	assert.True(t, out.Has("A"))
	assert.True(t, out.Has("B"))
	assert.Equal(t, 2, out.Len())
}

// TestNegateAvoidsDoubleWrapping checks negate's special case: negating
// an already-negated formula unwraps it instead of producing ¬¬ψ.
func TestNegateAvoidsDoubleWrapping(t *testing.T) {
	notA := formula.NewNot(formula.NewAtom("A"))
	got := negate(notA)

	assert.Equal(t, formula.Atom, got.Kind())
	assert.Equal(t, "A", got.Name())
}

func TestNegateWrapsPlainFormula(t *testing.T) {
	a := formula.NewAtom("A")
	got := negate(a)

	assert.Equal(t, formula.Not, got.Kind())
	assert.True(t, got.Left().Equal(a))
}

func clauseSources(bb *beliefbase.BeliefBase) []prover.ClauseSource {
	beliefs := bb.Beliefs()
	out := make([]prover.ClauseSource, len(beliefs))
	for i, b := range beliefs {
		out[i] = b
	}
	return out
}
