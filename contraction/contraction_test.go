package contraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/cnf"
	"github.com/agm-labs/abr/parser"
	"github.com/agm-labs/abr/prover"
)

func newTestContractor(opts Options) *Contractor {
	n := cnf.NewNormalizer(0, 0)
	p := prover.New(n)
	return New(n, p, opts)
}

func addAll(t *testing.T, bb *beliefbase.BeliefBase, texts ...string) {
	t.Helper()
	for _, text := range texts {
		f, err := parser.Parse("test", text)
		assert.NoError(t, err)
		bb.Add(text, f)
	}
}

func TestContractVacuityWhenNotEntailed(t *testing.T) {
	c := newTestContractor(DefaultOptions())
	bb := beliefbase.New()
	addAll(t, bb, "A", "B")

	phi, err := parser.Parse("test", "C")
	assert.NoError(t, err)

	out, err := c.Contract(context.Background(), bb, phi, "C", "")
	assert.NoError(t, err)
	assert.ElementsMatch(t, bb.List(), out.List())
}

func TestContractSuccessAndInclusion(t *testing.T) {
	c := newTestContractor(DefaultOptions())
	bb := beliefbase.New()
	addAll(t, bb, "A", "¬A ∨ B")

	phi, err := parser.Parse("test", "B")
	assert.NoError(t, err)

	out, err := c.Contract(context.Background(), bb, phi, "B", SelectAll)
	assert.NoError(t, err)

	for _, text := range out.List() {
		assert.True(t, bb.Has(text), "inclusion: contracted base must be a subset of the original")
	}

	result, err := c.Prover.Entails(context.Background(), toClauseSources(out.Beliefs()), phi, "B")
	assert.NoError(t, err)
	assert.NotEqual(t, prover.True, result, "success: contracted base must not entail phi")
}

func TestContractInvalidSelector(t *testing.T) {
	c := newTestContractor(DefaultOptions())
	bb := beliefbase.New()
	addAll(t, bb, "A")

	phi, err := parser.Parse("test", "A")
	assert.NoError(t, err)

	_, err = c.Contract(context.Background(), bb, phi, "A", Selector("bogus"))
	assert.Error(t, err)
}

func TestContractAllSelectorIsFullMeet(t *testing.T) {
	// B = {A, B} both independently entail A ∨ B; contracting A ∨ B
	// under "all" should drop both, since neither {A} nor {B} is a
	// remainder: the only remainder is the empty set.
	c := newTestContractor(Options{Selector: SelectAll, TieBreak: TieBreakLexicographic, RemainderSearchCap: 20})
	bb := beliefbase.New()
	addAll(t, bb, "A", "B")

	phi, err := parser.Parse("test", "A ∨ B")
	assert.NoError(t, err)

	out, err := c.Contract(context.Background(), bb, phi, "A ∨ B", SelectAll)
	assert.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

// TestContractMinSelectorKeepsSmallestRemainder uses a base with two
// overlapping routes to C: a 2-belief route (A, A→C) and a 3-belief
// route sharing A (A, A→B, B→C). Dropping just A defeats both routes
// at once, giving a size-3 remainder; keeping A instead forces two
// separate drops (one per route), giving size-2 remainders. "min"
// must pick one of the size-2 ones over the size-3 one.
func TestContractMinSelectorKeepsSmallestRemainder(t *testing.T) {
	c := newTestContractor(Options{Selector: SelectMin, TieBreak: TieBreakLexicographic, RemainderSearchCap: 20})
	bb := beliefbase.New()
	addAll(t, bb, "A", "A → C", "A → B", "B → C")

	phi, err := parser.Parse("test", "C")
	assert.NoError(t, err)

	out, err := c.Contract(context.Background(), bb, phi, "C", SelectMin)
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.True(t, out.Has("A"))
	assert.True(t, out.Has("A → B"))
	assert.False(t, out.Has("A → C"), "the size-3 remainder dropping only A must lose to the smaller ones")
	assert.False(t, out.Has("B → C"))
}

// TestKeptSetSmallestRemainderPicksMinimumCardinality exercises the
// selector function directly, bypassing remainder generation, so the
// size-direction itself is pinned down independent of the resolution
// engine that produces real remainders.
func TestKeptSetSmallestRemainderPicksMinimumCardinality(t *testing.T) {
	bb := beliefbase.New()
	addAll(t, bb, "A", "B", "C")
	belief := func(text string) *beliefbase.Belief {
		b, ok := bb.Belief(text)
		assert.True(t, ok)
		return b
	}

	small := []*beliefbase.Belief{belief("A")}
	large := []*beliefbase.Belief{belief("A"), belief("B"), belief("C")}

	kept := keptSetSmallestRemainder([][]*beliefbase.Belief{large, small}, func(a, b []*beliefbase.Belief) bool { return false })
	assert.Equal(t, map[string]bool{"A": true}, kept)
}

// TestLinearContractDropsByAscendingPriority assigns priorities
// opposite to insertion order, so a pass would only succeed if
// LinearContract genuinely sorts by priority rather than falling back
// to insertion order by coincidence.
func TestLinearContractDropsByAscendingPriority(t *testing.T) {
	c := newTestContractor(Options{Algorithm: AlgorithmLinear, RemainderSearchCap: 20})
	bb := beliefbase.New()
	addAll(t, bb, "A", "¬A ∨ B", "¬B ∨ C")
	bb.SetPriorities(map[string]int{"A": 1, "¬A ∨ B": 2, "¬B ∨ C": 3})

	phi, err := parser.Parse("test", "C")
	assert.NoError(t, err)

	out, err := c.LinearContract(context.Background(), bb, phi, "C")
	assert.NoError(t, err)

	assert.False(t, out.Has("A"), "lowest-priority belief is dropped first")
	assert.True(t, out.Has("¬A ∨ B"))
	assert.True(t, out.Has("¬B ∨ C"))

	result, err := c.Prover.Entails(context.Background(), toClauseSources(out.Beliefs()), phi, "C")
	assert.NoError(t, err)
	assert.NotEqual(t, prover.True, result, "contraction must stop once phi is no longer entailed")
}

// TestContractDispatchesToLinearAlgorithm confirms Contract itself
// reaches LinearContract when Options.Algorithm elects it, rather than
// LinearContract being reachable only by calling it directly.
func TestContractDispatchesToLinearAlgorithm(t *testing.T) {
	c := newTestContractor(Options{Algorithm: AlgorithmLinear, RemainderSearchCap: 20})
	bb := beliefbase.New()
	addAll(t, bb, "A", "¬A ∨ B", "¬B ∨ C")
	bb.SetPriorities(map[string]int{"A": 1, "¬A ∨ B": 2, "¬B ∨ C": 3})

	phi, err := parser.Parse("test", "C")
	assert.NoError(t, err)

	out, err := c.Contract(context.Background(), bb, phi, "C", "")
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.False(t, out.Has("A"))
}

func TestKernelContractionSurrogateTerminates(t *testing.T) {
	c := newTestContractor(Options{Selector: SelectAll, TieBreak: TieBreakLexicographic, RemainderSearchCap: 1})
	bb := beliefbase.New()
	addAll(t, bb, "A", "¬A ∨ B", "¬B ∨ C")

	phi, err := parser.Parse("test", "C")
	assert.NoError(t, err)

	out, err := c.Contract(context.Background(), bb, phi, "C", SelectAll)
	assert.NoError(t, err)

	result, err := c.Prover.Entails(context.Background(), toClauseSources(out.Beliefs()), phi, "C")
	assert.NoError(t, err)
	assert.NotEqual(t, prover.True, result)
}
