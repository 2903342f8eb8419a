package e2e

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agm-labs/abr/agent"
	"github.com/agm-labs/abr/prover"
)

func newEngine() *agent.Agent {
	a, err := agent.New()
	Expect(err).NotTo(HaveOccurred())
	return a
}

var _ = Describe("end-to-end scenarios", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("contracts a single supporting clause", func() {
		a := newEngine()
		Expect(a.Add("A")).To(Succeed())
		Expect(a.Add("¬A ∨ B")).To(Succeed())

		Expect(a.Entails(ctx, "B")).To(Equal(prover.True))

		Expect(a.Contract(ctx, "B", "")).To(Succeed())
		Expect(a.Entails(ctx, "B")).To(Equal(prover.False))
		Expect(len(a.List())).To(BeNumerically("<=", 1))
	})

	It("contracts through a two-step chain", func() {
		a := newEngine()
		Expect(a.Add("A")).To(Succeed())
		Expect(a.Add("¬A ∨ B")).To(Succeed())
		Expect(a.Add("¬B ∨ C")).To(Succeed())

		Expect(a.Entails(ctx, "C")).To(Equal(prover.True))

		before := a.List()
		Expect(a.Contract(ctx, "C", "")).To(Succeed())
		Expect(a.Entails(ctx, "C")).To(Equal(prover.False))

		after := a.List()
		Expect(isSubsetOf(after, before)).To(BeTrue())
	})

	It("revises away a contradicted belief", func() {
		a := newEngine()
		Expect(a.Add("A")).To(Succeed())

		Expect(a.Revise(ctx, "¬A", "")).To(Succeed())

		list := a.List()
		Expect(list).To(ContainElement("¬A"))
		Expect(list).NotTo(ContainElement("A"))
		Expect(a.Consistent(ctx)).To(Equal(prover.True))
	})

	It("derives disjunctive syllogism", func() {
		a := newEngine()
		Expect(a.Add("P ∨ Q")).To(Succeed())
		Expect(a.Add("¬P")).To(Succeed())

		Expect(a.Entails(ctx, "Q")).To(Equal(prover.True))
		Expect(a.Consistent(ctx)).To(Equal(prover.True))
	})

	It("treats the empty base as consistent and uninformative", func() {
		a := newEngine()

		Expect(a.Entails(ctx, "A")).To(Equal(prover.False))
		Expect(a.Consistent(ctx)).To(Equal(prover.True))
	})

	It("contracts double negation the same as the bare atom", func() {
		left := newEngine()
		right := newEngine()
		for _, a := range []*agent.Agent{left, right} {
			Expect(a.Add("A")).To(Succeed())
			Expect(a.Add("¬A ∨ B")).To(Succeed())
		}

		Expect(left.Contract(ctx, "¬¬A", "")).To(Succeed())
		Expect(right.Contract(ctx, "A", "")).To(Succeed())

		Expect(sameElements(left.List(), right.List())).To(BeTrue())
	})
})

func isSubsetOf(a, b []string) bool {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	for _, s := range a {
		if !set[s] {
			return false
		}
	}
	return true
}

func sameElements(a, b []string) bool {
	return isSubsetOf(a, b) && isSubsetOf(b, a) && len(a) == len(b)
}
