package e2e

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agm-labs/abr/agent"
	"github.com/agm-labs/abr/prover"
)

var _ = Describe("AGM postulates for contraction", func() {
	var (
		ctx context.Context
		a   *agent.Agent
	)

	BeforeEach(func() {
		ctx = context.Background()
		a = newEngine()
		Expect(a.Add("A")).To(Succeed())
		Expect(a.Add("¬A ∨ B")).To(Succeed())
		Expect(a.Add("¬B ∨ C")).To(Succeed())
	})

	It("satisfies success", func() {
		Expect(a.Contract(ctx, "C", "")).To(Succeed())
		Expect(a.Entails(ctx, "C")).To(Equal(prover.False))
	})

	It("satisfies inclusion", func() {
		before := a.List()
		Expect(a.Contract(ctx, "C", "")).To(Succeed())
		Expect(isSubsetOf(a.List(), before)).To(BeTrue())
	})

	It("satisfies vacuity when the base does not entail the target", func() {
		before := a.List()
		Expect(a.Contract(ctx, "¬C", "")).To(Succeed())
		Expect(sameElements(a.List(), before)).To(BeTrue())
	})

	It("satisfies consistency", func() {
		Expect(a.Contract(ctx, "C", "")).To(Succeed())
		Expect(a.Consistent(ctx)).To(Equal(prover.True))
	})

	It("satisfies extensionality over CNF-equivalent formulas", func() {
		other := newEngine()
		Expect(other.Add("A")).To(Succeed())
		Expect(other.Add("¬A ∨ B")).To(Succeed())
		Expect(other.Add("¬B ∨ C")).To(Succeed())

		Expect(a.Contract(ctx, "¬¬C", "")).To(Succeed())
		Expect(other.Contract(ctx, "C", "")).To(Succeed())
		Expect(sameElements(a.List(), other.List())).To(BeTrue())
	})
})

var _ = Describe("AGM postulates for revision", func() {
	var (
		ctx context.Context
		a   *agent.Agent
	)

	BeforeEach(func() {
		ctx = context.Background()
		a = newEngine()
		Expect(a.Add("A")).To(Succeed())
		Expect(a.Add("¬A ∨ B")).To(Succeed())
	})

	It("satisfies success", func() {
		Expect(a.Revise(ctx, "¬A", "")).To(Succeed())
		Expect(a.Entails(ctx, "¬A")).To(Equal(prover.True))
	})

	It("satisfies consistency when the input is satisfiable", func() {
		Expect(a.Revise(ctx, "¬A", "")).To(Succeed())
		Expect(a.Consistent(ctx)).To(Equal(prover.True))
	})

	It("satisfies vacuity when the input does not conflict", func() {
		Expect(a.Revise(ctx, "B", "")).To(Succeed())
		list := a.List()
		Expect(list).To(ContainElement("A"))
		Expect(list).To(ContainElement("¬A ∨ B"))
		Expect(list).To(ContainElement("B"))
	})
})

var _ = Describe("universal invariants", func() {
	It("list() preserves insertion order and rejects duplicates", func() {
		a := newEngine()
		Expect(a.Add("A")).To(Succeed())
		Expect(a.Add("B")).To(Succeed())
		Expect(a.Add("A")).To(Succeed())

		Expect(a.List()).To(Equal([]string{"A", "B"}))
	})

	It("is monotone under expansion", func() {
		ctx := context.Background()
		a := newEngine()
		Expect(a.Add("A ∨ B")).To(Succeed())
		Expect(a.Add("¬A")).To(Succeed())

		Expect(a.Entails(ctx, "B")).To(Equal(prover.True))

		Expect(a.Add("C")).To(Succeed())
		Expect(a.Entails(ctx, "B")).To(Equal(prover.True))
	})
})
