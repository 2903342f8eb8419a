package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agm-labs/abr/agent"
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Run the built-in batch scenarios (spec's end-to-end examples)",
		RunE:  runScenarios,
	}
}

type namedScenario struct {
	name string
	run  func(ctx context.Context) (string, error)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	for _, sc := range scenarios() {
		result, err := sc.run(ctx)
		if err != nil {
			fmt.Printf("%s: error: %v\n", sc.name, err)
			continue
		}
		fmt.Printf("%s: %s\n", sc.name, result)
	}
	return nil
}

func scenarios() []namedScenario {
	return []namedScenario{
		{"contract-single-clause", scenarioContractSingleClause},
		{"contract-chain", scenarioContractChain},
		{"revise-negation", scenarioReviseNegation},
		{"disjunctive-syllogism", scenarioDisjunctiveSyllogism},
		{"empty-base", scenarioEmptyBase},
		{"double-negation-extensionality", scenarioDoubleNegation},
	}
}

// B = {A, ¬A ∨ B}. entails(B) = True. After contract(B), entails(B) = False.
func scenarioContractSingleClause(ctx context.Context) (string, error) {
	a, err := agent.New()
	if err != nil {
		return "", err
	}
	for _, f := range []string{"A", "¬A ∨ B"} {
		if err := a.Add(f); err != nil {
			return "", err
		}
	}
	before, err := a.Entails(ctx, "B")
	if err != nil {
		return "", err
	}
	if err := a.Contract(ctx, "B", ""); err != nil {
		return "", err
	}
	after, err := a.Entails(ctx, "B")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("entails(B) before=%s after=%s remaining=%v", before, after, a.List()), nil
}

// B = {A, ¬A ∨ B, ¬B ∨ C}. entails(C) = True. After contract(C), entails(C) = False.
func scenarioContractChain(ctx context.Context) (string, error) {
	a, err := agent.New()
	if err != nil {
		return "", err
	}
	for _, f := range []string{"A", "¬A ∨ B", "¬B ∨ C"} {
		if err := a.Add(f); err != nil {
			return "", err
		}
	}
	before, err := a.Entails(ctx, "C")
	if err != nil {
		return "", err
	}
	if err := a.Contract(ctx, "C", ""); err != nil {
		return "", err
	}
	after, err := a.Entails(ctx, "C")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("entails(C) before=%s after=%s remaining=%v", before, after, a.List()), nil
}

// B = {A}, revise(¬A) => final base contains ¬A, not A, and is consistent.
func scenarioReviseNegation(ctx context.Context) (string, error) {
	a, err := agent.New()
	if err != nil {
		return "", err
	}
	if err := a.Add("A"); err != nil {
		return "", err
	}
	if err := a.Revise(ctx, "¬A", ""); err != nil {
		return "", err
	}
	consistent, err := a.Consistent(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("remaining=%v consistent=%s", a.List(), consistent), nil
}

// B = {P ∨ Q, ¬P}. entails(Q) = True. consistent() = True.
func scenarioDisjunctiveSyllogism(ctx context.Context) (string, error) {
	a, err := agent.New()
	if err != nil {
		return "", err
	}
	for _, f := range []string{"P ∨ Q", "¬P"} {
		if err := a.Add(f); err != nil {
			return "", err
		}
	}
	entailsQ, err := a.Entails(ctx, "Q")
	if err != nil {
		return "", err
	}
	consistent, err := a.Consistent(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("entails(Q)=%s consistent=%s", entailsQ, consistent), nil
}

// B = ∅. entails(A) = False; consistent() = True.
func scenarioEmptyBase(ctx context.Context) (string, error) {
	a, err := agent.New()
	if err != nil {
		return "", err
	}
	entailsA, err := a.Entails(ctx, "A")
	if err != nil {
		return "", err
	}
	consistent, err := a.Consistent(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("entails(A)=%s consistent=%s", entailsA, consistent), nil
}

// contract(¬¬A) equals contract(A), since ¬¬A normalizes to A (NNF extensionality).
func scenarioDoubleNegation(ctx context.Context) (string, error) {
	left, err := agent.New()
	if err != nil {
		return "", err
	}
	right, err := agent.New()
	if err != nil {
		return "", err
	}
	for _, a := range []*agent.Agent{left, right} {
		for _, f := range []string{"A", "¬A ∨ B"} {
			if err := a.Add(f); err != nil {
				return "", err
			}
		}
	}
	if err := left.Contract(ctx, "¬¬A", ""); err != nil {
		return "", err
	}
	if err := right.Contract(ctx, "A", ""); err != nil {
		return "", err
	}
	return fmt.Sprintf("contract(¬¬A)=%v contract(A)=%v equal=%t", left.List(), right.List(), sameSet(left.List(), right.List())), nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			return false
		}
	}
	return true
}
