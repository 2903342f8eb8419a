// Package agent is the facade orchestrating every operation of spec §6
// behind the external API: formula.Formula (A), parser (B), cnf (C),
// prover (E), beliefbase (F, whose Add backs expansion G),
// contraction (H), and revision (I). Construction follows the
// teacher's functional-options shape (solver.New); Expand, Contract,
// Revise, and SetPriorities log via logrus, while Add, Remove, and
// Clear do not log.
package agent

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/clause"
	"github.com/agm-labs/abr/cnf"
	"github.com/agm-labs/abr/contraction"
	"github.com/agm-labs/abr/formula"
	"github.com/agm-labs/abr/parser"
	"github.com/agm-labs/abr/prover"
	"github.com/agm-labs/abr/revision"
)

// Agent is the engine instance: one BeliefBase plus the normalizer,
// prover, contractor, and reviser sharing its atom interner and
// budgets.
type Agent struct {
	base *beliefbase.BeliefBase

	normalizer *cnf.Normalizer
	prover     *prover.Prover
	contractor *contraction.Contractor
	reviser    *revision.Reviser

	defaultSelector contraction.Selector
	log             *logrus.Logger
}

// Option configures an Agent.
type Option func(a *Agent) error

// New builds an Agent, applying options then filling unset fields from
// defaults, mirroring solver.New's two-pass construction.
func New(options ...Option) (*Agent, error) {
	a := &Agent{base: beliefbase.New()}
	for _, option := range append(options, defaults...) {
		if err := option(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Config is the subset of spec §6's configuration table that shapes
// engine construction.
type Config struct {
	ProverTimeout        time.Duration
	NormalizerTimeout    time.Duration
	MaxClauses           int
	MaxIterations        int
	RemainderSearchCap   int
	DefaultSelector      contraction.Selector
	TieBreak             contraction.TieBreak
	ContractionAlgorithm contraction.Algorithm
}

// WithConfig wires cfg into the normalizer, prover, and contractor.
func WithConfig(cfg Config) Option {
	return func(a *Agent) error {
		a.normalizer = cnf.NewNormalizer(cfg.NormalizerTimeout, 0)
		a.prover = prover.New(a.normalizer, prover.WithBudget(prover.Budget{
			Timeout:       cfg.ProverTimeout,
			MaxClauses:    cfg.MaxClauses,
			MaxIterations: cfg.MaxIterations,
		}))
		a.contractor = contraction.New(a.normalizer, a.prover, contraction.Options{
			Selector:           cfg.DefaultSelector,
			TieBreak:           cfg.TieBreak,
			RemainderSearchCap: cfg.RemainderSearchCap,
			Algorithm:          cfg.ContractionAlgorithm,
		})
		a.reviser = revision.New(a.contractor)
		a.defaultSelector = cfg.DefaultSelector
		return nil
	}
}

// WithLogger overrides the default logrus.Logger.
func WithLogger(log *logrus.Logger) Option {
	return func(a *Agent) error {
		a.log = log
		return nil
	}
}

var defaults = []Option{
	func(a *Agent) error {
		if a.normalizer == nil {
			a.normalizer = cnf.NewNormalizer(0, 0)
		}
		return nil
	},
	func(a *Agent) error {
		if a.prover == nil {
			a.prover = prover.New(a.normalizer)
		}
		return nil
	},
	func(a *Agent) error {
		if a.contractor == nil {
			a.contractor = contraction.New(a.normalizer, a.prover, contraction.DefaultOptions())
		}
		return nil
	},
	func(a *Agent) error {
		if a.reviser == nil {
			a.reviser = revision.New(a.contractor)
		}
		return nil
	},
	func(a *Agent) error {
		if a.defaultSelector == "" {
			a.defaultSelector = contraction.SelectAll
		}
		return nil
	},
	func(a *Agent) error {
		if a.log == nil {
			a.log = logrus.New()
		}
		return nil
	},
}

func (a *Agent) parse(operation, text string) (*formula.Formula, error) {
	return parser.Parse(operation, text)
}

func toClauseSources(beliefs []*beliefbase.Belief) []prover.ClauseSource {
	out := make([]prover.ClauseSource, len(beliefs))
	for i, b := range beliefs {
		out[i] = b
	}
	return out
}

// Add parses and inserts phi, a no-op if phi's text is already present.
func (a *Agent) Add(text string) error {
	f, err := a.parse("add", text)
	if err != nil {
		return err
	}
	a.base.Add(text, f)
	return nil
}

// Expand is the AGM expansion operation B + φ (§4.3): identical to Add,
// exposed under its own name for symmetry with Contract/Revise, and
// logged as a mutating operation.
func (a *Agent) Expand(text string) error {
	f, err := a.parse("expand", text)
	if err != nil {
		return err
	}
	added := a.base.Add(text, f)
	a.log.WithFields(logrus.Fields{
		"operation": "expand",
		"formula":   text,
		"added":     added,
	}).Info("expanded belief base")
	return nil
}

// Remove deletes text from the base; silent if text is absent.
func (a *Agent) Remove(text string) {
	a.base.Remove(text)
}

// List returns the base's formula texts in insertion order.
func (a *Agent) List() []string {
	return a.base.List()
}

// Clear empties the base.
func (a *Agent) Clear() {
	a.base.Clear()
}

// Len returns the number of beliefs in the base.
func (a *Agent) Len() int {
	return a.base.Len()
}

// String renders the base for display.
func (a *Agent) String() string {
	return a.base.String()
}

// SetPriorities overrides the default priority of the named beliefs.
func (a *Agent) SetPriorities(priorities map[string]int) {
	a.base.SetPriorities(priorities)
	a.log.WithFields(logrus.Fields{
		"operation": "set_priorities",
		"count":     len(priorities),
	}).Info("updated belief priorities")
}

// Entails decides whether the current base entails phi.
func (a *Agent) Entails(ctx context.Context, text string) (prover.Result, error) {
	f, err := a.parse("entails", text)
	if err != nil {
		return prover.Unknown, err
	}
	return a.prover.Entails(ctx, toClauseSources(a.base.Beliefs()), f, text)
}

// Consistent reports whether the current base is consistent.
func (a *Agent) Consistent(ctx context.Context) (prover.Result, error) {
	return a.prover.Consistent(ctx, toClauseSources(a.base.Beliefs()))
}

// Contract computes B ÷ φ and installs the result, leaving the base
// untouched on error. selector may be empty to use the engine's
// configured default.
func (a *Agent) Contract(ctx context.Context, text string, selector contraction.Selector) error {
	f, err := a.parse("contract", text)
	if err != nil {
		return err
	}
	if selector == "" {
		selector = a.defaultSelector
	}
	result, err := a.contractor.Contract(ctx, a.base, f, text, selector)
	if err != nil {
		return err
	}
	a.base = result
	a.log.WithFields(logrus.Fields{
		"operation": "contract",
		"formula":   text,
		"selector":  selector,
		"remaining": a.base.Len(),
	}).Info("contracted belief base")
	return nil
}

// Revise computes B * φ via the Levi identity and installs the
// result, leaving the base untouched on error.
func (a *Agent) Revise(ctx context.Context, text string, selector contraction.Selector) error {
	f, err := a.parse("revise", text)
	if err != nil {
		return err
	}
	if selector == "" {
		selector = a.defaultSelector
	}
	result, err := a.reviser.Revise(ctx, a.base, f, text, selector)
	if err != nil {
		return err
	}
	a.base = result
	a.log.WithFields(logrus.Fields{
		"operation": "revise",
		"formula":   text,
		"selector":  selector,
		"remaining": a.base.Len(),
	}).Info("revised belief base")
	return nil
}

// ClauseCount reports the size of the normalized clause set backing the
// current base, without exposing the clause package's internals. Used
// by the CLI's "clauses" diagnostic command.
func (a *Agent) ClauseCount() (int, error) {
	set := clause.NewSet()
	for _, b := range a.base.Beliefs() {
		c, err := b.Clauses(a.normalizer)
		if err != nil {
			return 0, err
		}
		set.AddAll(c)
	}
	return set.Len(), nil
}
