// Package formula defines the propositional formula AST (spec §3, Component A).
// Formula values are immutable trees with structural equality and a stable
// hash; two formulas compare equal iff they are structurally identical.
package formula

import (
	"fmt"
	"strings"

	"github.com/mitchellh/hashstructure"
)

// Kind tags the shape of a Formula node.
type Kind int

const (
	Atom Kind = iota
	Not
	And
	Or
	Implies
	Iff
)

func (k Kind) String() string {
	switch k {
	case Atom:
		return "atom"
	case Not:
		return "not"
	case And:
		return "and"
	case Or:
		return "or"
	case Implies:
		return "implies"
	case Iff:
		return "iff"
	default:
		return "unknown"
	}
}

// Formula is a tagged tree node. Atoms never have children; Not has
// exactly the Left child; And/Or/Implies/Iff have both Left and Right.
// Values are never mutated after construction.
type Formula struct {
	kind        Kind
	name        string
	left, right *Formula

	hash uint64
}

// NewAtom returns a leaf node naming an atomic proposition.
func NewAtom(name string) *Formula {
	return &Formula{kind: Atom, name: name}
}

// NewNot returns the negation of child.
func NewNot(child *Formula) *Formula {
	return &Formula{kind: Not, left: child}
}

// NewAnd returns the conjunction of left and right.
func NewAnd(left, right *Formula) *Formula {
	return &Formula{kind: And, left: left, right: right}
}

// NewOr returns the disjunction of left and right.
func NewOr(left, right *Formula) *Formula {
	return &Formula{kind: Or, left: left, right: right}
}

// NewImplies returns left → right.
func NewImplies(left, right *Formula) *Formula {
	return &Formula{kind: Implies, left: left, right: right}
}

// NewIff returns left ↔ right.
func NewIff(left, right *Formula) *Formula {
	return &Formula{kind: Iff, left: left, right: right}
}

func (f *Formula) Kind() Kind   { return f.kind }
func (f *Formula) Name() string { return f.name }
func (f *Formula) Left() *Formula  { return f.left }
func (f *Formula) Right() *Formula { return f.right }

// IsFalse reports whether f is the distinguished atom False (§6: the
// identifier False denotes ⊥).
func (f *Formula) IsFalse() bool {
	return f.kind == Atom && f.name == "False"
}

// Equal reports structural equality between f and other.
func (f *Formula) Equal(other *Formula) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	if f.kind != other.kind {
		return false
	}
	switch f.kind {
	case Atom:
		return f.name == other.name
	case Not:
		return f.left.Equal(other.left)
	default:
		return f.left.Equal(other.left) && f.right.Equal(other.right)
	}
}

type hashNode struct {
	Kind  Kind
	Name  string
	Left  uint64
	Right uint64
}

// Hash returns a stable structural hash: two structurally identical
// formulas always hash equal (collisions aside). It is computed once
// and memoized on the node.
func (f *Formula) Hash() uint64 {
	if f == nil {
		return 0
	}
	if f.hash != 0 {
		return f.hash
	}
	var node hashNode
	switch f.kind {
	case Atom:
		node = hashNode{Kind: f.kind, Name: f.name}
	case Not:
		node = hashNode{Kind: f.kind, Left: f.left.Hash()}
	default:
		node = hashNode{Kind: f.kind, Left: f.left.Hash(), Right: f.right.Hash()}
	}
	h, err := hashstructure.Hash(node, nil)
	if err != nil {
		// hashstructure only fails on unsupported types; hashNode's
		// fields are all primitives, so this is unreachable.
		panic(fmt.Sprintf("formula: hashing failed: %v", err))
	}
	f.hash = h
	return f.hash
}

// String renders f using the engine's surface syntax (§6), with
// parentheses only where precedence requires them.
func (f *Formula) String() string {
	var b strings.Builder
	f.write(&b, 0)
	return b.String()
}

// precedence mirrors §4.1's table: ¬ highest, then ∧/∨, then →/↔.
func precedence(k Kind) int {
	switch k {
	case Not:
		return 3
	case And, Or:
		return 2
	case Implies, Iff:
		return 1
	default:
		return 4
	}
}

func (f *Formula) write(b *strings.Builder, parent int) {
	switch f.kind {
	case Atom:
		b.WriteString(f.name)
	case Not:
		b.WriteString("¬")
		f.left.write(b, precedence(Not))
	default:
		own := precedence(f.kind)
		needParens := own < parent
		if needParens {
			b.WriteString("(")
		}
		f.left.write(b, own)
		b.WriteString(" ")
		b.WriteString(symbolOf(f.kind))
		b.WriteString(" ")
		f.right.write(b, own+1)
		if needParens {
			b.WriteString(")")
		}
	}
}

func symbolOf(k Kind) string {
	switch k {
	case And:
		return "∧"
	case Or:
		return "∨"
	case Implies:
		return "→"
	case Iff:
		return "↔"
	default:
		return "?"
	}
}
