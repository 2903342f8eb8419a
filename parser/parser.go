// Package parser turns formula surface syntax (spec §4.1, §6) into a
// formula.Formula via tokenization followed by a shunting-yard parse.
package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/agm-labs/abr/abrerr"
	"github.com/agm-labs/abr/formula"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNot
	tokAnd
	tokOr
	tokImplies
	tokIff
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenize scans s into tokens, skipping whitespace. Any byte that is
// not whitespace, a recognized symbol, a parenthesis, or part of an
// identifier is a lexical error.
func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '¬':
			toks = append(toks, token{tokNot, "¬", i})
			i += size
		case r == '∧':
			toks = append(toks, token{tokAnd, "∧", i})
			i += size
		case r == '∨':
			toks = append(toks, token{tokOr, "∨", i})
			i += size
		case r == '→':
			toks = append(toks, token{tokImplies, "→", i})
			i += size
		case r == '↔':
			toks = append(toks, token{tokIff, "↔", i})
			i += size
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i += size
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i += size
		case isIdentStart(r):
			start := i
			i += size
			for i < len(s) {
				r2, size2 := utf8.DecodeRuneInString(s[i:])
				if !isIdentPart(r2) {
					break
				}
				i += size2
			}
			toks = append(toks, token{tokIdent, s[start:i], start})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", r, i)
		}
	}
	return toks, nil
}

func isIdentStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// precedence and associativity of each binary/unary operator, per
// spec §4.1: ¬ (3, right, unary); ∧/∨ (2, left); →/↔ (1, right).
func precedence(k tokenKind) int {
	switch k {
	case tokNot:
		return 3
	case tokAnd, tokOr:
		return 2
	case tokImplies, tokIff:
		return 1
	default:
		return 0
	}
}

func rightAssoc(k tokenKind) bool {
	return k == tokNot || k == tokImplies || k == tokIff
}

func isBinaryOp(k tokenKind) bool {
	return k == tokAnd || k == tokOr || k == tokImplies || k == tokIff
}

// Parse converts formula text into an AST. Mismatched parentheses,
// missing operands, empty input, or a lexical error are reported as
// *abrerr.Error of kind ParseError. operation names the caller-visible
// operation (e.g. "add", "entails") for error context.
func Parse(operation, text string) (*formula.Formula, error) {
	if fast, ok := fastPath(text); ok {
		return fast, nil
	}

	toks, err := tokenize(text)
	if err != nil {
		return nil, abrerr.NewParseError(operation, text, err.Error())
	}
	if len(toks) == 0 {
		return nil, abrerr.NewParseError(operation, text, "empty formula")
	}

	p := &shuntingYard{operation: operation, text: text}
	f, err := p.run(toks)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// fastPath recognizes a bare identifier or a singly-negated identifier
// without allocating a tokenizer/parser, per spec §4.1's "purely atomic
// or singly-negated strings take fast paths."
func fastPath(text string) (*formula.Formula, bool) {
	trimmed := trimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	if name, ok := asPlainIdentifier(trimmed); ok {
		return formula.NewAtom(name), true
	}
	r, size := utf8.DecodeRuneInString(trimmed)
	if r == '¬' {
		rest := trimSpace(trimmed[size:])
		if name, ok := asPlainIdentifier(rest); ok {
			return formula.NewNot(formula.NewAtom(name)), true
		}
	}
	return nil, false
}

func asPlainIdentifier(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return "", false
			}
			continue
		}
		if !isIdentPart(r) {
			return "", false
		}
	}
	return s, true
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) {
		r, size := utf8.DecodeRuneInString(s[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	end := len(s)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return s[start:end]
}

// shuntingYard implements the classic two-stack operator-precedence
// parse: an output stack of Formula values, and an operator stack of
// token kinds (plus parentheses as markers).
type shuntingYard struct {
	operation string
	text      string

	output []*formula.Formula
	ops    []token
}

func (p *shuntingYard) run(toks []token) (*formula.Formula, error) {
	prevWasOperand := false
	for _, t := range toks {
		switch t.kind {
		case tokIdent:
			p.output = append(p.output, formula.NewAtom(t.text))
			prevWasOperand = true
		case tokLParen:
			p.ops = append(p.ops, t)
			prevWasOperand = false
		case tokRParen:
			if err := p.closeParen(); err != nil {
				return nil, err
			}
			prevWasOperand = true
		case tokNot:
			// Unary, right-associative: higher precedence operators
			// on the stack never get popped ahead of a fresh ¬.
			p.ops = append(p.ops, t)
			prevWasOperand = false
		default:
			if !prevWasOperand {
				return nil, abrerr.NewParseError(p.operation, p.text, fmt.Sprintf("operator %q missing left operand", t.text))
			}
			if err := p.pushBinary(t); err != nil {
				return nil, err
			}
			prevWasOperand = false
		}
	}

	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		if top.kind == tokLParen {
			return nil, abrerr.NewParseError(p.operation, p.text, "mismatched parenthesis")
		}
		if err := p.applyTop(); err != nil {
			return nil, err
		}
	}

	if len(p.output) != 1 {
		return nil, abrerr.NewParseError(p.operation, p.text, "incomplete expression")
	}
	return p.output[0], nil
}

func (p *shuntingYard) pushBinary(t token) error {
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		if top.kind == tokLParen {
			break
		}
		topPrec := precedence(top.kind)
		curPrec := precedence(t.kind)
		if topPrec > curPrec || (topPrec == curPrec && !rightAssoc(t.kind)) {
			if err := p.applyTop(); err != nil {
				return err
			}
			continue
		}
		break
	}
	p.ops = append(p.ops, t)
	return nil
}

func (p *shuntingYard) closeParen() error {
	for {
		if len(p.ops) == 0 {
			return abrerr.NewParseError(p.operation, p.text, "mismatched parenthesis")
		}
		top := p.ops[len(p.ops)-1]
		if top.kind == tokLParen {
			p.ops = p.ops[:len(p.ops)-1]
			return nil
		}
		if err := p.applyTop(); err != nil {
			return err
		}
	}
}

func (p *shuntingYard) applyTop() error {
	t := p.ops[len(p.ops)-1]
	p.ops = p.ops[:len(p.ops)-1]

	if t.kind == tokNot {
		if len(p.output) < 1 {
			return abrerr.NewParseError(p.operation, p.text, "¬ missing operand")
		}
		child := p.output[len(p.output)-1]
		p.output = p.output[:len(p.output)-1]
		p.output = append(p.output, formula.NewNot(child))
		return nil
	}

	if !isBinaryOp(t.kind) {
		return abrerr.NewParseError(p.operation, p.text, "unexpected operator")
	}
	if len(p.output) < 2 {
		return abrerr.NewParseError(p.operation, p.text, fmt.Sprintf("operator %q missing operand", t.text))
	}
	right := p.output[len(p.output)-1]
	left := p.output[len(p.output)-2]
	p.output = p.output[:len(p.output)-2]

	var combined *formula.Formula
	switch t.kind {
	case tokAnd:
		combined = formula.NewAnd(left, right)
	case tokOr:
		combined = formula.NewOr(left, right)
	case tokImplies:
		combined = formula.NewImplies(left, right)
	case tokIff:
		combined = formula.NewIff(left, right)
	}
	p.output = append(p.output, combined)
	return nil
}
