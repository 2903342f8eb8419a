package mastermind

import (
	"strings"

	"github.com/agm-labs/abr/beliefbase"
	"github.com/agm-labs/abr/formula"
)

// Agent maintains the candidate set as a BeliefBase of surviving
// codes, one per possible combination of Colors^CodeLength, encoded as
// a concatenated-letter atom identifier (e.g. ["R","G","B"] -> "RGB")
// so the candidate set can live in the same container type the logic
// core uses, even though Agent never normalizes or proves anything
// about these atoms.
type Agent struct {
	Colors     []string
	CodeLength int

	base        *beliefbase.BeliefBase
	codesByText map[string][]string
}

// NewAgent seeds the candidate set with every possible code, mirroring
// MastermindBeliefBase's constructor.
func NewAgent(colors []string, codeLength int) *Agent {
	a := &Agent{
		Colors:      colors,
		CodeLength:  codeLength,
		base:        beliefbase.New(),
		codesByText: make(map[string][]string),
	}
	for _, code := range allCodes(colors, codeLength) {
		text := encode(code)
		a.codesByText[text] = code
		a.base.Add(text, formula.NewAtom(text))
	}
	return a
}

// Remaining returns the number of surviving candidates.
func (a *Agent) Remaining() int { return a.base.Len() }

// Candidates returns the surviving candidate codes in insertion order.
func (a *Agent) Candidates() [][]string {
	texts := a.base.List()
	out := make([][]string, len(texts))
	for i, text := range texts {
		out[i] = a.codesByText[text]
	}
	return out
}

// Guess returns the next candidate to try: the first surviving code,
// mirroring make_guess's first-fit selection (§4.4).
func (a *Agent) Guess() []string {
	texts := a.base.List()
	if len(texts) == 0 {
		return nil
	}
	return a.codesByText[texts[0]]
}

// Eliminate removes every candidate that would not have produced
// feedback against guess, mirroring revise_belief_base.
func (a *Agent) Eliminate(guess []string, correctPositions, correctColors int) {
	for _, text := range a.base.List() {
		code := a.codesByText[text]
		cp, cc := (&Game{Colors: a.Colors, CodeLength: a.CodeLength, Secret: code}).Feedback(guess)
		if cp != correctPositions || cc != correctColors {
			a.base.Remove(text)
		}
	}
}

// Turn is one round of Play's trace.
type Turn struct {
	Number           int
	Guess            []string
	CorrectPositions int
	CorrectColors    int
	Remaining        int
}

// Play runs the guess/feedback/eliminate loop against secret for up to
// maxTurns rounds, mirroring BeliefMastermindAgent.play_game, and
// returns the turn-by-turn trace.
func (a *Agent) Play(secret []string, maxTurns int) []Turn {
	game := &Game{Colors: a.Colors, CodeLength: a.CodeLength, Secret: secret}
	var trace []Turn

	guess := a.Guess()
	for turn := 1; turn <= maxTurns && guess != nil; turn++ {
		correctPositions, correctColors := game.Feedback(guess)
		trace = append(trace, Turn{
			Number:           turn,
			Guess:            guess,
			CorrectPositions: correctPositions,
			CorrectColors:    correctColors,
			Remaining:        a.Remaining(),
		})
		if correctPositions == a.CodeLength {
			break
		}
		a.Eliminate(guess, correctPositions, correctColors)
		guess = a.Guess()
	}
	return trace
}

func allCodes(colors []string, length int) [][]string {
	if length <= 0 || len(colors) == 0 {
		return nil
	}
	total := 1
	for i := 0; i < length; i++ {
		total *= len(colors)
	}
	out := make([][]string, total)
	for i := 0; i < total; i++ {
		code := make([]string, length)
		n := i
		for pos := length - 1; pos >= 0; pos-- {
			code[pos] = colors[n%len(colors)]
			n /= len(colors)
		}
		out[i] = code
	}
	return out
}

func encode(code []string) string {
	return strings.Join(code, "")
}
