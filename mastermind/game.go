// Package mastermind is the external Mastermind adapter of spec §4.4:
// a candidate-set guessing game consuming only beliefbase's container
// API (add/remove/list), grounded on original_source/mastermind.py and
// mastermind_agent.py. It does not import prover, contraction, cnf, or
// formula's logical operators, and is therefore fully replaceable
// without touching the logic core.
package mastermind

import "math/rand"

// Game holds a secret code and scores guesses against it.
type Game struct {
	Colors     []string
	CodeLength int
	Secret     []string
}

// NewGame builds a Game with a secret code drawn uniformly at random
// from Colors, mirroring Mastermind.generate_code.
func NewGame(colors []string, codeLength int, rng *rand.Rand) *Game {
	secret := make([]string, codeLength)
	for i := range secret {
		secret[i] = colors[rng.Intn(len(colors))]
	}
	return &Game{Colors: colors, CodeLength: codeLength, Secret: secret}
}

// Feedback scores guess against g.Secret, returning the count of
// correctly placed colors (black pegs) and the count of correct
// colors in the wrong position (white pegs), mirroring
// Mastermind.get_feedback.
func (g *Game) Feedback(guess []string) (correctPositions, correctColors int) {
	for i, color := range guess {
		if i < len(g.Secret) && color == g.Secret[i] {
			correctPositions++
		}
	}

	guessCounts := make(map[string]int)
	for _, c := range guess {
		guessCounts[c]++
	}
	secretCounts := make(map[string]int)
	for _, c := range g.Secret {
		secretCounts[c]++
	}

	total := 0
	for color, gc := range guessCounts {
		sc := secretCounts[color]
		if sc < gc {
			total += sc
		} else {
			total += gc
		}
	}
	correctColors = total - correctPositions
	return correctPositions, correctColors
}
