package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agm-labs/abr/mastermind"
)

func newMastermindCmd() *cobra.Command {
	var colorsFlag string
	var length int
	var maxTurns int

	cmd := &cobra.Command{
		Use:   "mastermind",
		Short: "Run the Mastermind demo agent against a random secret code",
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := strings.Split(colorsFlag, ",")
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			game := mastermind.NewGame(colors, length, rng)
			a := mastermind.NewAgent(colors, length)

			trace := a.Play(game.Secret, maxTurns)
			for _, turn := range trace {
				fmt.Printf("turn %d: guess=%v correct_positions=%d correct_colors=%d remaining=%d\n",
					turn.Number, turn.Guess, turn.CorrectPositions, turn.CorrectColors, turn.Remaining)
			}
			fmt.Printf("secret was %v\n", game.Secret)
			return nil
		},
	}
	cmd.Flags().StringVar(&colorsFlag, "colors", "R,G,B,Y", "comma-separated color palette")
	cmd.Flags().IntVar(&length, "length", 4, "code length")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 10, "maximum turns")
	return cmd
}
