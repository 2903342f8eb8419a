// Command abr is the illustrative, non-normative CLI of spec §6: a
// menu offering manual revision, a batch run of built-in scenarios,
// and the Mastermind demo.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abr",
		Short: "abr",
		Long:  `A belief revision engine CLI: manual revision, batch scenarios, and a Mastermind demo.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newManualCmd())
	rootCmd.AddCommand(newScenarioCmd())
	rootCmd.AddCommand(newMastermindCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
