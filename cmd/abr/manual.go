package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agm-labs/abr/agent"
	"github.com/agm-labs/abr/contraction"
)

func newManualCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manual",
		Short: "Run an interactive manual-revision session over stdin",
		RunE:  runManual,
	}
}

// runManual reads one command per line from stdin: add, remove, list,
// clear, entails, consistent, contract, revise, quit. A parse error
// exits with status 1 (§6's "Exit code 1 on parse error in manual
// mode").
func runManual(cmd *cobra.Command, args []string) error {
	a, err := agent.New()
	if err != nil {
		return err
	}
	ctx := context.Background()

	fmt.Println("abr manual mode: add, remove, list, clear, entails, consistent, contract, revise, clauses, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, rest := splitCommand(line)

		switch name {
		case "quit", "exit":
			return nil
		case "add":
			if err := a.Add(rest); err != nil {
				log.Fatalf("add failed: %v", err)
			}
		case "remove":
			a.Remove(rest)
		case "list":
			fmt.Println(a.String())
		case "clear":
			a.Clear()
		case "entails":
			result, err := a.Entails(ctx, rest)
			if err != nil {
				log.Fatalf("entails failed: %v", err)
			}
			fmt.Println(result)
		case "consistent":
			result, err := a.Consistent(ctx)
			if err != nil {
				log.Fatalf("consistent failed: %v", err)
			}
			fmt.Println(result)
		case "clauses":
			n, err := a.ClauseCount()
			if err != nil {
				log.Fatalf("clauses failed: %v", err)
			}
			fmt.Println(n)
		case "contract":
			formulaText, selector := splitSelector(rest)
			if err := a.Contract(ctx, formulaText, selector); err != nil {
				log.Fatalf("contract failed: %v", err)
			}
		case "revise":
			formulaText, selector := splitSelector(rest)
			if err := a.Revise(ctx, formulaText, selector); err != nil {
				log.Fatalf("revise failed: %v", err)
			}
		default:
			log.Fatalf("unknown command %q", name)
		}
	}
	return scanner.Err()
}

func splitCommand(line string) (name, rest string) {
	fields := strings.Fields(line)
	name = fields[0]
	rest = strings.TrimSpace(strings.TrimPrefix(line, name))
	return name, rest
}

// splitSelector peels a trailing selector token (all/max/min) off a
// "contract"/"revise" argument, if present, leaving the formula text.
func splitSelector(rest string) (formulaText string, selector contraction.Selector) {
	fields := strings.Fields(rest)
	if len(fields) > 1 {
		last := contraction.Selector(fields[len(fields)-1])
		switch last {
		case contraction.SelectAll, contraction.SelectMax, contraction.SelectMin:
			return strings.Join(fields[:len(fields)-1], " "), last
		}
	}
	return rest, ""
}
