package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geange/dfamin"
)

func newEquivCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "equiv FILE1 FILE2",
		Short: "Check whether two automata accept the same language",
		Long: `Check whether the automata stored in FILE1 and FILE2 accept the same
language. When they differ, a shortest word accepted by exactly one of them is
printed and the command exits with status 1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := a.readAutomaton(args[0])
			if err != nil {
				return err
			}
			second, err := a.readAutomaton(args[1])
			if err != nil {
				return err
			}

			same, counterexample := dfamin.Equivalent(first, second)
			a.logger.Info("equivalence checked", slog.Bool("equivalent", same))
			if same {
				fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
				return nil
			}

			return NewExitError(ExitFailure, fmt.Sprintf("not equivalent: counterexample %q (accepted by %s only)",
				strings.Join(counterexample, " "), acceptedBy(first, second, counterexample, args)))
		},
	}
}

func acceptedBy(first, second *dfamin.Automaton, word []string, names []string) string {
	if dfamin.Run(first, word) {
		return names[0]
	}
	if dfamin.Run(second, word) {
		return names[1]
	}
	return "neither"
}
