package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geange/dfamin"
)

const minimizeLongDescription = `Minimize the automaton stored in FILE.

Unreachable states are removed, then states that accept the same language are
merged. Merged states are named by concatenating the sorted names of their
members. The result is written to --output, or to standard output.`

func newMinimizeCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "minimize FILE",
		Short: "Minimize an automaton",
		Long:  minimizeLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := a.readAutomaton(args[0])
			if err != nil {
				return err
			}

			var stats dfamin.Stats
			minimized := dfamin.Minimize(original,
				dfamin.WithParallelism(a.v.GetInt(parallelKey)),
				dfamin.WithLogger(a.logger),
				dfamin.WithStats(&stats),
			)
			a.logger.Info("automaton minimized",
				slog.Int("states", original.NumStates()),
				slog.Int("reachable", stats.States),
				slog.Int("minimized", stats.Blocks),
				slog.Int("rounds", stats.Rounds))

			if a.v.GetBool(verifyKey) {
				if same, counterexample := dfamin.Equivalent(original, minimized); !same {
					return NewExitError(ExitFailure,
						fmt.Sprintf("verification failed: languages differ on %q", strings.Join(counterexample, " ")))
				}
				a.logger.Debug("minimized automaton verified")
			}

			if showStats, _ := cmd.Flags().GetBool(statsFlagName); showStats {
				fmt.Fprintf(cmd.ErrOrStderr(), "states: %d -> %d (reachable %d, rounds %d)\n",
					original.NumStates(), stats.Blocks, stats.States, stats.Rounds)
			}

			return a.writeAutomaton(cmd, cmd.OutOrStdout(), outputPath, minimized)
		},
	}

	cmd.Flags().StringVarP(&outputPath, outputFlagName, "o", "", "write the result to this file")

	cmd.Flags().IntP(parallelFlagName, "p", a.v.GetInt(parallelKey), "split up to N blocks concurrently")
	bindFlagToConfig(a.v, cmd.Flags().Lookup(parallelFlagName), parallelKey)

	cmd.Flags().Bool(verifyFlagName, a.v.GetBool(verifyKey), "check that the result accepts the same language")
	bindFlagToConfig(a.v, cmd.Flags().Lookup(verifyFlagName), verifyKey)

	cmd.Flags().Bool(statsFlagName, false, "print refinement statistics to standard error")

	return cmd
}

func newPruneCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "prune FILE",
		Short: "Remove states unreachable from the start state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := a.readAutomaton(args[0])
			if err != nil {
				return err
			}

			pruned := dfamin.PruneReachable(original)
			a.logger.Info("automaton pruned",
				slog.Int("states", original.NumStates()),
				slog.Int("reachable", pruned.NumStates()))

			return a.writeAutomaton(cmd, cmd.OutOrStdout(), outputPath, pruned)
		},
	}

	cmd.Flags().StringVarP(&outputPath, outputFlagName, "o", "", "write the result to this file")

	return cmd
}
