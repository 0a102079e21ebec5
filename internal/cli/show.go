package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/render"
	"github.com/geange/dfamin/internal/view"
)

func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the transition table of an automaton",
		Long: `Print the transition table of the automaton stored in FILE.

With --minimized the table of the minimized automaton is printed instead. With
--diff a unified diff between the original and the minimized automaton is
printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := a.readAutomaton(args[0])
			if err != nil {
				return err
			}

			showDiff, _ := cmd.Flags().GetBool(diffFlagName)
			if showDiff {
				diff, err := render.Diff(original, dfamin.Minimize(original, dfamin.WithLogger(a.logger)))
				if err != nil {
					return WrapExitError(ExitCommandError, "cannot render diff", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return nil
			}

			shown := original
			if minimized, _ := cmd.Flags().GetBool(minimizedFlagName); minimized {
				shown = dfamin.Minimize(original, dfamin.WithLogger(a.logger))
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Table(shown))
			return nil
		},
	}

	cmd.Flags().Bool(minimizedFlagName, false, "show the minimized automaton")
	cmd.Flags().Bool(diffFlagName, false, "show a diff between the original and the minimized automaton")
	cmd.MarkFlagsMutuallyExclusive(minimizedFlagName, diffFlagName)

	return cmd
}

func newDotCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "dot FILE",
		Short: "Render an automaton as a Graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			automaton, err := a.readAutomaton(args[0])
			if err != nil {
				return err
			}

			title := "original"
			if minimized, _ := cmd.Flags().GetBool(minimizedFlagName); minimized {
				automaton = dfamin.Minimize(automaton, dfamin.WithLogger(a.logger))
				title = "minimized"
			}

			dot := render.DOT(automaton, title)
			if outputPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), dot)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(dot), 0o644); err != nil {
				return WrapExitError(ExitCommandError, "cannot write graph", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, outputFlagName, "o", "", "write the graph to this file")
	cmd.Flags().Bool(minimizedFlagName, false, "render the minimized automaton")

	return cmd
}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE",
		Short: "Toggle between an automaton and its minimized form",
		Long: `Show the automaton stored in FILE and its minimized form, toggling between
them with t or tab. When standard output is not a terminal both are printed
one after the other.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := a.readAutomaton(args[0])
			if err != nil {
				return err
			}
			minimized := dfamin.Minimize(original, dfamin.WithLogger(a.logger))

			if !isTTY(cmd.OutOrStdout()) {
				fmt.Fprint(cmd.OutOrStdout(), view.Plain(original, minimized))
				return nil
			}
			return view.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), original, minimized)
		},
	}
}

// isTTY reports whether w is a terminal.
func isTTY(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
