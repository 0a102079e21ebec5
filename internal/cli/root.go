// Package cli provides the dfamin command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/codec"
)

const rootLongDescription = `dfamin minimizes deterministic finite automata.

Unreachable states are pruned first, then equivalent states are merged by
partition refinement. The result accepts the same language with the fewest
possible states.

Automata are read and written as XML, YAML or JSON; the format follows the
file extension unless --format or --input-format says otherwise.`

// app carries what every command shares: configuration and the run logger.
type app struct {
	v         *viper.Viper
	logger    *slog.Logger
	logWriter *lumberjack.Logger

	configPath string
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{
		v:      newConfig(),
		logger: slog.New(slog.DiscardHandler),
	}

	cmd := &cobra.Command{
		Use:           "dfamin",
		Short:         "DFA minimization tool",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := loadConfig(a.v, a.configPath); err != nil {
				return WrapExitError(ExitCommandError, "configuration", err)
			}
			a.logger, a.logWriter = configureLogger(a.v)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd, a)

	cmd.AddCommand(
		newMinimizeCmd(a),
		newPruneCmd(a),
		newShowCmd(a),
		newDotCmd(a),
		newViewCmd(a),
		newEquivCmd(a),
		newVersionCmd(),
	)

	return cmd, a
}

func configureRootFlags(cmd *cobra.Command, a *app) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&a.configPath, configFlagName, "", "config file (default ./dfamin.yaml)")

	flags.String(formatFlagName, a.v.GetString(outputFormatKey), "output format: xml, yaml or json")
	bindFlagToConfig(a.v, flags.Lookup(formatFlagName), outputFormatKey)

	flags.String(inputFormatFlagName, a.v.GetString(inputFormatKey), "input format (default: from file extension)")
	bindFlagToConfig(a.v, flags.Lookup(inputFormatFlagName), inputFormatKey)

	flags.String(logFileFlagName, a.v.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(a.v, flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolP(verboseFlagName, "v", a.v.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(a.v, flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}

// run executes cmd and closes the log file afterwards, also when the command failed.
func (a *app) run(cmd *cobra.Command) error {
	err := cmd.Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

func (a *app) close() error {
	if a.logWriter == nil {
		return nil
	}
	err := a.logWriter.Close()
	a.logWriter = nil
	return err
}

// readAutomaton loads the automaton at path using the configured input format.
func (a *app) readAutomaton(path string) (*dfamin.Automaton, error) {
	format, err := a.inputFormat()
	if err != nil {
		return nil, err
	}

	automaton, err := codec.ReadFile(path, format)
	if err != nil {
		a.logger.Error("failed to read automaton", slog.String("path", path), slog.Any("error", err))
		return nil, WrapExitError(ExitCommandError, "cannot load automaton", err)
	}

	a.logger.Info("automaton loaded",
		slog.String("path", path),
		slog.Int("states", automaton.NumStates()),
		slog.Int("symbols", len(automaton.Alphabet())),
		slog.Int("transitions", automaton.NumTransitions()))
	return automaton, nil
}

func (a *app) inputFormat() (codec.Format, error) {
	name := a.v.GetString(inputFormatKey)
	if name == "" {
		return "", nil
	}
	format, err := codec.ParseFormat(name)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "invalid --input-format", err)
	}
	return format, nil
}

// outputFormat picks the format of written output: an explicit --format wins, then the
// extension of path, then the configured default.
func (a *app) outputFormat(cmd *cobra.Command, path string) (codec.Format, error) {
	if path != "" && !cmd.Flags().Changed(formatFlagName) {
		if format, err := codec.FormatFromPath(path); err == nil {
			return format, nil
		}
	}

	format, err := codec.ParseFormat(a.v.GetString(outputFormatKey))
	if err != nil {
		return "", WrapExitError(ExitCommandError, "invalid --format", err)
	}
	return format, nil
}

// writeAutomaton encodes automaton to path, or to out when path is empty.
func (a *app) writeAutomaton(cmd *cobra.Command, out io.Writer, path string, automaton *dfamin.Automaton) error {
	format, err := a.outputFormat(cmd, path)
	if err != nil {
		return err
	}

	if path == "" {
		if err := codec.Encode(out, format, automaton.Definition()); err != nil {
			return WrapExitError(ExitCommandError, "cannot write automaton", err)
		}
		return nil
	}

	if err := codec.WriteFile(path, format, automaton); err != nil {
		return WrapExitError(ExitCommandError, "cannot write automaton", err)
	}
	a.logger.Info("automaton written", slog.String("path", path), slog.String("format", string(format)))
	return nil
}

// Execute runs the dfamin command tree and exits with the code of the failure, if any.
func Execute() {
	cmd, a := newRootCmd()
	if err := a.run(cmd); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(GetExitCode(err))
	}
}
