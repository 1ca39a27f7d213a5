// Package cli implements the cobra-based CLI commands for doubler.
//
// The root command is the top-level driver: it reads one number through
// the pass-through chain and lets any failure terminate the process. The
// retry and inspect subcommands handle failures locally instead. This file
// defines the root command, the global flags and the error-to-exit-code
// translation shared by every command.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/doubler/internal/chain"
	"github.com/shinji-kodama/doubler/internal/config"
	"github.com/shinji-kodama/doubler/internal/logging"
	"github.com/shinji-kodama/doubler/internal/model"
	"github.com/shinji-kodama/doubler/internal/prompt"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether results and errors are formatted as JSON.
	jsonOutput bool

	// verbose lowers the log level to debug. Logs are written to stderr.
	verbose bool

	// configPath is the optional configuration file (.yaml, .yml, .json
	// or .jsonc).
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Unlike a pure command group, the root command performs an action of its
// own: it is the non-retrying driver. The retry and inspect subcommands
// offer the other two handling strategies.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "doubler",
		Short: "Read a number and print its double",
		Long: `doubler prompts for a number on standard input and prints its double.

Without a subcommand the number is read exactly once. If the input is not
an integer the failure is not handled anywhere on the way up, so doubler
exits with code 2 and reports it. Use "doubler retry" to keep prompting
until a number is entered, or "doubler inspect" to report what was read.

Examples:
  echo 21 | doubler
  doubler retry
  doubler --config doubler.yaml retry`,

		// The number is read from stdin, never from the command line.
		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// RunE returns an error to Execute, which maps it to an exit code.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDouble(cmd)
		},
	}

	// PersistentFlags are inherited by all subcommands, so --json, --verbose
	// and --config work the same after "retry" or "inspect".
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a configuration file (.yaml, .yml, .json, .jsonc)")

	// Register subcommands. Each subcommand is defined in its own file
	// (retry.go, inspect.go) and returns a *cobra.Command.
	rootCmd.AddCommand(NewRetryCommand())
	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// runDouble reads one number through the pass-through chain and prints
// its double. A failure from the chain is returned untouched apart from
// the exit code attached to it.
func runDouble(cmd *cobra.Command) error {
	p, logger, err := newPrompter(cmd)
	if err != nil {
		return err
	}

	// Nothing between here and the prompt handles the failure; this is the
	// first place it is looked at.
	n, err := chain.Outer(p)
	if err != nil {
		logger.Debug("unhandled failure reached the top level", "error", err)
		return toCLIError(err)
	}

	return printResult(cmd.OutOrStdout(), n)
}

// newPrompter loads the configuration and builds a Prompter bound to the
// command's input and output streams.
func newPrompter(cmd *cobra.Command) (*prompt.Prompter, *slog.Logger, error) {
	logger := logging.New(cmd.ErrOrStderr(), verbose)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if configPath != "" {
		logger.Debug("configuration loaded", "path", configPath)
	}

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout(),
		prompt.WithConfig(cfg),
		prompt.WithLogger(logger),
	)
	return p, logger, nil
}

// toCLIError attaches an exit code to a failure returned by a prompt.
func toCLIError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidFormat):
		return model.WrapCLIError(model.ExitInvalidInput, "unhandled parse failure", err)
	case errors.Is(err, model.ErrInputClosed):
		return model.WrapCLIError(model.ExitInputClosed, "no number was entered", err)
	default:
		return model.WrapCLIError(model.ExitGeneralError, "failed to read a number", err)
	}
}

// resultJSON is the --json form of a successful read.
type resultJSON struct {
	Value  int64 `json:"value"`
	Double int64 `json:"double"`
}

// printResult writes the doubled reading in text or JSON format.
func printResult(w io.Writer, n model.Reading) error {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resultJSON{Value: int64(n), Double: int64(n.Double())}, "", "  ")
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintf(w, "Double your number is %d\n", int64(n.Double()))
	return err
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(reportError(rootCmd.ErrOrStderr(), err)))
	}
}

// reportError prints err and returns the exit code for it. CLIError
// values carry their own exit codes; other errors map to
// ExitGeneralError.
func reportError(w io.Writer, err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(w, err.Error(), nil)
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		// We write to stderr for errors, even in JSON mode, because stdout
		// is reserved for the prompt transcript and results.
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		// Text format: "Error: <message>" on stderr.
		if underlying != nil {
			fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(w, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
