// Package cli — inspect.go implements the "doubler inspect" command.
//
// The inspect command reads one line and reports which kind of input it
// was. Every outcome is a value rather than an error, so it always exits
// with code 0.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/doubler/internal/model"
	"github.com/shinji-kodama/doubler/internal/prompt"
)

// NewInspectCommand creates the "inspect" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Read one line and report what kind of input it was",
		Long: `Read one line and report the outcome instead of failing.

Possible reports:
  Input was <N>
  Input was not a number
  Input was empty
  Failed to get input

Examples:
  echo 5 | doubler inspect
  doubler inspect --json`,

		// No positional arguments; the line is read from stdin.
		Args: cobra.NoArgs,

		// RunE only fails on configuration or output errors. The input
		// itself never causes a non-zero exit.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd)
		},
	}

	return cmd
}

// runInspect is the main logic function for the inspect command.
func runInspect(cmd *cobra.Command) error {
	p, logger, err := newPrompter(cmd)
	if err != nil {
		return err
	}

	// Every outcome is a value; an error behind it is only logged.
	outcome := p.Inspect()
	if outcome.Err != nil {
		logger.Debug("input classified", "kind", outcome.Kind.String(), "error", outcome.Err)
	}

	return printOutcome(cmd.OutOrStdout(), outcome)
}

// inspectJSON is the --json form of an inspect outcome.
type inspectJSON struct {
	Kind    string `json:"kind"`
	Value   *int64 `json:"value,omitempty"`
	Message string `json:"message"`
}

// printOutcome writes the outcome report in text or JSON format.
func printOutcome(w io.Writer, o prompt.Outcome) error {
	if IsJSONOutput() {
		entry := inspectJSON{Kind: o.Kind.String(), Message: o.Message()}
		if o.Kind == model.InputOK {
			v := int64(o.Reading)
			entry.Value = &v
		}
		data, _ := json.MarshalIndent(entry, "", "  ")
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintln(w, o.Message())
	return err
}
