// Package cli — retry.go implements the "doubler retry" command.
//
// The retry command handles every failure locally: it reports the failure
// kind with its own message and prompts again, with no attempt limit. It
// only fails when standard input is exhausted or stdout is broken.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRetryCommand creates the "retry" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRetryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Prompt until a number is entered, then print its double",
		Long: `Prompt for a number until the input parses as an integer.

Each failed attempt prints a message for its failure kind:
  not an integer       That was not a number. Please try again.
  too big to double    That number is too big to double. Please try again.
  Go runtime failure   Some runtime error occurred.
  anything else        An error occurred.

Messages and the prompt can be changed with --config.

Examples:
  doubler retry
  printf 'abc\n12\n' | doubler retry`,

		// No positional arguments; every attempt is read from stdin.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetry(cmd)
		},
	}

	return cmd
}

// runRetry is the main logic function for the retry command.
func runRetry(cmd *cobra.Command) error {
	p, _, err := newPrompter(cmd)
	if err != nil {
		return err
	}

	n, err := p.ReadNumberWithRetry()
	if err != nil {
		return toCLIError(err)
	}

	return printResult(cmd.OutOrStdout(), n)
}
