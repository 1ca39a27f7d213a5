// Package prompt implements the interactive number prompts of the doubler
// CLI.
//
// A Prompter writes a prompt, reads one line and parses it into a
// model.Reading. Three strategies are offered on top of that single step:
//
//   - ReadNumber reads once and returns any failure unhandled.
//   - ReadNumberWithRetry handles every failure locally, reports it with a
//     per-kind message and prompts again until a number is read.
//   - Inspect reads once and classifies the outcome into a model.InputKind
//     for callers that want to report rather than fail.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shinji-kodama/doubler/internal/config"
	"github.com/shinji-kodama/doubler/internal/logging"
	"github.com/shinji-kodama/doubler/internal/model"
)

// Prompter reads numbers from an input stream and writes prompts and
// messages to an output stream. It is not safe for concurrent use.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	cfg    *config.Config
	logger *slog.Logger
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithConfig overrides the prompt text and retry messages.
func WithConfig(cfg *config.Config) Option {
	return func(p *Prompter) {
		if cfg != nil {
			p.cfg = cfg
		}
	}
}

// WithLogger sets the logger used for attempt diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		cfg:    config.DefaultConfig(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReadNumber writes the prompt, reads one line and converts it.
//
// It does not handle failures. A line that is not an integer yields a
// *model.ParseError matching model.ErrInvalidFormat; a read error wraps
// model.ErrInputFailed; end of input yields model.ErrInputClosed.
func (p *Prompter) ReadNumber() (model.Reading, error) {
	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	return model.ParseReading(line)
}

// readLine writes the prompt and returns the next line of input,
// including its terminator. A final line without a newline is returned
// as is.
func (p *Prompter) readLine() (string, error) {
	if _, err := io.WriteString(p.out, p.cfg.Prompt); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrOutputFailed, err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", model.ErrInputClosed
			}
			return line, nil
		}
		return "", fmt.Errorf("%w: %w", model.ErrInputFailed, err)
	}
	return line, nil
}

// println writes one message line to the output stream. Write errors are
// ignored: the prompt that follows will surface a broken stream.
func (p *Prompter) println(msg string) {
	_, _ = fmt.Fprintln(p.out, msg)
}
