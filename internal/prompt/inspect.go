package prompt

import (
	"fmt"

	"github.com/shinji-kodama/doubler/internal/model"
)

// Outcome is the classified result of a single read.
type Outcome struct {
	// Reading is the parsed number. Only meaningful when Kind is
	// model.InputOK.
	Reading model.Reading

	// Kind is the category of the result.
	Kind model.InputKind

	// Err is the failure behind Kind, nil on success.
	Err error
}

// Message returns the line reported for the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case model.InputOK:
		return fmt.Sprintf("Input was %d", int64(o.Reading))
	case model.InputNotNumber:
		return "Input was not a number"
	case model.InputEmpty:
		return "Input was empty"
	default:
		return "Failed to get input"
	}
}

// Inspect reads one line and classifies the result instead of returning
// an error. Every outcome, including a broken input stream, is a value.
func (p *Prompter) Inspect() Outcome {
	n, err := p.ReadNumber()
	return Outcome{Reading: n, Kind: model.ClassifyInput(err), Err: err}
}
