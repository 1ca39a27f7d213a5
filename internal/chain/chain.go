// Package chain holds the two pass-through layers between the top-level
// driver and the prompt.
//
// Neither layer inspects, wraps or handles a failure. Whatever error the
// bottom of the chain returns reaches the caller of Outer unchanged, so a
// parse failure raised two calls down is seen by the driver exactly as it
// was raised.
package chain

import "github.com/shinji-kodama/doubler/internal/model"

// NumberReader is the bottom of the chain. *prompt.Prompter satisfies it.
type NumberReader interface {
	ReadNumber() (model.Reading, error)
}

// Outer is the entry point of the chain.
func Outer(r NumberReader) (model.Reading, error) {
	return Inner(r)
}

// Inner forwards to the reader.
func Inner(r NumberReader) (model.Reading, error) {
	return r.ReadNumber()
}
