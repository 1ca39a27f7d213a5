package prompt

import (
	"errors"

	"github.com/shinji-kodama/doubler/internal/model"
)

// ReadNumberWithRetry prompts until a line parses as an integer.
//
// Every failed attempt is classified with model.Classify and reported with
// the configured message for its kind (out-of-range integers get their own
// message), then the prompt is shown again.
// There is no attempt limit. Panics raised during an attempt are recovered
// and classified like any other failure.
//
// The only failures returned are model.ErrInputClosed and
// model.ErrOutputFailed, after which no attempt could succeed.
func (p *Prompter) ReadNumberWithRetry() (model.Reading, error) {
	for attempt := 1; ; attempt++ {
		n, err := p.attempt()
		if err == nil {
			p.logger.Debug("number read", "attempt", attempt, "value", int64(n))
			return n, nil
		}

		if errors.Is(err, model.ErrInputClosed) || errors.Is(err, model.ErrOutputFailed) {
			p.logger.Debug("giving up", "attempt", attempt, "error", err)
			return 0, err
		}

		kind := model.Classify(err)
		p.logger.Debug("attempt failed", "attempt", attempt, "kind", kind.String(), "error", err)
		p.println(p.cfg.Messages.ForError(err))
	}
}

// attempt runs a single ReadNumber under a recover boundary so that a
// panic in the input stream is reported as an error of this attempt.
func (p *Prompter) attempt() (n model.Reading, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, model.FromPanic(r)
		}
	}()
	return p.ReadNumber()
}
