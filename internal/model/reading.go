package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Reading is an integer parsed from a line of user input.
//
// It has no identity and is never stored: the driver doubles it, prints
// the result and discards it.
type Reading int64

// Bounds of the values ParseReading accepts. Anything outside this range
// would overflow when doubled.
const (
	MaxReading Reading = math.MaxInt64 / 2
	MinReading Reading = math.MinInt64 / 2
)

// Double returns twice the reading. ParseReading guarantees that the
// result fits in an int64.
func (r Reading) Double() Reading {
	return r * 2
}

// String returns the base-10 representation of the reading.
func (r Reading) String() string {
	return strconv.FormatInt(int64(r), 10)
}

// ParseReading converts one line of user input into a Reading.
//
// Leading and trailing whitespace (including the line terminator) is
// ignored, and an optional leading "+" or "-" sign is accepted. The empty
// line is not a number.
//
// On failure it returns a *ParseError that matches ErrInvalidFormat via
// errors.Is. Values whose double would overflow additionally match
// ErrOutOfRange.
func ParseReading(line string) (Reading, error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return 0, &ParseError{Input: text, Err: ErrInputEmpty}
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// strconv reports overflow as ErrRange; everything else is a
		// syntax problem.
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Input: text, Err: ErrOutOfRange, Cause: err}
		}
		return 0, &ParseError{Input: text, Err: ErrInvalidFormat, Cause: err}
	}

	r := Reading(n)
	if r > MaxReading || r < MinReading {
		return 0, &ParseError{Input: text, Err: ErrOutOfRange}
	}
	return r, nil
}
