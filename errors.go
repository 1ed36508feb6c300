package ttcal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when year/month/day do not form a valid
	// Gregorian calendar date.
	ErrInvalidDate = errors.New("ttcal: invalid date")

	// ErrMonthRange is returned when a month number is outside 1..12.
	ErrMonthRange = errors.New("ttcal: month must be in 1..12")

	// ErrNotFound is returned by Lookup when the requested day is not part
	// of the period's day grid.
	ErrNotFound = errors.New("ttcal: day not found in period")
)

// ArgumentError reports a constructor called with the wrong number of
// arguments.
type ArgumentError struct {
	Func string
	Got  int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("ttcal: %s: incorrect number of arguments (%d)", e.Func, e.Got)
}

// ParseError is returned when text cannot be interpreted as a value of the
// requested kind. Text is the original input, Remainder holds the unparsed
// tail when the input was only partially understood.
type ParseError struct {
	Kind      string
	Text      string
	Remainder string
	Cause     error
}

func (e *ParseError) Error() string {
	if e.Remainder != "" {
		return fmt.Sprintf("ttcal: remaining text %q could not be parsed as a %s", e.Remainder, e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("ttcal: cannot parse %q as %s: %v", e.Text, e.Kind, e.Cause)
	}
	return fmt.Sprintf("ttcal: cannot parse %q as %s", e.Text, e.Kind)
}

// Unwrap allows errors.Is to reach ErrInvalidDate / ErrMonthRange when a
// syntactically valid text names an impossible value.
func (e *ParseError) Unwrap() error { return e.Cause }

// OperandError is returned by the dynamic arithmetic helpers (Day.Plus,
// Day.Minus) when the right-hand operand has an unsupported type.
type OperandError struct {
	Op    string
	Left  string
	Right string
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("ttcal: wrong operands for %s: %s and %s", e.Op, e.Left, e.Right)
}

func operandError(op string, left, right any) error {
	return &OperandError{
		Op:    op,
		Left:  fmt.Sprintf("%T", left),
		Right: fmt.Sprintf("%T", right),
	}
}
