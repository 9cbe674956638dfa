package tabular

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrOutOfRange        = errors.New("row index out of range")
	ErrInvalidOption     = errors.New("invalid option")
	ErrMalformedTable    = errors.New("malformed table")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// StepError reports which pipeline step failed.
type StepError struct {
	Index  int
	Action Action
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Action, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func errNotObject(v Value) error {
	return fmt.Errorf("%w: expected object, got %s", ErrMalformedTable, v.Kind())
}

func errOutOfRange(row, n int) error {
	return fmt.Errorf("%w: row %d is not within [0, %d)", ErrOutOfRange, row, n)
}
