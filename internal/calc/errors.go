package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation is wrapped by every input error returned from this package.
var ErrValidation = errors.New("validation error")

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IntervalError reports which interval of a session was rejected.
type IntervalError struct {
	Index int
	Err   error
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("interval %d: %s", e.Index+1, e.Err)
}

func (e *IntervalError) Unwrap() error {
	return e.Err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
