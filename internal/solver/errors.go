package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxSteps indicates the integrator exhausted its internal step
	// budget before reaching the final output time. The trajectory is
	// not silently truncated; the run fails.
	ErrMaxSteps = errors.New("solver: maximum internal steps exceeded")

	// ErrStepTooSmall indicates the adaptive step size underflowed,
	// which usually means the system has become stiff or is blowing up.
	ErrStepTooSmall = errors.New("solver: adaptive step size below minimum")

	// ErrEmptyTimes indicates Solve was called without output times.
	ErrEmptyTimes = errors.New("solver: no output times requested")
)

// StepError wraps a solver failure with the step count and time at
// which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v (step %d, t=%.6g)", e.Wrapped, e.Step, e.Time)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
