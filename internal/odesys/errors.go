package odesys

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrInvalidGrid indicates a time grid with dt <= 0 or t_stop <= t0.
	ErrInvalidGrid = errors.New("odesys: invalid time grid")

	// ErrUnstable indicates the trajectory produced NaN or Inf values.
	ErrUnstable = errors.New("odesys: integration unstable (NaN/Inf state)")

	// ErrDimensionMismatch indicates an initial state whose length does
	// not match the system dimension.
	ErrDimensionMismatch = errors.New("odesys: state dimension mismatch")
)

// SolveError wraps an integration failure with the step, time, and
// parameter value at which it occurred.
type SolveError struct {
	Step    int
	Time    float64
	Par     float64
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, par=%.4f): %v", e.Step, e.Time, e.Par, e.Wrapped)
}

func (e *SolveError) Unwrap() error { return e.Wrapped }
