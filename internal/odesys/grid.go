package odesys

import (
	"fmt"
	"math"
)

// Grid is a uniform time grid over the half-open interval [T0, TStop).
// TStop itself is never a sample, matching the arange convention the
// relaxation-window sizes in presets were calibrated against.
type Grid struct {
	T0    float64
	TStop float64
	Dt    float64
}

func (g Grid) Validate() error {
	if g.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidGrid, g.Dt)
	}
	if g.TStop <= g.T0 {
		return fmt.Errorf("%w: t_stop %g must exceed t0 %g", ErrInvalidGrid, g.TStop, g.T0)
	}
	return nil
}

// Steps returns the number of grid samples.
func (g Grid) Steps() int {
	return int(math.Ceil((g.TStop - g.T0) / g.Dt))
}

// Times materializes the grid points.
func (g Grid) Times() []float64 {
	n := g.Steps()
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = g.T0 + float64(i)*g.Dt
	}
	return ts
}
