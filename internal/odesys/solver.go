package odesys

import (
	"context"
	"fmt"
)

// Trajectory holds the state at every grid sample of one run.
type Trajectory struct {
	Times  []float64
	States []State
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// Component extracts one state variable across all samples.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		out[k] = s[i]
	}
	return out
}

// Tail returns the trailing n entries of the sequence s.
func Tail(s []float64, n int) []float64 {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Solver integrates a System over a Grid at a fixed parameter value.
type Solver struct {
	sys     System
	integ   Integrator
	metrics []Metric
}

func NewSolver(sys System, integ Integrator) *Solver {
	return &Solver{sys: sys, integ: integ}
}

func (s *Solver) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run produces the trajectory starting from x0. The first sample is x0
// at t0; x0 is never mutated. Metrics observe every sample.
func (s *Solver) Run(ctx context.Context, x0 State, grid Grid, par float64) (*Trajectory, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: got %d, system wants %d", ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	n := grid.Steps()
	traj := &Trajectory{
		Times:  make([]float64, 0, n),
		States: make([]State, 0, n),
	}

	x := x0.Clone()
	t := grid.T0

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !x.IsValid() {
			return nil, &SolveError{Step: i, Time: t, Par: par, Wrapped: ErrUnstable}
		}

		traj.States = append(traj.States, x)
		traj.Times = append(traj.Times, t)
		for _, m := range s.metrics {
			m.Observe(x, t)
		}

		if i < n-1 {
			x = s.integ.Step(s.sys, x, t, grid.Dt, par)
			t = grid.T0 + float64(i+1)*grid.Dt
		}
	}

	return traj, nil
}

// Metrics returns the current value of every attached metric.
func (s *Solver) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
