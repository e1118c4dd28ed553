package odesys

import (
	"context"
	"errors"
	"math"
	"testing"
)

// eulerStep is a minimal integrator for solver tests.
type eulerStep struct{}

func (eulerStep) Step(sys System, x State, t, dt, par float64) State {
	dx := sys.Derive(x, t, par)
	out := make(State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out
}

func decaySystem() *FuncSystem {
	return NewFuncSystem(1, func(x State, t, par float64) State {
		return State{-par * x[0]}
	})
}

func TestSolverRunSampleCount(t *testing.T) {
	grid := Grid{T0: 0, TStop: 1, Dt: 0.01}
	solver := NewSolver(decaySystem(), eulerStep{})

	traj, err := solver.Run(context.Background(), State{1.0}, grid, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	if traj.Len() != grid.Steps() {
		t.Errorf("trajectory len = %d, want %d", traj.Len(), grid.Steps())
	}
	if traj.Times[0] != 0 {
		t.Errorf("first time = %v, want 0", traj.Times[0])
	}
	if traj.States[0][0] != 1.0 {
		t.Errorf("first sample = %v, want initial state", traj.States[0][0])
	}
}

func TestSolverDoesNotMutateInitialState(t *testing.T) {
	x0 := State{1.0}
	solver := NewSolver(decaySystem(), eulerStep{})

	_, err := solver.Run(context.Background(), x0, Grid{T0: 0, TStop: 1, Dt: 0.1}, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if x0[0] != 1.0 {
		t.Errorf("x0 mutated to %v", x0[0])
	}
}

func TestSolverDimensionMismatch(t *testing.T) {
	solver := NewSolver(decaySystem(), eulerStep{})
	_, err := solver.Run(context.Background(), State{1, 2}, Grid{T0: 0, TStop: 1, Dt: 0.1}, 1.0)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestSolverInvalidGrid(t *testing.T) {
	solver := NewSolver(decaySystem(), eulerStep{})
	_, err := solver.Run(context.Background(), State{1}, Grid{T0: 0, TStop: 1, Dt: -1}, 1.0)
	if !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("err = %v, want ErrInvalidGrid", err)
	}
}

func TestSolverDetectsDivergence(t *testing.T) {
	// Exponential growth with a huge rate blows up to +Inf quickly.
	sys := NewFuncSystem(1, func(x State, t, par float64) State {
		return State{par * x[0] * x[0]}
	})
	solver := NewSolver(sys, eulerStep{})

	_, err := solver.Run(context.Background(), State{10}, Grid{T0: 0, TStop: 100, Dt: 1}, 1e100)
	if !errors.Is(err, ErrUnstable) {
		t.Fatalf("err = %v, want ErrUnstable", err)
	}

	var se *SolveError
	if !errors.As(err, &se) {
		t.Fatal("expected *SolveError")
	}
	if se.Par != 1e100 {
		t.Errorf("SolveError.Par = %v, want 1e100", se.Par)
	}
}

func TestSolverContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := NewSolver(decaySystem(), eulerStep{})
	_, err := solver.Run(ctx, State{1}, Grid{T0: 0, TStop: 1, Dt: 0.1}, 1.0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSolverMetricsObserveEverySample(t *testing.T) {
	solver := NewSolver(decaySystem(), eulerStep{})
	counter := &countMetric{}
	solver.AddMetric(counter)

	grid := Grid{T0: 0, TStop: 1, Dt: 0.1}
	_, err := solver.Run(context.Background(), State{1}, grid, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if int(counter.Value()) != grid.Steps() {
		t.Errorf("metric observed %v samples, want %d", counter.Value(), grid.Steps())
	}

	// A second run resets before observing.
	_, err = solver.Run(context.Background(), State{1}, grid, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if int(counter.Value()) != grid.Steps() {
		t.Errorf("metric not reset between runs: %v", counter.Value())
	}
}

type countMetric struct{ n int }

func (c *countMetric) Name() string               { return "count" }
func (c *countMetric) Observe(x State, t float64) { c.n++ }
func (c *countMetric) Value() float64             { return float64(c.n) }
func (c *countMetric) Reset()                     { c.n = 0 }

func TestTail(t *testing.T) {
	s := []float64{1, 2, 3, 4, 5}

	got := Tail(s, 2)
	if len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Errorf("Tail(s, 2) = %v", got)
	}

	if got := Tail(s, 10); len(got) != 5 {
		t.Errorf("Tail larger than slice = %v, want whole slice", got)
	}

	if got := Tail(s, 0); len(got) != 0 {
		t.Errorf("Tail(s, 0) = %v, want empty", got)
	}
}

func TestTrajectoryComponent(t *testing.T) {
	traj := &Trajectory{
		Times:  []float64{0, 1},
		States: []State{{1, 10}, {2, 20}},
	}
	c1 := traj.Component(1)
	if c1[0] != 10 || c1[1] != 20 {
		t.Errorf("Component(1) = %v", c1)
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{3, 4}
	if s.Norm() != 5 {
		t.Errorf("Norm = %v, want 5", s.Norm())
	}

	c := s.Clone()
	c[0] = 99
	if s[0] != 3 {
		t.Error("Clone shares backing array")
	}

	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state reported valid")
	}
}

func TestTimeFirstFuncSystem(t *testing.T) {
	sys := NewTimeFirstFuncSystem(1, func(tm float64, x State, par float64) State {
		return State{tm + par}
	})
	if sys.Order() != TimeFirst {
		t.Error("expected TimeFirst order")
	}
	got := sys.Derive(State{0}, 2.0, 3.0)
	if got[0] != 5.0 {
		t.Errorf("Derive = %v, want time+par = 5", got[0])
	}
}
