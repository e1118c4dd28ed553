package odesys

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is a one-parameter family of autonomous or time-dependent
// vector fields. The swept parameter is always passed explicitly;
// models must not read it from shared mutable state.
type System interface {
	Derive(x State, t, par float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt, par float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol, par float64) (State, float64, error)
}

// Configurable is implemented by models whose physical constants can be
// inspected and tuned at runtime (used by the live view and presets).
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Metric observes every trajectory sample and reduces it to a scalar.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// ArgOrder declares the argument convention of a plain vector-field
// function wrapped by FuncSystem.
type ArgOrder int

const (
	StateFirst ArgOrder = iota // f(x, t, par)
	TimeFirst                  // f(t, x, par)
)

type StateFirstFunc func(x State, t, par float64) State

type TimeFirstFunc func(t float64, x State, par float64) State

// FuncSystem adapts a plain function to the System interface.
type FuncSystem struct {
	dim   int
	order ArgOrder
	fn    StateFirstFunc
}

func NewFuncSystem(dim int, fn StateFirstFunc) *FuncSystem {
	return &FuncSystem{dim: dim, order: StateFirst, fn: fn}
}

func NewTimeFirstFuncSystem(dim int, fn TimeFirstFunc) *FuncSystem {
	return &FuncSystem{
		dim:   dim,
		order: TimeFirst,
		fn: func(x State, t, par float64) State {
			return fn(t, x, par)
		},
	}
}

func (s *FuncSystem) Derive(x State, t, par float64) State { return s.fn(x, t, par) }
func (s *FuncSystem) StateDim() int                        { return s.dim }
func (s *FuncSystem) Order() ArgOrder                      { return s.order }
