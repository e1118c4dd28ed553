package integrators

import "github.com/astroglia/casim/internal/odesys"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys odesys.System, x odesys.State, t, dt, par float64) odesys.State {
	dx := sys.Derive(x, t, par)
	result := make(odesys.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
