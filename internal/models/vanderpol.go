package models

import "github.com/astroglia/casim/internal/odesys"

// VanDerPol is the standard relaxation oscillator, kept as a reference
// system with a known limit cycle for exercising the sweep engine.
// State: [x, y] where y = dx/dt. The swept parameter is mu.
type VanDerPol struct{}

func NewVanDerPol() *VanDerPol { return &VanDerPol{} }

func (v *VanDerPol) StateDim() int { return 2 }

func (v *VanDerPol) Derive(s odesys.State, _ float64, mu float64) odesys.State {
	x, y := s[0], s[1]
	return odesys.State{y, mu*(1-x*x)*y - x}
}

func (v *VanDerPol) DefaultState() odesys.State {
	return odesys.State{2.0, 0.0}
}
