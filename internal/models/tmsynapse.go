package models

import (
	"fmt"

	"github.com/astroglia/casim/internal/odesys"
)

// TMSynapse is a rate-based rendition of the Tsodyks-Markram synapse
// with facilitation, depression, and neurotransmitter clearance.
// State: [u, x, Y]: release probability, available vesicle fraction,
// extracellular neurotransmitter concentration (uM).
// The swept parameter is the mean presynaptic firing rate in Hz.
type TMSynapse struct {
	OmegaF float64 // facilitation decay rate, 1/s
	OmegaD float64 // depression recovery rate, 1/s
	OmegaC float64 // neurotransmitter clearance rate, 1/s
	U0     float64 // resting release probability
	RhoC   float64 // vesicle to extracellular volume ratio
	YT     float64 // total vesicular neurotransmitter, uM
}

func NewTMSynapse() *TMSynapse {
	return &TMSynapse{
		OmegaF: 3.33,
		OmegaD: 2.0,
		OmegaC: 40.0,
		U0:     0.6,
		RhoC:   0.005,
		YT:     500e3,
	}
}

func (m *TMSynapse) StateDim() int { return 3 }

func (m *TMSynapse) Derive(s odesys.State, _ float64, rate float64) odesys.State {
	u, x, y := s[0], s[1], s[2]

	release := u * x * rate

	return odesys.State{
		-m.OmegaF*u + m.U0*(1-u)*rate,
		m.OmegaD*(1-x) - release,
		-m.OmegaC*y + m.RhoC*m.YT*release,
	}
}

func (m *TMSynapse) DefaultState() odesys.State {
	return odesys.State{0, 1, 0}
}

func (m *TMSynapse) GetParams() map[string]float64 {
	return map[string]float64{
		"omega_f": m.OmegaF, "omega_d": m.OmegaD, "omega_c": m.OmegaC,
		"u0": m.U0, "rho_c": m.RhoC, "y_t": m.YT,
	}
}

func (m *TMSynapse) SetParam(name string, v float64) error {
	switch name {
	case "omega_f":
		m.OmegaF = v
	case "omega_d":
		m.OmegaD = v
	case "omega_c":
		m.OmegaC = v
	case "u0":
		m.U0 = v
	case "rho_c":
		m.RhoC = v
	case "y_t":
		m.YT = v
	default:
		return fmt.Errorf("tmsynapse: unknown parameter %q", name)
	}
	return nil
}
