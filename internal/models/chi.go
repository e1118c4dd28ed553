package models

import (
	"fmt"

	"github.com/astroglia/casim/internal/odesys"
)

// ChI extends the calcium model with endogenous IP3 metabolism:
// agonist-driven PLCbeta production, Ca-dependent PLCdelta production,
// and degradation by IP3-3K and IP3-5P.
// State: [C, h, IP3] in uM (h dimensionless).
// The swept parameter is the fraction of activated astrocyte receptors
// (0..1) driving PLCbeta.
//
// Constants from Stimberg et al (2017).
type ChI struct {
	OmegaC float64 // max CICR rate, 1/s
	OmegaL float64 // ER leak rate, 1/s
	OP     float64 // max SERCA uptake, uM/s
	D1     float64 // IP3 binding affinity, uM
	D2     float64 // Ca inactivation dissociation constant, uM
	D3     float64 // IP3 dissociation constant, uM
	D5     float64 // Ca activation dissociation constant, uM
	CT     float64 // total cell free Ca, uM
	RhoA   float64 // ER to cytosol volume ratio
	O2     float64 // IP3R Ca inhibition binding rate, 1/(uM s)
	KP     float64 // SERCA Ca affinity, uM

	Omega5P    float64 // max IP3-5P degradation rate, 1/s
	O3K        float64 // max IP3-3K degradation rate, uM/s
	K3K        float64 // IP3 affinity of IP3-3K, uM
	KD         float64 // Ca affinity of IP3-3K, uM
	ODelta     float64 // max PLCdelta production rate, uM/s
	KappaDelta float64 // PLCdelta inhibition constant, uM
	KDelta     float64 // Ca affinity of PLCdelta, uM
	OBeta      float64 // max PLCbeta production rate, uM/s
}

func NewChI() *ChI {
	return &ChI{
		OmegaC: 6.0,
		OmegaL: 0.1,
		OP:     0.9,
		D1:     0.13,
		D2:     1.049,
		D3:     0.9434,
		D5:     0.08234,
		CT:     2.0,
		RhoA:   0.185,
		O2:     0.2,
		KP:     0.1,

		Omega5P:    0.1,
		O3K:        4.5,
		K3K:        1.0,
		KD:         0.5,
		ODelta:     0.2,
		KappaDelta: 1.5,
		KDelta:     0.3,
		OBeta:      5.0,
	}
}

func (m *ChI) StateDim() int { return 3 }

func (m *ChI) Derive(x odesys.State, _ float64, gamma float64) odesys.State {
	c, h, p := x[0], x[1], x[2]

	q2 := m.D2 * (p + m.D1) / (p + m.D3)
	mInf := (p / (p + m.D1)) * (c / (c + m.D5))
	hInf := q2 / (q2 + c)
	tauH := 1 / (m.O2 * (q2 + c))

	jR := m.OmegaC * cube(mInf) * cube(h) * (m.CT - (1+m.RhoA)*c)
	jL := m.OmegaL * (m.CT - (1+m.RhoA)*c)
	jP := m.OP * c * c / (m.KP*m.KP + c*c)

	jBeta := m.OBeta * gamma
	jDelta := m.ODelta / (1 + p/m.KappaDelta) * c * c / (c*c + m.KDelta*m.KDelta)
	c4 := c * c * c * c
	kd4 := m.KD * m.KD * m.KD * m.KD
	j3K := m.O3K * c4 / (c4 + kd4) * p / (p + m.K3K)
	j5P := m.Omega5P * p

	return odesys.State{
		jR + jL - jP,
		(hInf - h) / tauH,
		jBeta + jDelta - j3K - j5P,
	}
}

func (m *ChI) DefaultState() odesys.State {
	return odesys.State{0.05, 0.9, 0.1}
}

func (m *ChI) GetParams() map[string]float64 {
	return map[string]float64{
		"omega_c": m.OmegaC, "omega_l": m.OmegaL, "o_p": m.OP,
		"o_beta": m.OBeta, "o_delta": m.ODelta, "o_3k": m.O3K,
		"omega_5p": m.Omega5P, "k_p": m.KP,
	}
}

func (m *ChI) SetParam(name string, v float64) error {
	switch name {
	case "omega_c":
		m.OmegaC = v
	case "omega_l":
		m.OmegaL = v
	case "o_p":
		m.OP = v
	case "o_beta":
		m.OBeta = v
	case "o_delta":
		m.ODelta = v
	case "o_3k":
		m.O3K = v
	case "omega_5p":
		m.Omega5P = v
	case "k_p":
		m.KP = v
	default:
		return fmt.Errorf("chi: unknown parameter %q", name)
	}
	return nil
}
