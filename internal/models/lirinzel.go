package models

import (
	"fmt"
	"math"

	"github.com/astroglia/casim/internal/odesys"
)

// LiRinzel is the two-variable reduction of the De Young-Keizer model
// for IP3-mediated calcium release in a single astrocyte.
// State: [C, h] where C is cytosolic Ca concentration (uM) and h the
// fraction of open IP3 receptor inactivation gates.
// The swept parameter is the IP3 concentration.
//
// Constants from De Pitta et al (2008). K3 selects the oscillation
// regime: 0.1 gives amplitude modulation, 0.051 frequency modulation.
type LiRinzel struct {
	V1 float64 // max CICR rate, 1/s
	V2 float64 // Ca leak rate, 1/s
	V3 float64 // max SERCA pump rate, uM/s
	D1 float64 // IP3 dissociation constant, uM
	D2 float64 // Ca inactivation dissociation constant, uM
	D3 float64 // IP3 dissociation constant, uM
	D5 float64 // Ca activation dissociation constant, uM
	C0 float64 // total free Ca per cytosolic volume, uM
	K3 float64 // SERCA Ca affinity, uM
	C1 float64 // ER to cytosol volume ratio
	A2 float64 // IP3R Ca inhibition binding rate, 1/(uM s)
}

// NewLiRinzel returns the model in the amplitude-modulation regime.
func NewLiRinzel() *LiRinzel {
	return &LiRinzel{
		V1: 6.0,
		V2: 0.11,
		V3: 0.9,
		D1: 0.13,
		D2: 1.049,
		D3: 0.9434,
		D5: 0.08234,
		C0: 2.0,
		K3: 0.1,
		C1: 0.185,
		A2: 0.2,
	}
}

// NewLiRinzelFM returns the model in the frequency-modulation regime.
func NewLiRinzelFM() *LiRinzel {
	m := NewLiRinzel()
	m.K3 = 0.051
	return m
}

func (m *LiRinzel) StateDim() int { return 2 }

func (m *LiRinzel) Derive(x odesys.State, _ float64, ip3 float64) odesys.State {
	c, h := x[0], x[1]

	q2 := m.D2 * (ip3 + m.D1) / (ip3 + m.D3)
	mInf := (ip3 / (ip3 + m.D1)) * (c / (c + m.D5))
	hInf := q2 / (q2 + c)
	tauH := 1 / (m.A2 * (q2 + c))

	jLeak := m.V2 * (m.C0 - (1+m.C1)*c)
	jPump := m.V3 * c * c / (m.K3*m.K3 + c*c)
	jChan := m.V1 * cube(mInf) * cube(h) * (m.C0 - (1+m.C1)*c)

	return odesys.State{
		jChan + jLeak - jPump,
		(hInf - h) / tauH,
	}
}

func (m *LiRinzel) DefaultState() odesys.State {
	return odesys.State{0.2, 0.2}
}

// Nullclines evaluates the two h-nullcline curves of the model in
// closed form over steps values of C in [cStart, cStop], at fixed IP3.
// The first curve is dh/dt = 0, the second dC/dt = 0 solved for h.
func (m *LiRinzel) Nullclines(ip3, cStart, cStop float64, steps int) (c, h1, h2 []float64) {
	c = make([]float64, steps)
	h1 = make([]float64, steps)
	h2 = make([]float64, steps)

	step := 0.0
	if steps > 1 {
		step = (cStop - cStart) / float64(steps-1)
	}
	q2 := m.D2 * (ip3 + m.D1) / (ip3 + m.D3)

	for i := range c {
		ci := cStart + float64(i)*step
		c[i] = ci
		h1[i] = q2 / (q2 + ci)

		mInf := (ip3 / (ip3 + m.D1)) * (ci / (ci + m.D5))
		jPump := m.V3 * ci * ci / (m.K3*m.K3 + ci*ci)
		jLeak := m.V2 * (m.C0 - (1+m.C1)*ci)
		h2[i] = math.Cbrt((jPump - jLeak) / (m.V1 * cube(mInf) * (m.C0 - (1+m.C1)*ci)))
	}
	return c, h1, h2
}

func (m *LiRinzel) GetParams() map[string]float64 {
	return map[string]float64{
		"v1": m.V1, "v2": m.V2, "v3": m.V3,
		"d1": m.D1, "d2": m.D2, "d3": m.D3, "d5": m.D5,
		"c0": m.C0, "k3": m.K3, "c1": m.C1, "a2": m.A2,
	}
}

func (m *LiRinzel) SetParam(name string, v float64) error {
	switch name {
	case "v1":
		m.V1 = v
	case "v2":
		m.V2 = v
	case "v3":
		m.V3 = v
	case "d1":
		m.D1 = v
	case "d2":
		m.D2 = v
	case "d3":
		m.D3 = v
	case "d5":
		m.D5 = v
	case "c0":
		m.C0 = v
	case "k3":
		m.K3 = v
	case "c1":
		m.C1 = v
	case "a2":
		m.A2 = v
	default:
		return fmt.Errorf("lirinzel: unknown parameter %q", name)
	}
	return nil
}

func cube(v float64) float64 { return v * v * v }
