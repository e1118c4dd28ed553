package models

import (
	"context"
	"math"
	"testing"

	"github.com/astroglia/casim/internal/integrators"
	"github.com/astroglia/casim/internal/odesys"
)

func run(t *testing.T, sys odesys.System, x0 odesys.State, tstop, par float64) *odesys.Trajectory {
	t.Helper()
	solver := odesys.NewSolver(sys, integrators.NewRK4())
	traj, err := solver.Run(context.Background(), x0, odesys.Grid{T0: 0, TStop: tstop, Dt: 0.01}, par)
	if err != nil {
		t.Fatalf("integration failed: %v", err)
	}
	return traj
}

func spreadTail(traj *odesys.Trajectory, idx, frac int) float64 {
	c := traj.Component(idx)
	tail := c[len(c)-len(c)/frac:]
	lo, hi := tail[0], tail[0]
	for _, v := range tail {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}

func TestLiRinzelFixedPointBelowThreshold(t *testing.T) {
	m := NewLiRinzel()
	traj := run(t, m, m.DefaultState(), 200, 0.1)

	// Last quarter of the trace should be flat at the resting state.
	if s := spreadTail(traj, 0, 4); s > 1e-3 {
		t.Errorf("calcium still moving at subthreshold IP3: spread %v", s)
	}

	final := traj.States[traj.Len()-1][0]
	if final < 0 || final > 0.2 {
		t.Errorf("resting calcium %v outside expected range", final)
	}
}

func TestLiRinzelOscillatesInsideWindow(t *testing.T) {
	m := NewLiRinzel()
	traj := run(t, m, m.DefaultState(), 200, 0.45)

	if s := spreadTail(traj, 0, 2); s < 0.1 {
		t.Errorf("expected sustained calcium oscillation, spread %v", s)
	}
}

func TestLiRinzelCalciumStaysBounded(t *testing.T) {
	m := NewLiRinzel()
	traj := run(t, m, m.DefaultState(), 200, 0.5)

	for _, s := range traj.States {
		c := s[0]
		if c < 0 || c > m.C0/(1+m.C1)+0.1 {
			t.Fatalf("calcium %v escaped physical bounds", c)
		}
		h := s[1]
		if h < 0 || h > 1 {
			t.Fatalf("gating fraction %v outside [0, 1]", h)
		}
	}
}

func TestLiRinzelFMRegimeDiffers(t *testing.T) {
	am := NewLiRinzel()
	fm := NewLiRinzelFM()
	if am.K3 == fm.K3 {
		t.Fatal("FM regime should change the SERCA affinity")
	}

	// The FM oscillation window sits higher on the IP3 axis: at 0.8 the
	// FM model spikes while at 0.2, well below its onset, it is flat.
	fmHigh := run(t, fm, fm.DefaultState(), 200, 0.8)
	fmLow := run(t, fm, fm.DefaultState(), 200, 0.2)

	if spreadTail(fmHigh, 0, 2) < 0.1 {
		t.Error("FM model quiescent at IP3 = 0.8")
	}
	if spreadTail(fmLow, 0, 4) > 1e-3 {
		t.Error("FM model oscillating at IP3 = 0.2")
	}
}

func TestLiRinzelNullclines(t *testing.T) {
	m := NewLiRinzel()
	c, h1, h2 := m.Nullclines(0.3, 0.01, 0.7, 100)

	if len(c) != 100 || len(h1) != 100 || len(h2) != 100 {
		t.Fatalf("expected 100 points per curve, got %d/%d/%d", len(c), len(h1), len(h2))
	}
	if c[0] != 0.01 || math.Abs(c[99]-0.7) > 1e-12 {
		t.Errorf("calcium window [%v, %v], want [0.01, 0.7]", c[0], c[99])
	}

	// The h-nullcline is monotonically decreasing in C.
	for i := 1; i < len(h1); i++ {
		if h1[i] >= h1[i-1] {
			t.Fatal("dh/dt nullcline not decreasing")
		}
	}
}

func TestLiRinzelConfigurable(t *testing.T) {
	m := NewLiRinzel()
	if err := m.SetParam("k3", 0.051); err != nil {
		t.Fatal(err)
	}
	if m.GetParams()["k3"] != 0.051 {
		t.Error("parameter update not visible")
	}
	if err := m.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestChIQuiescentWithoutStimulus(t *testing.T) {
	m := NewChI()
	traj := run(t, m, m.DefaultState(), 300, 0.0)

	if s := spreadTail(traj, 0, 4); s > 1e-3 {
		t.Errorf("unstimulated ChI calcium still moving: spread %v", s)
	}

	// Without PLCbeta drive, residual IP3 settles low.
	ip3 := traj.States[traj.Len()-1][2]
	if ip3 > 0.5 {
		t.Errorf("resting IP3 %v too high", ip3)
	}
}

func TestChIStimulusRaisesIP3(t *testing.T) {
	m := NewChI()
	rest := run(t, m, m.DefaultState(), 300, 0.0)
	driven := run(t, m, m.DefaultState(), 300, 0.1)

	restIP3 := rest.States[rest.Len()-1][2]
	meanDriven := 0.0
	c := driven.Component(2)
	for _, v := range c[len(c)/2:] {
		meanDriven += v
	}
	meanDriven /= float64(len(c) - len(c)/2)

	if meanDriven <= restIP3 {
		t.Errorf("receptor activation did not raise IP3: %v <= %v", meanDriven, restIP3)
	}
}

func TestChIStateStaysPhysical(t *testing.T) {
	m := NewChI()
	traj := run(t, m, m.DefaultState(), 300, 0.2)

	for _, s := range traj.States {
		if s[0] < 0 || s[2] < 0 {
			t.Fatalf("negative concentration in state %v", s)
		}
		if s[1] < 0 || s[1] > 1 {
			t.Fatalf("gating fraction %v outside [0, 1]", s[1])
		}
	}
}

func TestTMSynapseSteadyStateRates(t *testing.T) {
	m := NewTMSynapse()

	low := run(t, m, m.DefaultState(), 5, 1.0)
	high := run(t, m, m.DefaultState(), 5, 20.0)

	uLow := low.States[low.Len()-1][0]
	uHigh := high.States[high.Len()-1][0]

	// Facilitation: higher rates drive u toward U0 and beyond rest.
	if uHigh <= uLow {
		t.Errorf("release probability not facilitating: %v <= %v", uHigh, uLow)
	}

	xLow := low.States[low.Len()-1][1]
	xHigh := high.States[high.Len()-1][1]

	// Depression: higher rates deplete the vesicle pool.
	if xHigh >= xLow {
		t.Errorf("vesicle pool not depressing: %v >= %v", xHigh, xLow)
	}
}

func TestTMSynapseBounds(t *testing.T) {
	m := NewTMSynapse()
	traj := run(t, m, m.DefaultState(), 5, 50.0)

	for _, s := range traj.States {
		if s[0] < 0 || s[0] > 1 || s[1] < 0 || s[1] > 1 {
			t.Fatalf("u or x left [0, 1]: %v", s)
		}
		if s[2] < 0 {
			t.Fatalf("negative neurotransmitter concentration: %v", s[2])
		}
	}
}

func TestVanDerPolLimitCycle(t *testing.T) {
	m := NewVanDerPol()
	traj := run(t, m, m.DefaultState(), 100, 1.0)

	// The cycle amplitude for mu = 1 is close to 2.
	peak := 0.0
	c := traj.Component(0)
	for _, v := range c[len(c)/2:] {
		peak = math.Max(peak, math.Abs(v))
	}
	if math.Abs(peak-2.0) > 0.1 {
		t.Errorf("limit cycle amplitude %v, want about 2", peak)
	}
}
