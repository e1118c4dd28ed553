package analysis

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFFTImpulse(t *testing.T) {
	// The spectrum of an impulse is flat.
	data := []float64{1, 0, 0, 0}
	fft := FFT(data)
	for i, v := range fft {
		if cmplx.Abs(v-complex(1, 0)) > 1e-12 {
			t.Errorf("bin %d = %v, want 1", i, v)
		}
	}
}

func TestFFTSingleTone(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	for i := range ps {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 4 {
		t.Errorf("peak at bin %d, want 4", maxIdx)
	}
}

func TestPadPow2(t *testing.T) {
	if got := len(PadPow2(make([]float64, 100))); got != 128 {
		t.Errorf("padded length = %d, want 128", got)
	}
	if got := len(PadPow2(make([]float64, 64))); got != 64 {
		t.Errorf("power-of-two input repadded to %d", got)
	}
}

func TestDominantFrequency(t *testing.T) {
	// 2 Hz sine sampled at 100 Hz for 8 seconds.
	dt := 0.01
	n := 800
	data := make([]float64, n)
	for i := range data {
		data[i] = 3.0 + math.Sin(2*math.Pi*2.0*float64(i)*dt)
	}

	freq := DominantFrequency(data, dt)
	if math.Abs(freq-2.0) > 0.15 {
		t.Errorf("dominant frequency = %v, want 2.0", freq)
	}
}

func TestDominantFrequencyIgnoresDC(t *testing.T) {
	// A constant signal has no dominant line.
	data := make([]float64, 128)
	for i := range data {
		data[i] = 5.0
	}
	if freq := DominantFrequency(data, 0.01); freq != 0 {
		t.Errorf("constant signal frequency = %v, want 0", freq)
	}
}

func TestDominantFrequencyDegenerateInput(t *testing.T) {
	if DominantFrequency(nil, 0.01) != 0 {
		t.Error("nil input should yield 0")
	}
	if DominantFrequency([]float64{1, 2}, 0) != 0 {
		t.Error("zero dt should yield 0")
	}
}
