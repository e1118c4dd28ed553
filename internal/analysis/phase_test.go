package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/astroglia/casim/internal/integrators"
	"github.com/astroglia/casim/internal/odesys"
)

func TestGeneratePortrait(t *testing.T) {
	circle := odesys.NewFuncSystem(2, func(x odesys.State, tm, par float64) odesys.State {
		return odesys.State{-x[1], x[0]}
	})

	s, err := GeneratePortrait(context.Background(), circle, integrators.NewRK4(),
		odesys.State{1, 0}, odesys.Grid{T0: 0, TStop: 10, Dt: 0.01}, 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.X) != len(s.Y) {
		t.Fatal("axis lengths differ")
	}

	// All points stay on the unit circle.
	for i := range s.X {
		r := math.Hypot(s.X[i], s.Y[i])
		if math.Abs(r-1) > 1e-6 {
			t.Fatalf("point %d at radius %v", i, r)
		}
	}
}

func TestRenderScatterDimensions(t *testing.T) {
	s := []Series{{X: []float64{0, 1}, Y: []float64{0, 1}, Glyph: '•'}}
	out := RenderScatter(s, 40, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("rendered %d rows, want 10", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 40 {
			t.Fatalf("row width %d, want 40", len([]rune(line)))
		}
	}
	if !strings.ContainsRune(out, '•') {
		t.Error("no points plotted")
	}
}

func TestRenderScatterSkipsNonFinite(t *testing.T) {
	s := []Series{{
		X:     []float64{0, math.NaN(), 1},
		Y:     []float64{0, 1, math.Inf(1)},
		Glyph: 'x',
	}}
	out := RenderScatter(s, 20, 5)
	if strings.Count(out, "x") != 1 {
		t.Errorf("expected exactly the finite point, got %d marks", strings.Count(out, "x"))
	}
}

func TestRenderScatterEmpty(t *testing.T) {
	if out := RenderScatter(nil, 20, 5); out != "" {
		t.Errorf("expected empty render, got %q", out)
	}
	all := []Series{{X: []float64{math.NaN()}, Y: []float64{1}}}
	if out := RenderScatter(all, 20, 5); out != "" {
		t.Errorf("all-NaN series should render nothing, got %q", out)
	}
}
