package bifurcation

import (
	"strings"
	"testing"
)

func TestDiagramToASCII(t *testing.T) {
	d := &Diagram{
		Params: []float64{0.1, 0.2, 0.3},
		Values: []float64{0.5, 0.9, 0.1},
	}

	out := d.ToASCII(40, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("rendered %d rows, want 10", len(lines))
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("plotted %d points, want 3", strings.Count(out, "•"))
	}
}

func TestDiagramToASCIIEmpty(t *testing.T) {
	d := &Diagram{}
	if out := d.ToASCII(40, 10); out != "" {
		t.Errorf("empty diagram rendered %q", out)
	}
}

func TestDiagramToASCIIConstantValue(t *testing.T) {
	d := &Diagram{
		Params: []float64{0.1, 0.2},
		Values: []float64{0.5, 0.5},
	}
	out := d.ToASCII(20, 5)
	if !strings.Contains(out, "•") {
		t.Error("constant-value diagram plotted nothing")
	}
}
