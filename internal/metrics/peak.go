package metrics

import "github.com/astroglia/casim/internal/odesys"

// Peak tracks the maximum of one state component over a run.
type Peak struct {
	index int
	max   float64
	seen  bool
}

func NewPeak(index int) *Peak {
	return &Peak{index: index}
}

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(x odesys.State, t float64) {
	if p.index >= len(x) {
		return
	}
	v := x[p.index]
	if !p.seen || v > p.max {
		p.max = v
		p.seen = true
	}
}

func (p *Peak) Value() float64 {
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}
