package metrics

import "github.com/astroglia/casim/internal/odesys"

// Mean tracks the running average of one state component.
type Mean struct {
	index   int
	sum     float64
	samples int
}

func NewMean(index int) *Mean {
	return &Mean{index: index}
}

func (m *Mean) Name() string { return "mean" }

func (m *Mean) Observe(x odesys.State, t float64) {
	if m.index >= len(x) {
		return
	}
	m.sum += x[m.index]
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}
