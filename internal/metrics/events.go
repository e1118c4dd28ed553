package metrics

import "github.com/astroglia/casim/internal/odesys"

// Events counts upward threshold crossings of one state component,
// i.e. the discrete calcium-event count of a trace.
type Events struct {
	index     int
	threshold float64
	count     int
	prev      float64
	seen      bool
}

func NewEvents(index int, threshold float64) *Events {
	return &Events{index: index, threshold: threshold}
}

func (e *Events) Name() string { return "events" }

func (e *Events) Observe(x odesys.State, t float64) {
	if e.index >= len(x) {
		return
	}
	v := x[e.index]
	if e.seen && e.prev < e.threshold && v >= e.threshold {
		e.count++
	}
	e.prev = v
	e.seen = true
}

func (e *Events) Value() float64 {
	return float64(e.count)
}

func (e *Events) Reset() {
	e.count = 0
	e.prev = 0
	e.seen = false
}
