package viz

import "github.com/guptarohit/asciigraph"

// PlotTrace renders one component trace as an ASCII line chart.
func PlotTrace(data []float64, caption string, width, height int) string {
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}

// PlotTraces renders several component traces on one chart.
func PlotTraces(data [][]float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}
