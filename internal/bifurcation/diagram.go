package bifurcation

import "strings"

// ToASCII renders the diagram as a terminal scatter plot, parameter on
// the horizontal axis, extremum value on the vertical.
func (d *Diagram) ToASCII(width, height int) string {
	if len(d.Values) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minPar, maxPar := d.Params[0], d.Params[0]
	minVal, maxVal := d.Values[0], d.Values[0]
	for i := range d.Values {
		if d.Params[i] < minPar {
			minPar = d.Params[i]
		}
		if d.Params[i] > maxPar {
			maxPar = d.Params[i]
		}
		if d.Values[i] < minVal {
			minVal = d.Values[i]
		}
		if d.Values[i] > maxVal {
			maxVal = d.Values[i]
		}
	}
	if maxPar == minPar {
		maxPar = minPar + 1
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range d.Values {
		col := int((d.Params[i] - minPar) / (maxPar - minPar) * float64(width-1))
		row := height - 1 - int((d.Values[i]-minVal)/(maxVal-minVal)*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
