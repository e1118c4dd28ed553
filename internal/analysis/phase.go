package analysis

import (
	"context"
	"math"
	"strings"

	"github.com/astroglia/casim/internal/odesys"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Series is one plottable point set on a shared scatter canvas.
type Series struct {
	X, Y  []float64
	Glyph rune
}

// GeneratePortrait integrates the system at a fixed parameter value and
// records the (xIdx, yIdx) phase-plane trajectory.
func GeneratePortrait(
	ctx context.Context,
	sys odesys.System,
	integ odesys.Integrator,
	x0 odesys.State,
	grid odesys.Grid,
	par float64,
	xIdx, yIdx int,
) (Series, error) {
	traj, err := odesys.NewSolver(sys, integ).Run(ctx, x0, grid, par)
	if err != nil {
		return Series{}, err
	}
	return Series{
		X:     traj.Component(xIdx),
		Y:     traj.Component(yIdx),
		Glyph: '•',
	}, nil
}

// RenderScatter draws all series on one rune canvas with shared axes.
// Later series overdraw earlier ones, so put trajectory points last and
// reference curves (nullclines) first.
func RenderScatter(series []Series, width, height int) string {
	minX, maxX, minY, maxY, any := bounds(series)
	if !any || width <= 0 || height <= 0 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, s := range series {
		for i := range s.X {
			if !finite(s.X[i]) || !finite(s.Y[i]) {
				continue
			}
			col := int((s.X[i] - minX) / rangeX * float64(width-1))
			row := height - 1 - int((s.Y[i]-minY)/rangeY*float64(height-1))
			if row >= 0 && row < height && col >= 0 && col < width {
				canvas[row][col] = s.Glyph
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func bounds(series []Series) (minX, maxX, minY, maxY float64, any bool) {
	for _, s := range series {
		for i := range s.X {
			x, y := s.X[i], s.Y[i]
			// Nullcline branches can be undefined over part of the range.
			if !finite(x) || !finite(y) {
				continue
			}
			if !any {
				minX, maxX, minY, maxY = x, x, y, y
				any = true
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return
}
