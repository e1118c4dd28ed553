// Package bifurcation builds bifurcation diagrams for one-parameter
// families of ODE systems.
//
// A diagram records the asymptotic local extrema of one state component
// against a swept parameter, revealing regime changes such as the onset
// of calcium oscillations:
//
//   - [LocalMaxima], [LocalMinima]: strict interior extrema of a sequence
//   - [Spec]: sweep description (parameter range, grid, relax window)
//   - [Sweeper]: runs the sweep, one independent integration per value
//   - [Diagram]: the (parameter, extremum) dataset
//
// Each parameter value is integrated cold from the same initial state,
// the transient is discarded, and only the trailing relax window is
// scanned for extrema. Sweep iterations share no mutable state, so they
// run on a worker pool; results are reassembled in sweep order.
package bifurcation
