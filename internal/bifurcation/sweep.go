package bifurcation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/astroglia/casim/internal/odesys"
)

// Sweep-specification errors. These are fatal and reported before any
// integration begins.
var (
	ErrInvalidSpec = errors.New("bifurcation: invalid sweep specification")

	// ErrRelaxWindow is returned when the relax window exceeds the
	// number of grid samples. The window is never clamped: a silently
	// shortened transient cut would corrupt the diagram.
	ErrRelaxWindow = errors.New("bifurcation: relax window exceeds trajectory length")
)

// Spec describes one parameter sweep.
type Spec struct {
	ParStart float64
	ParStop  float64
	ParTot   int

	Grid odesys.Grid

	// Relax is the count of trailing trajectory samples kept for
	// extremum detection; the leading transient is discarded. Negative
	// values (the -t_relax offset convention) are folded to their
	// magnitude.
	Relax int

	// StateIndex selects the analyzed component. Calcium concentration
	// is component 0 in every bundled model.
	StateIndex int

	// X0 is the cold-start state reused for every parameter value.
	X0 odesys.State

	// Continuation seeds each parameter value from the previous value's
	// final state instead of X0. Iterations are then order-dependent,
	// so the sweep runs sequentially.
	Continuation bool

	// Strict aborts the sweep on the first integration failure instead
	// of recording it and moving on.
	Strict bool

	// Workers caps the pool size; 0 means NumCPU.
	Workers int
}

func (s Spec) relaxSamples() int {
	if s.Relax < 0 {
		return -s.Relax
	}
	return s.Relax
}

func (s Spec) Validate() error {
	if s.ParTot < 1 {
		return fmt.Errorf("%w: par_tot must be >= 1, got %d", ErrInvalidSpec, s.ParTot)
	}
	if s.ParTot > 1 && s.ParStop < s.ParStart {
		return fmt.Errorf("%w: par_stop %g below par_start %g", ErrInvalidSpec, s.ParStop, s.ParStart)
	}
	if err := s.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if s.relaxSamples() > s.Grid.Steps() {
		return fmt.Errorf("%w: %d > %d samples", ErrRelaxWindow, s.relaxSamples(), s.Grid.Steps())
	}
	if s.StateIndex < 0 || s.StateIndex >= len(s.X0) {
		return fmt.Errorf("%w: state index %d out of range for %d-dim state", ErrInvalidSpec, s.StateIndex, len(s.X0))
	}
	return nil
}

// Params returns the ParTot linearly spaced parameter values, inclusive
// of both endpoints. ParTot == 1 yields exactly {ParStart}.
func (s Spec) Params() []float64 {
	ps := make([]float64, s.ParTot)
	if s.ParTot == 1 {
		ps[0] = s.ParStart
		return ps
	}
	step := (s.ParStop - s.ParStart) / float64(s.ParTot-1)
	for i := range ps {
		ps[i] = s.ParStart + float64(i)*step
	}
	ps[s.ParTot-1] = s.ParStop
	return ps
}

// Failure records one skipped parameter value.
type Failure struct {
	Param float64
	Err   error
}

// Diagram is the sweep dataset: parallel slices pairing each detected
// extremum with its parameter value, in ascending sweep order. Per
// parameter value, maxima precede minima, each in time order.
type Diagram struct {
	Params []float64
	Values []float64

	// Succeeded counts parameter values that integrated cleanly;
	// callers needing completeness compare it against Spec.ParTot.
	Succeeded int
	Failures  []Failure
}

// Sweeper runs bifurcation sweeps for one system. Integrators carry
// scratch state, so each worker builds its own through newIntegrator.
type Sweeper struct {
	sys           odesys.System
	newIntegrator func() odesys.Integrator
}

func New(sys odesys.System, newIntegrator func() odesys.Integrator) *Sweeper {
	return &Sweeper{sys: sys, newIntegrator: newIntegrator}
}

type sweepOut struct {
	values []float64
	err    error
}

// Run executes the sweep described by spec and assembles the diagram.
// Specification errors are fatal; per-parameter integration failures
// are skipped and recorded unless spec.Strict is set.
func (sw *Sweeper) Run(ctx context.Context, spec Spec) (*Diagram, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	params := spec.Params()
	outs := make([]sweepOut, len(params))

	if spec.Continuation || spec.workers(len(params)) == 1 {
		if err := sw.runSequential(ctx, spec, params, outs); err != nil {
			return nil, err
		}
	} else {
		if err := sw.runParallel(ctx, spec, params, outs); err != nil {
			return nil, err
		}
	}

	if spec.Strict {
		// Surface the integration failure itself, not the cancellation
		// it triggered in sibling workers.
		for i, out := range outs {
			if out.err != nil && !errors.Is(out.err, context.Canceled) {
				return nil, fmt.Errorf("sweep aborted at par=%g: %w", params[i], out.err)
			}
		}
	}

	diagram := &Diagram{}
	for i, out := range outs {
		if out.err != nil {
			diagram.Failures = append(diagram.Failures, Failure{Param: params[i], Err: out.err})
			continue
		}
		diagram.Succeeded++
		for _, v := range out.values {
			diagram.Params = append(diagram.Params, params[i])
			diagram.Values = append(diagram.Values, v)
		}
	}

	return diagram, nil
}

func (sw *Sweeper) runSequential(ctx context.Context, spec Spec, params []float64, outs []sweepOut) error {
	solver := odesys.NewSolver(sw.sys, sw.newIntegrator())
	x0 := spec.X0.Clone()

	for i, par := range params {
		traj, err := solver.Run(ctx, x0, spec.Grid, par)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			outs[i] = sweepOut{err: err}
			if spec.Strict {
				return nil
			}
			if spec.Continuation {
				// A diverged run cannot seed the next one.
				x0 = spec.X0.Clone()
			}
			continue
		}
		outs[i] = sweepOut{values: extremaOf(traj, spec)}
		if spec.Continuation {
			x0 = traj.States[traj.Len()-1].Clone()
		}
	}
	return nil
}

func (sw *Sweeper) runParallel(parent context.Context, spec Spec, params []float64, outs []sweepOut) error {
	workers := spec.workers(len(params))
	jobs := make(chan int)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			solver := odesys.NewSolver(sw.sys, sw.newIntegrator())
			for i := range jobs {
				traj, err := solver.Run(ctx, spec.X0, spec.Grid, params[i])
				if err != nil {
					outs[i] = sweepOut{err: err}
					if spec.Strict {
						// Stop feeding jobs; in-flight runs drain.
						cancel()
					}
					continue
				}
				outs[i] = sweepOut{values: extremaOf(traj, spec)}
			}
		}()
	}

feed:
	for i := range params {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return parent.Err()
}

func (s Spec) workers(jobs int) int {
	w := s.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > jobs {
		w = jobs
	}
	if w < 1 {
		w = 1
	}
	return w
}

// extremaOf reduces one trajectory to its relaxed-window extremum
// values: maxima first, then minima, each in time order.
func extremaOf(traj *odesys.Trajectory, spec Spec) []float64 {
	window := odesys.Tail(traj.Component(spec.StateIndex), spec.relaxSamples())
	out := values(window, LocalMaxima(window))
	return append(out, values(window, LocalMinima(window))...)
}
