// Package odesys provides the core primitives for simulating
// one-parameter families of ordinary differential equations.
//
// The package defines the fundamental contracts shared by the rest of
// the module:
//
//   - [State]: vector of dynamical variables (concentrations, gating)
//   - [System]: parameterized vector field dX/dt = f(X, t, par)
//   - [Integrator]: fixed-step numerical stepper
//   - [Grid]: uniform time grid over [T0, TStop)
//   - [Solver]: integrates a trajectory over a grid
//
// # Example
//
//	sys := models.NewLiRinzel()
//	solver := odesys.NewSolver(sys, integrators.NewRK4())
//	traj, err := solver.Run(ctx, sys.DefaultState(), grid, 0.4)
//
// # Thread Safety
//
// Solver and Integrator instances are NOT thread-safe: integrators keep
// scratch buffers between steps. Concurrent sweeps must give each
// worker its own integrator (see the bifurcation package).
package odesys
