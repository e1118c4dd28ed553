// Package analysis provides frequency and phase-plane analysis of
// simulated calcium traces.
//
//   - [PowerSpectrum], [DominantFrequency]: oscillation frequency of a
//     trace, separating amplitude- from frequency-modulated regimes
//   - [GeneratePortrait]: 2D phase-plane trajectories
//   - [RenderScatter]: terminal rendering of portraits and curves
package analysis
