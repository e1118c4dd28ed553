// Package models bundles the astrocyte and reference dynamical systems.
//
// Every model carries its physical constants as struct fields, never
// package-level state, and takes the swept parameter as an argument on
// each Derive call, so concurrent sweep iterations cannot interfere
// through hidden configuration.
//
// Bundled systems:
//
//   - [LiRinzel]: two-variable calcium model, swept parameter = IP3
//   - [ChI]: three-variable astrocyte model with IP3 metabolism,
//     swept parameter = fraction of activated receptors
//   - [TMSynapse]: mean-field depressing/facilitating synapse,
//     swept parameter = presynaptic rate
//   - [VanDerPol]: reference limit-cycle oscillator, swept parameter = mu
package models
