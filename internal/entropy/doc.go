// Package entropy provides the core primitives of the dual-entropy
// meaning-formation model.
//
// The model tracks two coupled quantities over time:
//
//   - [State.Info]: informational entropy, the residual disorder in raw
//     inputs before meaning is assigned
//   - [State.Meaning]: meaning entropy, the residual uncertainty in
//     constructed meaning; its reduction over time is meaning formation
//
// The package defines the fundamental interfaces and types for simulating
// the model:
//
//   - [State]: the two-channel entropy state
//   - [System]: interface for entropy dynamics (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Trajectory]: the full sampled output of one run
//
// # Invariant
//
// Both state channels stay finite and non-negative for every valid
// parameter set. A run that leaves this region fails with
// [InstabilityError]; values are never clamped back.
package entropy
