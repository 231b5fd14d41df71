// Package master provides core simulation primitives for Lindblad
// master-equation dynamics.
//
// The package defines the fundamental interfaces and types for numerical
// integration of density-matrix ODEs (drho/dt = L(rho, t)):
//
//   - [State]: flattened complex density matrix (row-major d x d)
//   - [System]: interface for the equation of motion (a Liouvillian)
//   - [Integrator]: numerical stepper interface
//   - [Observable]: per-sample scalar derived from a state
//   - [Simulator]: orchestrates a single run
//
// # Example
//
//	liou, rho0, _ := models.NewChainCavity().Build()
//	integ := integrators.NewRK4()
//	sim := master.New(liou, integ)
//	result, _ := sim.Run(ctx, rho0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Observable implementations
// must be safe for concurrent Eval calls; [EvalSeries] fans evaluation
// out over samples.
package master
