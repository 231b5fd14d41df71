// Package models provides the physical systems available to the
// simulator. Each model assembles a Lindblad [lindblad.Liouvillian]
// and an initial density matrix:
//
//   - [ChainCavity]: five exchange-coupled qubits sharing a lossy
//     cavity, six time-dependent dissipation channels
//   - [TwoQubit]: two exchange-coupled qubits with relaxation and
//     dephasing, the smallest system with nontrivial concurrence
//   - [JaynesCummings]: one qubit and one cavity mode, vacuum Rabi
//     oscillations
//
// Models implement [master.Configurable] for parameter adjustment from
// the CLI and config files.
package models
