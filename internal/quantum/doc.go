// Package quantum provides the finite-dimensional Hilbert-space toolbox
// used by the simulation engine: tensor-product spaces, local operators,
// and the dense complex linear algebra the observables are built on.
//
// Matrices are gonum [mat.CDense] values, which carry storage and views
// only; products go through [MulInto] (cblas128 under the hood) and the
// elementwise helpers. The basis convention for a two-level system is
// index 0 = ground, index 1 = excited, so [SigmaPlus] = |e><g| raises
// and the qubit number operator is SigmaPlus·SigmaMinus. Bosonic modes
// are truncated to a finite ladder.
//
// Composite systems are described by a [Space], an ordered list of factor
// dimensions. The first factor carries the slowest-varying index, the
// row-major [Kron] ordering.
//
// gonum carries no complex eigensolver, so Hermitian eigendecompositions
// ([HermEigenvalues], [Sqrtm]) go through the real symmetric embedding
// [[Re -Im],[Im Re]] and [mat.EigenSym]; eigenvalues of the embedding
// come out doubled.
package quantum
