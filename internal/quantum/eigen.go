package quantum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// embedHermitian maps an n x n Hermitian complex matrix to its 2n x 2n
// real symmetric embedding [[Re -Im],[Im Re]]. The embedding is an
// algebra homomorphism, so functions of the matrix can be computed in
// real arithmetic and read back from the blocks.
func embedHermitian(a *mat.CDense) *mat.SymDense {
	n, _ := a.Dims()
	data := make([]float64, 4*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			re := real(a.At(i, j))
			im := imag(a.At(i, j))
			data[i*2*n+j] = re
			data[i*2*n+j+n] = -im
			data[(i+n)*2*n+j] = im
			data[(i+n)*2*n+j+n] = re
		}
	}
	return mat.NewSymDense(2*n, data)
}

// HermEigenvalues returns the n eigenvalues of a Hermitian matrix in
// ascending order. The embedding doubles every eigenvalue; adjacent
// pairs of the 2n sorted values are averaged back down.
func HermEigenvalues(a *mat.CDense) ([]float64, error) {
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("quantum: matrix is %dx%d, not square", n, c)
	}

	var eig mat.EigenSym
	if !eig.Factorize(embedHermitian(a), false) {
		return nil, fmt.Errorf("quantum: eigendecomposition failed")
	}

	doubled := eig.Values(nil)
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = (doubled[2*i] + doubled[2*i+1]) / 2
	}
	return vals, nil
}

// hermFunc applies a real scalar function to a Hermitian matrix through
// the eigendecomposition of its real embedding.
func hermFunc(a *mat.CDense, f func(float64) float64) (*mat.CDense, error) {
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("quantum: matrix is %dx%d, not square", n, c)
	}

	var eig mat.EigenSym
	if !eig.Factorize(embedHermitian(a), true) {
		return nil, fmt.Errorf("quantum: eigendecomposition failed")
	}

	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// V f(D) V^T in the embedding.
	m := 2 * n
	scaled := mat.NewDense(m, m, nil)
	for j := 0; j < m; j++ {
		fv := f(vals[j])
		for i := 0; i < m; i++ {
			scaled.Set(i, j, vecs.At(i, j)*fv)
		}
	}
	var fs mat.Dense
	fs.Mul(scaled, vecs.T())

	// Read the complex result off the embedding blocks.
	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, complex(fs.At(i, j), fs.At(i+n, j)))
		}
	}
	return out, nil
}

// Sqrtm returns the positive-semidefinite square root of a Hermitian
// PSD matrix. Small negative eigenvalues from integrator error are
// clipped to zero.
func Sqrtm(a *mat.CDense) (*mat.CDense, error) {
	return hermFunc(a, func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return math.Sqrt(v)
	})
}
