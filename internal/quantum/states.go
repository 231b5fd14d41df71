package quantum

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Ket returns the basis column vector |k> in an n-dimensional space.
func Ket(n, k int) *mat.CDense {
	v := mat.NewCDense(n, 1, nil)
	v.Set(k, 0, 1)
	return v
}

// KetKron returns the tensor product of basis kets, one index per
// factor of the space.
func (s Space) KetKron(indices ...int) *mat.CDense {
	kets := make([]*mat.CDense, len(indices))
	for i, k := range indices {
		kets[i] = Ket(s[i], k)
	}
	return Kron(kets...)
}

// DensityMatrix returns |psi><psi| for a (not necessarily normalized)
// ket, normalizing so the result has unit trace.
func DensityMatrix(psi *mat.CDense) *mat.CDense {
	n, _ := psi.Dims()
	norm2 := 0.0
	for i := 0; i < n; i++ {
		v := psi.At(i, 0)
		norm2 += real(v)*real(v) + imag(v)*imag(v)
	}

	rho := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rho.Set(i, j, psi.At(i, 0)*cmplx.Conj(psi.At(j, 0))/complex(norm2, 0))
		}
	}
	return rho
}

// BellPair returns the two-qubit density matrix of
// (|ge> + |eg>)/sqrt(2).
func BellPair() *mat.CDense {
	psi := mat.NewCDense(4, 1, nil)
	psi.Set(1, 0, complex(1/math.Sqrt2, 0)) // |g e>
	psi.Set(2, 0, complex(1/math.Sqrt2, 0)) // |e g>
	return DensityMatrix(psi)
}

// Vacuum returns |0><0| on an n-level bosonic ladder.
func Vacuum(n int) *mat.CDense {
	return DensityMatrix(Ket(n, 0))
}

// Coherent returns |alpha><alpha| truncated to n levels, renormalized
// over the kept amplitudes.
func Coherent(n int, alpha complex128) *mat.CDense {
	psi := mat.NewCDense(n, 1, nil)
	amp := complex(1, 0)
	for k := 0; k < n; k++ {
		if k > 0 {
			amp *= alpha / complex(math.Sqrt(float64(k)), 0)
		}
		psi.Set(k, 0, amp)
	}
	return DensityMatrix(psi)
}

// Thermal returns a thermal bosonic state with mean occupation nbar,
// truncated to n levels and renormalized.
func Thermal(n int, nbar float64) *mat.CDense {
	rho := mat.NewCDense(n, n, nil)
	if nbar <= 0 {
		rho.Set(0, 0, 1)
		return rho
	}

	ratio := nbar / (1 + nbar)
	z := 0.0
	p := 1.0
	for k := 0; k < n; k++ {
		rho.Set(k, k, complex(p, 0))
		z += p
		p *= ratio
	}
	for k := 0; k < n; k++ {
		rho.Set(k, k, rho.At(k, k)/complex(z, 0))
	}
	return rho
}
