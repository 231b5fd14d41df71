package quantum

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// Identity returns the n x n identity.
func Identity(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// SigmaX returns the Pauli X matrix.
func SigmaX() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{
		0, 1,
		1, 0,
	})
}

// SigmaY returns the Pauli Y matrix.
func SigmaY() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{
		0, complex(0, -1),
		complex(0, 1), 0,
	})
}

// SigmaZ returns the Pauli Z matrix with |e><e| - |g><g| sign, so the
// excited state (index 1) has eigenvalue +1.
func SigmaZ() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{
		-1, 0,
		0, 1,
	})
}

// SigmaPlus returns the raising operator |e><g|.
func SigmaPlus() *mat.CDense {
	m := mat.NewCDense(2, 2, nil)
	m.Set(1, 0, 1)
	return m
}

// SigmaMinus returns the lowering operator |g><e|.
func SigmaMinus() *mat.CDense {
	m := mat.NewCDense(2, 2, nil)
	m.Set(0, 1, 1)
	return m
}

// QubitNumber returns sigma+ sigma- = |e><e|.
func QubitNumber() *mat.CDense {
	m := mat.NewCDense(2, 2, nil)
	m.Set(1, 1, 1)
	return m
}

// Destroy returns the truncated bosonic annihilation operator on n levels:
// a|k> = sqrt(k)|k-1>.
func Destroy(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for k := 1; k < n; k++ {
		m.Set(k-1, k, complex(math.Sqrt(float64(k)), 0))
	}
	return m
}

// Create returns the truncated creation operator, the dagger of Destroy.
func Create(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for k := 1; k < n; k++ {
		m.Set(k, k-1, complex(math.Sqrt(float64(k)), 0))
	}
	return m
}

// Number returns the bosonic number operator a^dagger a on n levels.
func Number(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for k := 0; k < n; k++ {
		m.Set(k, k, complex(float64(k), 0))
	}
	return m
}

// Kron returns the Kronecker product of a sequence of operators, first
// factor slowest-varying. CDense carries storage only, so the product
// is built by explicit loops.
func Kron(ops ...*mat.CDense) *mat.CDense {
	acc := Identity(1)
	for _, op := range ops {
		ar, ac := acc.Dims()
		br, bc := op.Dims()
		next := mat.NewCDense(ar*br, ac*bc, nil)
		for i := 0; i < ar; i++ {
			for j := 0; j < ac; j++ {
				v := acc.At(i, j)
				if v == 0 {
					continue
				}
				for k := 0; k < br; k++ {
					for l := 0; l < bc; l++ {
						next.Set(i*br+k, j*bc+l, v*op.At(k, l))
					}
				}
			}
		}
		acc = next
	}
	return acc
}

// Dagger returns the conjugate transpose.
func Dagger(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplx.Conj(a.At(i, j)))
		}
	}
	return out
}

// MulInto computes dst = a*b through cblas128. dst must not alias a
// or b.
func MulInto(dst, a, b *mat.CDense) {
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, a.RawCMatrix(), b.RawCMatrix(), 0, dst.RawCMatrix())
}

// AddInto computes dst = a+b elementwise. dst may alias a or b.
func AddInto(dst, a, b *mat.CDense) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, a.At(i, j)+b.At(i, j))
		}
	}
}

// SubInto computes dst = a-b elementwise. dst may alias a or b.
func SubInto(dst, a, b *mat.CDense) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, a.At(i, j)-b.At(i, j))
		}
	}
}

// ScaleInto computes dst = f*a elementwise. dst may alias a.
func ScaleInto(dst *mat.CDense, f complex128, a *mat.CDense) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, f*a.At(i, j))
		}
	}
}

// Mul returns a*b as a fresh matrix.
func Mul(a, b *mat.CDense) *mat.CDense {
	ra, _ := a.Dims()
	_, cb := b.Dims()
	out := mat.NewCDense(ra, cb, nil)
	MulInto(out, a, b)
	return out
}

// Add returns a+b as a fresh matrix.
func Add(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	AddInto(out, a, b)
	return out
}

// Scale returns f*a as a fresh matrix.
func Scale(f complex128, a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	ScaleInto(out, f, a)
	return out
}

// Commutator returns [a,b] = ab - ba.
func Commutator(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	ab := mat.NewCDense(r, c, nil)
	MulInto(ab, a, b)
	ba := mat.NewCDense(r, c, nil)
	MulInto(ba, b, a)
	out := mat.NewCDense(r, c, nil)
	SubInto(out, ab, ba)
	return out
}

// Anticommutator returns {a,b} = ab + ba.
func Anticommutator(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	ab := mat.NewCDense(r, c, nil)
	MulInto(ab, a, b)
	ba := mat.NewCDense(r, c, nil)
	MulInto(ba, b, a)
	out := mat.NewCDense(r, c, nil)
	AddInto(out, ab, ba)
	return out
}

// Trace returns tr(a).
func Trace(a *mat.CDense) complex128 {
	n, _ := a.Dims()
	var sum complex128
	for i := 0; i < n; i++ {
		sum += a.At(i, i)
	}
	return sum
}

// Expectation returns tr(rho*op) without forming the product matrix.
func Expectation(rho, op *mat.CDense) complex128 {
	n, _ := rho.Dims()
	var sum complex128
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			sum += rho.At(i, k) * op.At(k, i)
		}
	}
	return sum
}

// ExpectationReal returns Re tr(rho*op), the physical value for
// Hermitian op.
func ExpectationReal(rho, op *mat.CDense) float64 {
	return real(Expectation(rho, op))
}

// IsHermitian reports whether a equals its dagger within tol.
func IsHermitian(a *mat.CDense, tol float64) bool {
	r, c := a.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			if cmplx.Abs(a.At(i, j)-cmplx.Conj(a.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}
