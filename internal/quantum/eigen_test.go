package quantum

import (
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestHermEigenvaluesPauli(t *testing.T) {
	for _, op := range []*mat.CDense{SigmaX(), SigmaY(), SigmaZ()} {
		vals, err := HermEigenvalues(op)
		if err != nil {
			t.Fatalf("eigenvalues failed: %v", err)
		}
		sort.Float64s(vals)
		if math.Abs(vals[0]+1) > 1e-10 || math.Abs(vals[1]-1) > 1e-10 {
			t.Errorf("pauli eigenvalues: got %v, expected [-1, 1]", vals)
		}
	}
}

func TestHermEigenvaluesNumber(t *testing.T) {
	n := 5
	vals, err := HermEigenvalues(Number(n))
	if err != nil {
		t.Fatalf("eigenvalues failed: %v", err)
	}
	sort.Float64s(vals)
	for k := 0; k < n; k++ {
		if math.Abs(vals[k]-float64(k)) > 1e-10 {
			t.Errorf("number eigenvalue %d: got %f", k, vals[k])
		}
	}
}

func TestSqrtmProjector(t *testing.T) {
	// A projector is its own square root.
	rho := DensityMatrix(Ket(3, 1))
	root, err := Sqrtm(rho)
	if err != nil {
		t.Fatalf("sqrtm failed: %v", err)
	}
	matClose(t, root, rho, 1e-10)
}

func TestSqrtmSquares(t *testing.T) {
	// sqrt(m)^2 = m for a PSD matrix with complex off-diagonals.
	m := mat.NewCDense(2, 2, []complex128{
		2, complex(0.3, 0.4),
		complex(0.3, -0.4), 1,
	})
	root, err := Sqrtm(m)
	if err != nil {
		t.Fatalf("sqrtm failed: %v", err)
	}
	matClose(t, Mul(root, root), m, 1e-10)
}
