package observables

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
)

// Entropy is the von Neumann entropy S = -tr(rho ln rho) of the full
// state, with the 0*ln(0) limit taken as 0.
type Entropy struct{}

func NewEntropy() *Entropy { return &Entropy{} }

func (Entropy) Name() string { return "entropy" }

func (Entropy) Eval(x master.State, t float64) float64 {
	d := x.Dim()
	rho := mat.NewCDense(d, d, x)
	return VonNeumann(rho)
}

// VonNeumann computes -sum lambda ln lambda over the eigenvalues of a
// Hermitian PSD matrix. Small negative eigenvalues from integrator
// error are skipped.
func VonNeumann(rho *mat.CDense) float64 {
	vals, err := quantum.HermEigenvalues(rho)
	if err != nil {
		return math.NaN()
	}

	s := 0.0
	for _, v := range vals {
		if v > 1e-15 {
			s -= v * math.Log(v)
		}
	}
	return s
}
