package observables

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
)

// Concurrence is the Wootters concurrence of a qubit pair:
// C = max(0, l1 - l2 - l3 - l4) with l_i the decreasing square roots of
// the eigenvalues of sqrt(rho) rho~ sqrt(rho), where
// rho~ = (sy x sy) rho* (sy x sy), all on the reduced two-qubit state.
type Concurrence struct {
	sp   quantum.Space
	pair [2]int
	yy   *mat.CDense
}

func NewConcurrence(sp quantum.Space, siteA, siteB int) (*Concurrence, error) {
	if siteA >= siteB {
		return nil, fmt.Errorf("observables: qubit pair must be ordered, got (%d,%d)", siteA, siteB)
	}
	for _, s := range []int{siteA, siteB} {
		if s < 0 || s >= len(sp) || sp[s] != 2 {
			return nil, fmt.Errorf("observables: factor %d is not a qubit", s)
		}
	}
	return &Concurrence{
		sp:   sp,
		pair: [2]int{siteA, siteB},
		yy:   quantum.Kron(quantum.SigmaY(), quantum.SigmaY()),
	}, nil
}

func (Concurrence) Name() string { return "concurrence" }

func (c *Concurrence) Eval(x master.State, t float64) float64 {
	d := x.Dim()
	rho := mat.NewCDense(d, d, x)

	red, err := c.sp.PartialTrace(rho, c.pair[:])
	if err != nil {
		return math.NaN()
	}

	return Wootters(red, c.yy)
}

// Wootters computes the concurrence of a 4x4 two-qubit density matrix.
func Wootters(rho, yy *mat.CDense) float64 {
	// rho~ = (sy x sy) rho* (sy x sy)
	conj := mat.NewCDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			conj.Set(i, j, cmplx.Conj(rho.At(i, j)))
		}
	}
	tilde := quantum.Mul(quantum.Mul(yy, conj), yy)

	root, err := quantum.Sqrtm(rho)
	if err != nil {
		return math.NaN()
	}

	r := quantum.Mul(quantum.Mul(root, tilde), root)
	vals, err := quantum.HermEigenvalues(r)
	if err != nil {
		return math.NaN()
	}

	// Eigenvalues come back ascending; the decreasing square roots are
	// l[3] >= l[2] >= l[1] >= l[0].
	l := make([]float64, 4)
	for i, v := range vals {
		if v > 0 {
			l[i] = math.Sqrt(v)
		}
	}

	conc := l[3] - l[2] - l[1] - l[0]
	if conc < 0 {
		return 0
	}
	return conc
}
