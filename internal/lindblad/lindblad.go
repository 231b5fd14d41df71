// Package lindblad assembles the right-hand side of a Lindblad master
// equation from Hamiltonian terms and dissipation channels:
//
//	drho/dt = -i[H(t), rho] + sum_k gamma_k(t) (L_k rho L_k^dag - 1/2 {L_k^dag L_k, rho})
//
// The Liouvillian implements [master.System] over the flattened
// density-matrix state.
package lindblad

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
	"github.com/san-kum/qdyn/internal/schedule"
)

// Term is one Hamiltonian contribution. A nil Coeff means a constant
// unit coefficient. The operator must be Hermitian and coefficients are
// real-valued, so H(t) stays Hermitian for all t.
type Term struct {
	Name  string
	Op    *mat.CDense
	Coeff schedule.Schedule
}

// Channel is one dissipation channel: a collapse operator with its
// precomputed dagger products and a time-dependent rate. Rate(t) must
// be non-negative.
type Channel struct {
	Name  string
	L     *mat.CDense
	Ldag  *mat.CDense
	LdagL *mat.CDense
	Rate  schedule.Schedule
}

// NewChannel precomputes L^dag and L^dag L for a collapse operator.
func NewChannel(name string, l *mat.CDense, rate schedule.Schedule) Channel {
	ldag := quantum.Dagger(l)
	return Channel{
		Name:  name,
		L:     l,
		Ldag:  ldag,
		LdagL: quantum.Mul(ldag, l),
		Rate:  rate,
	}
}

// Liouvillian is the full equation of motion. It is not safe for
// concurrent Derive calls; the scratch matrices are shared.
type Liouvillian struct {
	dim      int
	terms    []Term
	channels []Channel

	// scratch, sized dim x dim on first Derive
	ht, scaled       *mat.CDense
	hr, rh           *mat.CDense
	lr, sand, nr, rn *mat.CDense
}

func New(dim int) *Liouvillian {
	return &Liouvillian{dim: dim}
}

func (l *Liouvillian) Dim() int { return l.dim }

func (l *Liouvillian) Channels() []Channel { return l.channels }

func (l *Liouvillian) Terms() []Term { return l.terms }

// AddTerm appends a Hamiltonian term. Pass a nil coeff for a constant
// term.
func (l *Liouvillian) AddTerm(name string, op *mat.CDense, coeff schedule.Schedule) error {
	r, c := op.Dims()
	if r != l.dim || c != l.dim {
		return fmt.Errorf("lindblad: term %s is %dx%d, liouvillian has dimension %d", name, r, c, l.dim)
	}
	l.terms = append(l.terms, Term{Name: name, Op: op, Coeff: coeff})
	return nil
}

// AddChannel appends a dissipation channel built from the collapse
// operator.
func (l *Liouvillian) AddChannel(name string, op *mat.CDense, rate schedule.Schedule) error {
	r, c := op.Dims()
	if r != l.dim || c != l.dim {
		return fmt.Errorf("lindblad: channel %s is %dx%d, liouvillian has dimension %d", name, r, c, l.dim)
	}
	l.channels = append(l.channels, NewChannel(name, op, rate))
	return nil
}

func (l *Liouvillian) ensureScratch() {
	if l.ht != nil {
		return
	}
	d := l.dim
	l.ht = mat.NewCDense(d, d, nil)
	l.scaled = mat.NewCDense(d, d, nil)
	l.hr = mat.NewCDense(d, d, nil)
	l.rh = mat.NewCDense(d, d, nil)
	l.lr = mat.NewCDense(d, d, nil)
	l.sand = mat.NewCDense(d, d, nil)
	l.nr = mat.NewCDense(d, d, nil)
	l.rn = mat.NewCDense(d, d, nil)
}

// HamiltonianAt assembles H(t) as a fresh matrix.
func (l *Liouvillian) HamiltonianAt(t float64) *mat.CDense {
	h := mat.NewCDense(l.dim, l.dim, nil)
	tmp := mat.NewCDense(l.dim, l.dim, nil)
	for _, term := range l.terms {
		c := 1.0
		if term.Coeff != nil {
			c = term.Coeff.At(t)
		}
		quantum.ScaleInto(tmp, complex(c, 0), term.Op)
		quantum.AddInto(h, h, tmp)
	}
	return h
}

// Derive computes drho/dt at time t. The returned state is freshly
// allocated; x is read through a zero-copy matrix view.
func (l *Liouvillian) Derive(x master.State, t float64) master.State {
	l.ensureScratch()
	d := l.dim

	rho := mat.NewCDense(d, d, x)

	result := make(master.State, d*d)
	drho := mat.NewCDense(d, d, result)

	// -i [H(t), rho]
	l.ht.Zero()
	for _, term := range l.terms {
		c := 1.0
		if term.Coeff != nil {
			c = term.Coeff.At(t)
		}
		if c == 0 {
			continue
		}
		quantum.ScaleInto(l.scaled, complex(c, 0), term.Op)
		quantum.AddInto(l.ht, l.ht, l.scaled)
	}
	quantum.MulInto(l.hr, l.ht, rho)
	quantum.MulInto(l.rh, rho, l.ht)
	quantum.SubInto(l.hr, l.hr, l.rh)
	quantum.ScaleInto(drho, complex(0, -1), l.hr)

	// sum_k gamma_k(t) (L rho L^dag - 1/2 {L^dag L, rho})
	for _, ch := range l.channels {
		gamma := ch.Rate.At(t)
		if gamma == 0 {
			continue
		}
		g := complex(gamma, 0)

		quantum.MulInto(l.lr, ch.L, rho)
		quantum.MulInto(l.sand, l.lr, ch.Ldag)
		quantum.MulInto(l.nr, ch.LdagL, rho)
		quantum.MulInto(l.rn, rho, ch.LdagL)

		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				result[i*d+j] += g * (l.sand.At(i, j) - (l.nr.At(i, j)+l.rn.At(i, j))/2)
			}
		}
	}

	return result
}
