package observables

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
)

// CoherencePart selects which scalar to take from the reduced
// off-diagonal element rho_ge.
type CoherencePart int

const (
	CoherenceAbs CoherencePart = iota
	CoherenceRe
	CoherenceIm
)

// Coherence reduces the state to one qubit and reads the off-diagonal
// element rho_ge, the standard decoherence indicator.
type Coherence struct {
	sp   quantum.Space
	site int
	part CoherencePart
}

func NewCoherence(sp quantum.Space, site int, part CoherencePart) (*Coherence, error) {
	if site < 0 || site >= len(sp) || sp[site] != 2 {
		return nil, fmt.Errorf("observables: factor %d is not a qubit", site)
	}
	return &Coherence{sp: sp, site: site, part: part}, nil
}

func (c *Coherence) Name() string {
	switch c.part {
	case CoherenceRe:
		return "coherence_re"
	case CoherenceIm:
		return "coherence_im"
	default:
		return "coherence"
	}
}

func (c *Coherence) Eval(x master.State, t float64) float64 {
	d := x.Dim()
	rho := mat.NewCDense(d, d, x)

	red, err := c.sp.PartialTrace(rho, []int{c.site})
	if err != nil {
		return 0
	}

	v := red.At(0, 1)
	switch c.part {
	case CoherenceRe:
		return real(v)
	case CoherenceIm:
		return imag(v)
	default:
		return cmplx.Abs(v)
	}
}
