// Package observables derives scalar time series and run-level metrics
// from density-matrix states.
package observables

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
)

// Population is the excited-state population <sigma+ sigma-> of one
// qubit factor.
type Population struct {
	name string
	op   *mat.CDense
}

func NewPopulation(sp quantum.Space, site int) (*Population, error) {
	if site < 0 || site >= len(sp) || sp[site] != 2 {
		return nil, fmt.Errorf("observables: factor %d is not a qubit", site)
	}
	op, err := sp.Embed(quantum.QubitNumber(), site)
	if err != nil {
		return nil, err
	}
	return &Population{name: "population", op: op}, nil
}

func (p *Population) Name() string { return p.name }

func (p *Population) Eval(x master.State, t float64) float64 {
	d := x.Dim()
	rho := mat.NewCDense(d, d, x)
	return quantum.ExpectationReal(rho, p.op)
}

// Photons is the mean occupation <a^dagger a> of a bosonic factor.
type Photons struct {
	op *mat.CDense
}

func NewPhotons(sp quantum.Space, site int) (*Photons, error) {
	if site < 0 || site >= len(sp) {
		return nil, fmt.Errorf("observables: factor %d out of range", site)
	}
	op, err := sp.Embed(quantum.Number(sp[site]), site)
	if err != nil {
		return nil, err
	}
	return &Photons{op: op}, nil
}

func (p *Photons) Name() string { return "photons" }

func (p *Photons) Eval(x master.State, t float64) float64 {
	d := x.Dim()
	rho := mat.NewCDense(d, d, x)
	return quantum.ExpectationReal(rho, p.op)
}

// Purity is tr(rho^2).
type Purity struct{}

func NewPurity() *Purity { return &Purity{} }

func (Purity) Name() string { return "purity" }

func (Purity) Eval(x master.State, t float64) float64 {
	return x.Purity()
}
