package observables

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qdyn/internal/master"
)

// TraceError tracks the worst deviation of tr(rho) from one over a run.
type TraceError struct {
	max float64
}

func NewTraceError() *TraceError { return &TraceError{} }

func (m *TraceError) Name() string { return "max_trace_error" }

func (m *TraceError) Observe(x master.State, t float64) {
	e := math.Abs(x.Trace() - 1)
	if e > m.max {
		m.max = e
	}
}

func (m *TraceError) Value() float64 { return m.max }
func (m *TraceError) Reset()         { m.max = 0 }

// FinalPurity records tr(rho^2) of the last observed state.
type FinalPurity struct {
	last float64
	seen bool
}

func NewFinalPurity() *FinalPurity { return &FinalPurity{} }

func (m *FinalPurity) Name() string { return "final_purity" }

func (m *FinalPurity) Observe(x master.State, t float64) {
	m.last = x.Purity()
	m.seen = true
}

func (m *FinalPurity) Value() float64 {
	if !m.seen {
		return 0
	}
	return m.last
}

func (m *FinalPurity) Reset() {
	m.last = 0
	m.seen = false
}

// FinalEntropy records the von Neumann entropy of the last observed
// state. The eigendecomposition runs once, in Value.
type FinalEntropy struct {
	last master.State
}

func NewFinalEntropy() *FinalEntropy { return &FinalEntropy{} }

func (m *FinalEntropy) Name() string { return "final_entropy" }

func (m *FinalEntropy) Observe(x master.State, t float64) {
	m.last = x
}

func (m *FinalEntropy) Value() float64 {
	if m.last == nil {
		return 0
	}
	d := m.last.Dim()
	return VonNeumann(mat.NewCDense(d, d, m.last))
}

func (m *FinalEntropy) Reset() {
	m.last = nil
}
