package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qdyn/internal/lindblad"
	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
)

// Model assembles a Liouvillian and an initial state. Build is called
// once per run, after any SetParam adjustments.
type Model interface {
	Name() string
	Space() quantum.Space
	Build() (*lindblad.Liouvillian, master.State, error)
}

// flatten exposes a density matrix's row-major backing slice as an
// engine state.
func flatten(m *mat.CDense) master.State {
	raw := m.RawCMatrix()
	if raw.Stride == raw.Cols {
		return master.State(raw.Data[:raw.Rows*raw.Cols])
	}
	out := make(master.State, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		for j := 0; j < raw.Cols; j++ {
			out[i*raw.Cols+j] = m.At(i, j)
		}
	}
	return out
}
