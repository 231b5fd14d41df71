package models

import (
	"fmt"

	"github.com/san-kum/qdyn/internal/lindblad"
	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
	"github.com/san-kum/qdyn/internal/schedule"
)

// TwoQubit is a pair of exchange-coupled qubits with constant
// relaxation and dephasing on each. The exchange swaps the excitation
// back and forth, building and destroying entanglement; the smallest
// system whose concurrence is nontrivial.
type TwoQubit struct {
	OmegaQ   float64
	J        float64
	Gamma    float64
	GammaPhi float64
}

func NewTwoQubit() *TwoQubit {
	return &TwoQubit{
		OmegaQ:   1.0,
		J:        0.5,
		Gamma:    0.05,
		GammaPhi: 0.02,
	}
}

func (m *TwoQubit) Name() string { return "two_qubit" }

func (m *TwoQubit) Space() quantum.Space { return quantum.Space{2, 2} }

func (m *TwoQubit) Build() (*lindblad.Liouvillian, master.State, error) {
	sp := m.Space()
	liou := lindblad.New(sp.Dim())

	for i := 0; i < 2; i++ {
		sz := sp.MustEmbed(quantum.SigmaZ(), i)
		if err := liou.AddTerm(fmt.Sprintf("sz_%d", i+1), quantum.Scale(complex(m.OmegaQ/2, 0), sz), nil); err != nil {
			return nil, nil, err
		}
	}

	p0 := sp.MustEmbed(quantum.SigmaPlus(), 0)
	m0 := sp.MustEmbed(quantum.SigmaMinus(), 0)
	p1 := sp.MustEmbed(quantum.SigmaPlus(), 1)
	m1 := sp.MustEmbed(quantum.SigmaMinus(), 1)

	hop := quantum.Add(quantum.Mul(p0, m1), quantum.Mul(p1, m0))
	if err := liou.AddTerm("exchange", quantum.Scale(complex(m.J, 0), hop), nil); err != nil {
		return nil, nil, err
	}

	for i := 0; i < 2; i++ {
		if m.Gamma > 0 {
			if err := liou.AddChannel(fmt.Sprintf("relax_q%d", i+1), sp.MustEmbed(quantum.SigmaMinus(), i), schedule.NewConstant(m.Gamma)); err != nil {
				return nil, nil, err
			}
		}
		if m.GammaPhi > 0 {
			if err := liou.AddChannel(fmt.Sprintf("dephase_q%d", i+1), sp.MustEmbed(quantum.SigmaZ(), i), schedule.NewConstant(m.GammaPhi)); err != nil {
				return nil, nil, err
			}
		}
	}

	rho0 := quantum.DensityMatrix(sp.KetKron(1, 0))
	return liou, flatten(rho0), nil
}

// GetParams implements master.Configurable.
func (m *TwoQubit) GetParams() map[string]float64 {
	return map[string]float64{
		"omega_q":   m.OmegaQ,
		"j":         m.J,
		"gamma":     m.Gamma,
		"gamma_phi": m.GammaPhi,
	}
}

// SetParam implements master.Configurable.
func (m *TwoQubit) SetParam(name string, value float64) error {
	switch name {
	case "omega_q":
		m.OmegaQ = value
	case "j":
		m.J = value
	case "gamma":
		m.Gamma = value
	case "gamma_phi":
		m.GammaPhi = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
