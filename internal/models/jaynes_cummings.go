package models

import (
	"fmt"

	"github.com/san-kum/qdyn/internal/lindblad"
	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
	"github.com/san-kum/qdyn/internal/schedule"
)

// JaynesCummings is one qubit coupled to one truncated cavity mode in
// the rotating-wave approximation. On resonance the excitation Rabi
// oscillates between qubit and cavity at frequency g/pi; cavity loss
// damps it.
type JaynesCummings struct {
	CavityLevels int
	OmegaQ       float64
	OmegaC       float64
	G            float64
	Kappa        float64
}

func NewJaynesCummings() *JaynesCummings {
	return &JaynesCummings{
		CavityLevels: 8,
		OmegaQ:       1.0,
		OmegaC:       1.0,
		G:            0.3,
		Kappa:        0.02,
	}
}

func (m *JaynesCummings) Name() string { return "jaynes_cummings" }

func (m *JaynesCummings) Space() quantum.Space {
	return quantum.Space{2, m.CavityLevels}
}

func (m *JaynesCummings) Build() (*lindblad.Liouvillian, master.State, error) {
	if m.CavityLevels < 2 {
		return nil, nil, fmt.Errorf("%w: cavity needs at least 2 levels, got %d", master.ErrParameterBounds, m.CavityLevels)
	}

	sp := m.Space()
	liou := lindblad.New(sp.Dim())

	sz := sp.MustEmbed(quantum.SigmaZ(), 0)
	if err := liou.AddTerm("sz", quantum.Scale(complex(m.OmegaQ/2, 0), sz), nil); err != nil {
		return nil, nil, err
	}

	num := sp.MustEmbed(quantum.Number(m.CavityLevels), 1)
	if err := liou.AddTerm("cavity", quantum.Scale(complex(m.OmegaC, 0), num), nil); err != nil {
		return nil, nil, err
	}

	a := sp.MustEmbed(quantum.Destroy(m.CavityLevels), 1)
	ad := sp.MustEmbed(quantum.Create(m.CavityLevels), 1)
	splus := sp.MustEmbed(quantum.SigmaPlus(), 0)
	sminus := sp.MustEmbed(quantum.SigmaMinus(), 0)

	jc := quantum.Add(quantum.Mul(a, splus), quantum.Mul(ad, sminus))
	if err := liou.AddTerm("jc", quantum.Scale(complex(m.G, 0), jc), nil); err != nil {
		return nil, nil, err
	}

	if m.Kappa > 0 {
		if err := liou.AddChannel("cavity_loss", a, schedule.NewConstant(m.Kappa)); err != nil {
			return nil, nil, err
		}
	}

	rho0 := quantum.DensityMatrix(sp.KetKron(1, 0))
	return liou, flatten(rho0), nil
}

// GetParams implements master.Configurable.
func (m *JaynesCummings) GetParams() map[string]float64 {
	return map[string]float64{
		"cavity_levels": float64(m.CavityLevels),
		"omega_q":       m.OmegaQ,
		"omega_c":       m.OmegaC,
		"g":             m.G,
		"kappa":         m.Kappa,
	}
}

// SetParam implements master.Configurable.
func (m *JaynesCummings) SetParam(name string, value float64) error {
	switch name {
	case "cavity_levels":
		m.CavityLevels = int(value)
	case "omega_q":
		m.OmegaQ = value
	case "omega_c":
		m.OmegaC = value
	case "g":
		m.G = value
	case "kappa":
		m.Kappa = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
