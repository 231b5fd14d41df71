package models

import (
	"fmt"

	"github.com/san-kum/qdyn/internal/lindblad"
	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
	"github.com/san-kum/qdyn/internal/schedule"
)

// ChainCavity is an open chain of qubits with nearest-neighbour
// exchange coupling, all coupled to one truncated cavity mode:
//
//	H = sum_i wq/2 sz_i + wc a'a
//	  + J sum_i (s+_i s-_{i+1} + h.c.)
//	  + g sum_i (a s+_i + a' s-_i)
//
// Six phenomenological dissipation channels act on it, each with its
// own hand-tuned time profile:
//
//	1. cavity photon loss    L = a         kappa(t) smoothstep ramp-on
//	2. incoherent pump       L = a'        eta(t) gaussian pulse
//	3. relaxation, qubit 1   L = s-_1      gamma1(t) sinusoidal
//	4. dephasing, qubit 1    L = sz_1      gphi(t) exponential decay
//	5. collective relaxation L = sum s-_i  constant
//	6. collective dephasing  L = sum sz_i  linear ramp
//
// Initial state: qubit 1 excited, the rest ground, cavity vacuum.
type ChainCavity struct {
	NQubits      int
	CavityLevels int

	OmegaQ float64 // qubit level splitting
	OmegaC float64 // cavity frequency
	J      float64 // nearest-neighbour exchange
	G      float64 // qubit-cavity coupling

	Kappa       float64 // cavity loss plateau
	KappaCenter float64 // loss switch-on time
	KappaWidth  float64
	Eta         float64 // pump pulse amplitude
	EtaCenter   float64
	EtaSigma    float64
	Gamma1      float64 // qubit-1 relaxation offset
	Gamma1Depth float64 // modulation depth, <= Gamma1
	Gamma1Freq  float64
	GammaPhi    float64 // qubit-1 dephasing at t=0
	GammaPhiTau float64 // dephasing decay rate
	GammaColl   float64 // collective relaxation
	GammaDeph   float64 // collective dephasing at end of window
	RampEnd     float64 // collective dephasing ramp window
}

func NewChainCavity() *ChainCavity {
	return &ChainCavity{
		NQubits:      5,
		CavityLevels: 5,
		OmegaQ:       1.0,
		OmegaC:       1.1,
		J:            0.2,
		G:            0.35,
		Kappa:        0.25,
		KappaCenter:  1.0,
		KappaWidth:   0.3,
		Eta:          0.15,
		EtaCenter:    3.0,
		EtaSigma:     0.5,
		Gamma1:       0.12,
		Gamma1Depth:  0.08,
		Gamma1Freq:   1.5,
		GammaPhi:     0.2,
		GammaPhiTau:  0.4,
		GammaColl:    0.03,
		GammaDeph:    0.1,
		RampEnd:      10.0,
	}
}

func (c *ChainCavity) Name() string { return "chain_cavity" }

func (c *ChainCavity) Space() quantum.Space {
	sp := make(quantum.Space, c.NQubits+1)
	for i := 0; i < c.NQubits; i++ {
		sp[i] = 2
	}
	sp[c.NQubits] = c.CavityLevels
	return sp
}

func (c *ChainCavity) Build() (*lindblad.Liouvillian, master.State, error) {
	if c.NQubits < 2 {
		return nil, nil, fmt.Errorf("%w: chain needs at least 2 qubits, got %d", master.ErrParameterBounds, c.NQubits)
	}
	if c.CavityLevels < 2 {
		return nil, nil, fmt.Errorf("%w: cavity needs at least 2 levels, got %d", master.ErrParameterBounds, c.CavityLevels)
	}
	if c.Gamma1Depth > c.Gamma1 {
		return nil, nil, fmt.Errorf("%w: gamma1 modulation depth %.3f exceeds offset %.3f", master.ErrParameterBounds, c.Gamma1Depth, c.Gamma1)
	}

	sp := c.Space()
	cav := c.NQubits
	liou := lindblad.New(sp.Dim())

	a := sp.MustEmbed(quantum.Destroy(c.CavityLevels), cav)
	ad := sp.MustEmbed(quantum.Create(c.CavityLevels), cav)

	// Local terms.
	for i := 0; i < c.NQubits; i++ {
		sz := sp.MustEmbed(quantum.SigmaZ(), i)
		if err := liou.AddTerm(fmt.Sprintf("sz_%d", i+1), quantum.Scale(complex(c.OmegaQ/2, 0), sz), nil); err != nil {
			return nil, nil, err
		}
	}
	num := sp.MustEmbed(quantum.Number(c.CavityLevels), cav)
	if err := liou.AddTerm("cavity", quantum.Scale(complex(c.OmegaC, 0), num), nil); err != nil {
		return nil, nil, err
	}

	// Exchange coupling along the open chain.
	for i := 0; i < c.NQubits-1; i++ {
		pi := sp.MustEmbed(quantum.SigmaPlus(), i)
		mi := sp.MustEmbed(quantum.SigmaMinus(), i)
		pj := sp.MustEmbed(quantum.SigmaPlus(), i+1)
		mj := sp.MustEmbed(quantum.SigmaMinus(), i+1)

		hop := quantum.Add(quantum.Mul(pi, mj), quantum.Mul(pj, mi))
		if err := liou.AddTerm(fmt.Sprintf("exchange_%d%d", i+1, i+2), quantum.Scale(complex(c.J, 0), hop), nil); err != nil {
			return nil, nil, err
		}
	}

	// Qubit-cavity coupling, rotating-wave form.
	for i := 0; i < c.NQubits; i++ {
		pi := sp.MustEmbed(quantum.SigmaPlus(), i)
		mi := sp.MustEmbed(quantum.SigmaMinus(), i)

		jc := quantum.Add(quantum.Mul(a, pi), quantum.Mul(ad, mi))
		if err := liou.AddTerm(fmt.Sprintf("jc_%d", i+1), quantum.Scale(complex(c.G, 0), jc), nil); err != nil {
			return nil, nil, err
		}
	}

	// Dissipation channels.
	if err := liou.AddChannel("cavity_loss", a, schedule.NewSmoothstep(0, c.Kappa, c.KappaCenter, c.KappaWidth)); err != nil {
		return nil, nil, err
	}
	if err := liou.AddChannel("cavity_pump", ad, schedule.NewGaussianPulse(c.Eta, c.EtaCenter, c.EtaSigma)); err != nil {
		return nil, nil, err
	}
	if err := liou.AddChannel("relax_q1", sp.MustEmbed(quantum.SigmaMinus(), 0), schedule.NewSinusoidal(c.Gamma1, c.Gamma1Depth, c.Gamma1Freq)); err != nil {
		return nil, nil, err
	}
	if err := liou.AddChannel("dephase_q1", sp.MustEmbed(quantum.SigmaZ(), 0), schedule.NewExponential(c.GammaPhi, c.GammaPhiTau)); err != nil {
		return nil, nil, err
	}

	collRelax := sp.MustEmbed(quantum.SigmaMinus(), 0)
	collDeph := sp.MustEmbed(quantum.SigmaZ(), 0)
	for i := 1; i < c.NQubits; i++ {
		collRelax = quantum.Add(collRelax, sp.MustEmbed(quantum.SigmaMinus(), i))
		collDeph = quantum.Add(collDeph, sp.MustEmbed(quantum.SigmaZ(), i))
	}
	if err := liou.AddChannel("collective_relax", collRelax, schedule.NewConstant(c.GammaColl)); err != nil {
		return nil, nil, err
	}
	if err := liou.AddChannel("collective_dephase", collDeph, schedule.NewRamp(0, c.GammaDeph, 0, c.RampEnd)); err != nil {
		return nil, nil, err
	}

	// Qubit 1 excited, rest ground, cavity vacuum.
	indices := make([]int, c.NQubits+1)
	indices[0] = 1
	rho0 := quantum.DensityMatrix(sp.KetKron(indices...))

	return liou, flatten(rho0), nil
}

// GetParams implements master.Configurable.
func (c *ChainCavity) GetParams() map[string]float64 {
	return map[string]float64{
		"qubits":        float64(c.NQubits),
		"cavity_levels": float64(c.CavityLevels),
		"omega_q":       c.OmegaQ,
		"omega_c":       c.OmegaC,
		"j":             c.J,
		"g":             c.G,
		"kappa":         c.Kappa,
		"eta":           c.Eta,
		"gamma1":        c.Gamma1,
		"gamma_phi":     c.GammaPhi,
		"gamma_coll":    c.GammaColl,
		"gamma_deph":    c.GammaDeph,
	}
}

// SetParam implements master.Configurable.
func (c *ChainCavity) SetParam(name string, value float64) error {
	switch name {
	case "qubits":
		c.NQubits = int(value)
	case "cavity_levels":
		c.CavityLevels = int(value)
	case "omega_q":
		c.OmegaQ = value
	case "omega_c":
		c.OmegaC = value
	case "j":
		c.J = value
	case "g":
		c.G = value
	case "kappa":
		c.Kappa = value
	case "eta":
		c.Eta = value
	case "gamma1":
		c.Gamma1 = value
	case "gamma_phi":
		c.GammaPhi = value
	case "gamma_coll":
		c.GammaColl = value
	case "gamma_deph":
		c.GammaDeph = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
