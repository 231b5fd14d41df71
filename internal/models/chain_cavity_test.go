package models

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/quantum"
)

func TestChainCavityBuild(t *testing.T) {
	m := NewChainCavity()
	liou, rho0, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// 2^5 qubits x 5 cavity levels.
	if liou.Dim() != 160 {
		t.Errorf("dimension: got %d, expected 160", liou.Dim())
	}
	if len(rho0) != 160*160 {
		t.Errorf("state length: got %d, expected %d", len(rho0), 160*160)
	}

	if len(liou.Channels()) != 6 {
		t.Errorf("channels: got %d, expected 6", len(liou.Channels()))
	}

	if math.Abs(rho0.Trace()-1) > 1e-12 {
		t.Errorf("initial trace: got %f", rho0.Trace())
	}
}

func TestChainCavityHamiltonianHermitian(t *testing.T) {
	m := NewChainCavity()
	m.NQubits = 3
	m.CavityLevels = 3

	liou, _, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for _, tt := range []float64{0, 1.7, 9.3} {
		if !quantum.IsHermitian(liou.HamiltonianAt(tt), 1e-10) {
			t.Errorf("H(%.1f) not Hermitian", tt)
		}
	}
}

func TestChainCavityDeriveTracePreserving(t *testing.T) {
	m := NewChainCavity()
	m.NQubits = 2
	m.CavityLevels = 3

	liou, rho0, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	d := liou.Dim()
	for _, tt := range []float64{0, 0.5, 3.0, 8.0} {
		dx := liou.Derive(rho0, tt)
		var tr complex128
		for i := 0; i < d; i++ {
			tr += dx[i*d+i]
		}
		if cmplx.Abs(tr) > 1e-10 {
			t.Errorf("tr(drho/dt) at t=%.1f: %v", tt, tr)
		}
	}
}

func TestChainCavityInitialExcitation(t *testing.T) {
	m := NewChainCavity()
	m.NQubits = 2
	m.CavityLevels = 2

	_, rho0, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// |e g 0> sits at index 4 of the 8-dim space (qubit 1 slowest).
	d := 8
	if math.Abs(real(rho0[4*d+4])-1) > 1e-12 {
		t.Errorf("excitation not on qubit 1: diagonal %v", rho0[4*d+4])
	}
}

func TestChainCavityValidation(t *testing.T) {
	m := NewChainCavity()
	m.Gamma1Depth = m.Gamma1 + 0.1
	if _, _, err := m.Build(); !errors.Is(err, master.ErrParameterBounds) {
		t.Errorf("modulation depth exceeding offset: got %v, expected parameter bounds error", err)
	}

	m = NewChainCavity()
	m.NQubits = 1
	if _, _, err := m.Build(); !errors.Is(err, master.ErrParameterBounds) {
		t.Errorf("single-qubit chain: got %v, expected parameter bounds error", err)
	}

	m = NewChainCavity()
	m.CavityLevels = 1
	if _, _, err := m.Build(); !errors.Is(err, master.ErrParameterBounds) {
		t.Errorf("one-level cavity: got %v, expected parameter bounds error", err)
	}
}

func TestChainCavitySetParam(t *testing.T) {
	m := NewChainCavity()
	if err := m.SetParam("g", 0.5); err != nil {
		t.Fatalf("set param: %v", err)
	}
	if m.G != 0.5 {
		t.Errorf("g not updated: %f", m.G)
	}
	if err := m.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
