package models

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/qdyn/internal/integrators"
	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/observables"
)

func TestJaynesCummingsVacuumRabi(t *testing.T) {
	m := NewJaynesCummings()
	m.Kappa = 0

	liou, rho0, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// On resonance the excitation transfers fully to the cavity at
	// t = pi/(2g).
	tSwap := math.Pi / (2 * m.G)
	sim := master.New(liou, integrators.NewRK4())
	cfg := master.Config{Dt: 0.001, Duration: tSwap}

	result, err := sim.Run(context.Background(), rho0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := result.States[len(result.States)-1]

	pop, _ := observables.NewPopulation(m.Space(), 0)
	if v := pop.Eval(final, 0); v > 1e-3 {
		t.Errorf("qubit population at swap time: got %f, expected ~0", v)
	}

	photons, _ := observables.NewPhotons(m.Space(), 1)
	if v := photons.Eval(final, 0); math.Abs(v-1) > 1e-3 {
		t.Errorf("photon number at swap time: got %f, expected ~1", v)
	}
}

func TestJaynesCummingsCavityLossDampens(t *testing.T) {
	m := NewJaynesCummings()
	m.Kappa = 0.5

	liou, rho0, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	sim := master.New(liou, integrators.NewRK4())
	cfg := master.Config{Dt: 0.005, Duration: 40.0}

	result, err := sim.Run(context.Background(), rho0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// All excitation eventually leaks out through the cavity.
	final := result.States[len(result.States)-1]
	pop, _ := observables.NewPopulation(m.Space(), 0)
	if v := pop.Eval(final, 0); v > 0.05 {
		t.Errorf("qubit population after long decay: got %f, expected near 0", v)
	}
}
