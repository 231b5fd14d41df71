package experiment

import (
	"context"
	"math"
	"testing"
)

func TestRegistryUnknownNames(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetModel("nope"); err == nil {
		t.Error("expected error for unknown model")
	}
	if _, err := r.GetIntegrator("nope"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if _, err := r.GetObservable("nope", nil); err == nil {
		t.Error("expected error for unknown observable")
	}
}

func TestRegistryListModels(t *testing.T) {
	r := NewRegistry()
	found := map[string]bool{}
	for _, name := range r.ListModels() {
		found[name] = true
	}
	for _, want := range []string{"chain_cavity", "two_qubit", "jaynes_cummings"} {
		if !found[want] {
			t.Errorf("model %s missing from registry", want)
		}
	}
}

func TestDefaultObservablesPerSpace(t *testing.T) {
	r := NewRegistry()

	m, _ := r.GetModel("two_qubit")
	names := r.DefaultObservables(m.Space())
	if names[len(names)-1] != "concurrence" {
		t.Errorf("two_qubit defaults end with %s, expected concurrence", names[len(names)-1])
	}

	jc, _ := r.GetModel("jaynes_cummings")
	names = r.DefaultObservables(jc.Space())
	if names[len(names)-1] != "photons" {
		t.Errorf("jaynes_cummings defaults end with %s, expected photons", names[len(names)-1])
	}
}

func TestExperimentEndToEnd(t *testing.T) {
	cfg := Config{
		Model:      "two_qubit",
		Integrator: "rk4",
		Dt:         0.01,
		Duration:   1.0,
	}

	exp := New(cfg)
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range exp.ObservableNames() {
		series, ok := result.Series[name]
		if !ok {
			t.Fatalf("series %s missing", name)
		}
		if len(series) != len(result.Times) {
			t.Errorf("series %s has %d samples, times %d", name, len(series), len(result.Times))
		}
	}

	// Qubit 1 starts excited.
	if v := result.Series["population"][0]; math.Abs(v-1) > 1e-12 {
		t.Errorf("initial population: got %f, expected 1", v)
	}

	if _, ok := result.Metrics["max_trace_error"]; !ok {
		t.Error("trace error metric missing")
	}
}

func TestExperimentAppliesParams(t *testing.T) {
	cfg := Config{
		Model:      "jaynes_cummings",
		Integrator: "rk4",
		Dt:         0.01,
		Duration:   0.1,
		Params:     map[string]float64{"cavity_levels": 4},
	}

	exp := New(cfg)
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if dim := exp.Model().Space().Dim(); dim != 8 {
		t.Errorf("dimension after param override: got %d, expected 8", dim)
	}
}

func TestExperimentUnknownParam(t *testing.T) {
	cfg := Config{
		Model:      "two_qubit",
		Integrator: "rk4",
		Dt:         0.01,
		Duration:   0.1,
		Params:     map[string]float64{"bogus": 1},
	}

	exp := New(cfg)
	if err := exp.Setup(NewRegistry()); err == nil {
		t.Error("expected error for unknown model parameter")
	}
}

func TestExperimentRunBeforeSetup(t *testing.T) {
	exp := New(Config{Model: "two_qubit", Integrator: "rk4", Dt: 0.01, Duration: 0.1})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error for run before setup")
	}
}
