package config

import "sort"

// Presets hold the hand-tuned runs per model. "baseline" on
// chain_cavity is the reference window: five qubits, five cavity
// levels, t in [0,10] at dt=0.005.
var Presets = map[string]map[string]*Config{
	"chain_cavity": {
		"baseline": {
			Model: "chain_cavity", Integrator: "rk4", Dt: 0.005, Duration: 10.0,
			SampleEvery: 10, CSV: true,
			Observables: []string{"population", "coherence", "entropy", "concurrence", "photons", "purity", "coherence_re", "coherence_im"},
		},
		"fast": {
			Model: "chain_cavity", Integrator: "rk4", Dt: 0.01, Duration: 5.0,
			SampleEvery: 5, CSV: true,
			Params: map[string]float64{"qubits": 3, "cavity_levels": 3},
		},
		"adaptive": {
			Model: "chain_cavity", Integrator: "rk45", Dt: 0.005, Duration: 10.0,
			SampleEvery: 10, Adaptive: true, Tolerance: 1e-8, CSV: true,
		},
	},
	"two_qubit": {
		"swap": {
			Model: "two_qubit", Integrator: "rk4", Dt: 0.001, Duration: 12.0,
			SampleEvery: 10, CSV: true,
		},
		"decohere": {
			Model: "two_qubit", Integrator: "rk4", Dt: 0.001, Duration: 30.0,
			SampleEvery: 20, CSV: true,
			Params: map[string]float64{"gamma": 0.2, "gamma_phi": 0.1},
		},
	},
	"jaynes_cummings": {
		"vacuum_rabi": {
			Model: "jaynes_cummings", Integrator: "rk4", Dt: 0.002, Duration: 40.0,
			SampleEvery: 10, CSV: true,
		},
		"lossy": {
			Model: "jaynes_cummings", Integrator: "rk4", Dt: 0.002, Duration: 60.0,
			SampleEvery: 20, CSV: true,
			Params: map[string]float64{"kappa": 0.15},
		},
	},
}

func GetPreset(model, name string) *Config {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	return presets[name]
}

func ListPresets(model string) []string {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
