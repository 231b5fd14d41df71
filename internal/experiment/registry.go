package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/qdyn/internal/integrators"
	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/models"
	"github.com/san-kum/qdyn/internal/observables"
	"github.com/san-kum/qdyn/internal/quantum"
)

type Registry struct {
	models      map[string]func() models.Model
	integrators map[string]func() master.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() models.Model),
		integrators: make(map[string]func() master.Integrator),
	}

	r.models["chain_cavity"] = func() models.Model { return models.NewChainCavity() }
	r.models["two_qubit"] = func() models.Model { return models.NewTwoQubit() }
	r.models["jaynes_cummings"] = func() models.Model { return models.NewJaynesCummings() }

	r.integrators["euler"] = func() master.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() master.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() master.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetModel(name string) (models.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (master.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetObservable builds a named observable against a model's space.
// Site conventions: population/coherence read qubit 1, concurrence the
// pair (1,2), photons the last factor when it is a bosonic ladder.
func (r *Registry) GetObservable(name string, sp quantum.Space) (master.Observable, error) {
	switch name {
	case "population":
		return observables.NewPopulation(sp, 0)
	case "coherence":
		return observables.NewCoherence(sp, 0, observables.CoherenceAbs)
	case "coherence_re":
		return observables.NewCoherence(sp, 0, observables.CoherenceRe)
	case "coherence_im":
		return observables.NewCoherence(sp, 0, observables.CoherenceIm)
	case "entropy":
		return observables.NewEntropy(), nil
	case "concurrence":
		return observables.NewConcurrence(sp, 0, 1)
	case "photons":
		last := len(sp) - 1
		if sp[last] == 2 {
			return nil, fmt.Errorf("model has no bosonic mode")
		}
		return observables.NewPhotons(sp, last)
	case "purity":
		return observables.NewPurity(), nil
	default:
		return nil, fmt.Errorf("unknown observable: %s", name)
	}
}

// GetObservables resolves a list of observable names in order.
func (r *Registry) GetObservables(names []string, sp quantum.Space) ([]master.Observable, error) {
	obs := make([]master.Observable, 0, len(names))
	for _, name := range names {
		o, err := r.GetObservable(name, sp)
		if err != nil {
			return nil, err
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// DefaultObservables is the four-panel figure set. Models without a
// second qubit swap concurrence for the photon number.
func (r *Registry) DefaultObservables(sp quantum.Space) []string {
	names := []string{"population", "coherence", "entropy"}
	if len(sp) > 1 && sp[1] == 2 {
		names = append(names, "concurrence")
	} else {
		names = append(names, "photons")
	}
	return names
}

// DefaultMetrics is the run-level metric set recorded on every run.
func (r *Registry) DefaultMetrics() []master.Metric {
	return []master.Metric{
		observables.NewTraceError(),
		observables.NewFinalPurity(),
		observables.NewFinalEntropy(),
	}
}
