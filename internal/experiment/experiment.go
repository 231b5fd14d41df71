package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/qdyn/internal/master"
	"github.com/san-kum/qdyn/internal/models"
)

type Config struct {
	Model       string
	Integrator  string
	Dt          float64
	Duration    float64
	SampleEvery int
	Adaptive    bool
	Tolerance   float64
	Observables []string
	Params      map[string]float64
}

// Experiment assembles a model, integrator and observables into one
// runnable unit.
type Experiment struct {
	cfg         Config
	model       models.Model
	simulator   *master.Simulator
	observables []master.Observable
	rho0        master.State
	log         zerolog.Logger
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg, log: zerolog.Nop()}
}

func (e *Experiment) WithLogger(log zerolog.Logger) *Experiment {
	e.log = log
	return e
}

// Setup resolves names through the registry, applies model parameters
// and builds the Liouvillian.
func (e *Experiment) Setup(registry *Registry) error {
	model, err := registry.GetModel(e.cfg.Model)
	if err != nil {
		return err
	}

	if cfgModel, ok := model.(master.Configurable); ok {
		for name, value := range e.cfg.Params {
			if err := cfgModel.SetParam(name, value); err != nil {
				return fmt.Errorf("model %s: %w", e.cfg.Model, err)
			}
		}
	}

	integ, err := registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	names := e.cfg.Observables
	if len(names) == 0 {
		names = registry.DefaultObservables(model.Space())
	}
	obs, err := registry.GetObservables(names, model.Space())
	if err != nil {
		return err
	}

	liou, rho0, err := model.Build()
	if err != nil {
		return fmt.Errorf("build %s: %w", e.cfg.Model, err)
	}

	for _, ch := range liou.Channels() {
		e.log.Debug().Str("channel", ch.Name).
			Interface("rate", ch.Rate.Params()).Msg("dissipation channel")
	}

	e.model = model
	e.rho0 = rho0
	e.observables = obs
	e.simulator = master.New(liou, integ).WithLogger(e.log)
	for _, m := range registry.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}

	return nil
}

// Run integrates the master equation and evaluates the observable
// series over the sampled states.
func (e *Experiment) Run(ctx context.Context) (*master.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := master.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.Duration
	if e.cfg.SampleEvery > 0 {
		simCfg.SampleEvery = e.cfg.SampleEvery
	}
	if e.cfg.Adaptive {
		simCfg.Adaptive = true
		if e.cfg.Tolerance > 0 {
			simCfg.Tolerance = e.cfg.Tolerance
		}
	}

	result, err := e.simulator.Run(ctx, e.rho0, simCfg)
	if err != nil {
		return result, err
	}

	result.Series = master.EvalSeries(result.States, result.Times, e.observables)
	return result, nil
}

// Model returns the resolved model after Setup.
func (e *Experiment) Model() models.Model { return e.model }

// ObservableNames returns the resolved observable names in series
// order.
func (e *Experiment) ObservableNames() []string {
	names := make([]string, len(e.observables))
	for i, o := range e.observables {
		names[i] = o.Name()
	}
	return names
}
