package master

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
	log        zerolog.Logger
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		log:        zerolog.Nop(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// WithLogger attaches a logger for engine diagnostics.
func (s *Simulator) WithLogger(log zerolog.Logger) *Simulator {
	s.log = log
	return s
}

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.Dim()*s.sys.Dim() {
		return nil, ErrDimensionMismatch
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps/sampleEvery+2),
		Times:   make([]float64, 0, steps/sampleEvery+2),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialTrace := x.Trace()
	s.log.Debug().Int("steps", steps).Float64("dt", cfg.Dt).
		Float64("trace", initialTrace).Msg("run start")

	// The end of the window, with a little slack for accumulated
	// float error in adaptive mode.
	tEnd := cfg.Duration * (1 - 1e-12)

	for i := 0; ; i++ {
		if cfg.Adaptive {
			if t >= tEnd {
				break
			}
		} else if i >= steps {
			break
		}

		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		var newX State
		var used float64
		var stepErr error

		if cfg.Adaptive {
			attempt := math.Min(dt, cfg.Duration-t)
			var next float64
			newX, used, next, stepErr = s.adaptiveStep(x, t, attempt, cfg)
			dt = clampDt(next, cfg)
		} else {
			newX = s.integrator.Step(s.sys, x, t, dt)
			used = dt
		}

		if stepErr != nil {
			result.Errors = append(result.Errors, stepErr)
			if errors.Is(stepErr, ErrStepTooSmall) {
				s.log.Error().Int("step", i).Float64("t", t).Float64("dt", used).
					Msg("adaptive step underflow, aborting")
				break
			}
		}

		if cfg.ValidateState && !newX.IsValid() {
			err := &SimulationError{Step: i, Time: t, State: newX, Wrapped: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			s.log.Error().Int("step", i).Float64("t", t).Msg("state invalid, aborting")
			break
		}

		x = newX
		t += used
		result.StepsTaken++

		last := t >= tEnd
		if !cfg.Adaptive {
			last = i == steps-1
		}
		if (i+1)%sampleEvery == 0 || last {
			result.States = append(result.States, x.Clone())
			result.Times = append(result.Times, t)
		}
	}

	for _, m := range s.metrics {
		m.Observe(x, t)
	}

	result.TraceDrift = math.Abs(x.Trace() - initialTrace)

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug().Int("steps_taken", result.StepsTaken).
		Float64("trace_drift", result.TraceDrift).Msg("run done")

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

// clampDt keeps a suggested step inside [MinDt, MaxDt] when those
// bounds are set.
func clampDt(dt float64, cfg Config) float64 {
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		dt = cfg.MaxDt
	}
	if cfg.MinDt > 0 && dt < cfg.MinDt {
		dt = cfg.MinDt
	}
	return dt
}

// adaptiveStep takes one error-controlled step and returns the new
// state, the step actually taken, and the suggested next step.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(s.sys, x, t, dt, cfg.Tolerance)
	}

	// Step-doubling fallback for non-embedded integrators.
	for {
		x1 := s.integrator.Step(s.sys, x, t, dt)
		xHalf := s.integrator.Step(s.sys, x, t, dt/2)
		x2 := s.integrator.Step(s.sys, xHalf, t+dt/2, dt/2)

		err := x1.Sub(x2).Norm()

		if err > cfg.Tolerance {
			if dt/2 < cfg.MinDt {
				return x2, dt, dt, fmt.Errorf("%w: dt=%g at t=%.4f", ErrStepTooSmall, dt, t)
			}
			s.log.Debug().Float64("t", t).Float64("dt", dt).Float64("err", err).
				Msg("step rejected")
			dt /= 2
			continue
		}

		next := dt
		if err < cfg.Tolerance/10 {
			next = dt * 2
		}
		return x2, dt, next, nil
	}
}

// RunWithCallback integrates without recording, handing each step to the
// callback. Return false from the callback to stop early.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = s.integrator.Step(s.sys, x, t, dt)
		t += dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ErrInvalidState, t)
		}
	}

	return nil
}
