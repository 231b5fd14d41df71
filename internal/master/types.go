package master

import (
	"math"
	"math/cmplx"
)

// State is the flattened, row-major backing slice of a d x d density
// matrix. len(s) must be a perfect square.
type State []complex128

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Dim returns the matrix dimension d for a d*d-length state.
func (s State) Dim() int {
	return int(math.Round(math.Sqrt(float64(len(s)))))
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) ||
			math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) {
			return false
		}
	}
	return true
}

// Norm returns the Frobenius norm.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor complex128) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// AXPY adds alpha*x into s in place. Both slices must have equal length.
func (s State) AXPY(alpha complex128, x State) {
	for i := range s {
		s[i] += alpha * x[i]
	}
}

// Trace returns the real part of tr(rho). The imaginary part of a
// Hermitian matrix trace is zero up to integrator error.
func (s State) Trace() float64 {
	d := s.Dim()
	sum := 0.0
	for i := 0; i < d; i++ {
		sum += real(s[i*d+i])
	}
	return sum
}

// Purity returns tr(rho^2), computed as sum |rho_ij|^2 for Hermitian rho.
func (s State) Purity() float64 {
	sum := 0.0
	for _, v := range s {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return sum
}

// Hermitize replaces s with (s + s^dagger)/2 in place, discarding the
// anti-Hermitian error accumulated by the integrator.
func (s State) Hermitize() {
	d := s.Dim()
	for i := 0; i < d; i++ {
		s[i*d+i] = complex(real(s[i*d+i]), 0)
		for j := i + 1; j < d; j++ {
			avg := (s[i*d+j] + cmplx.Conj(s[j*d+i])) / 2
			s[i*d+j] = avg
			s[j*d+i] = cmplx.Conj(avg)
		}
	}
}

// System is an equation of motion drho/dt = f(rho, t). Time dependence
// lives inside the system.
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator steps with error control. StepAdaptive returns the
// state after an accepted step, the step size actually taken, and the
// suggested next step size. The integrator retries internally on
// rejection; ErrStepTooSmall reports a step that underflowed before
// meeting the tolerance.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, float64, error)
}

// Observable is a per-sample scalar derived from a state. Eval must be
// safe for concurrent use; EvalSeries calls it from multiple goroutines.
type Observable interface {
	Name() string
	Eval(x State, t float64) float64
}

// Metric accumulates a run-level scalar over the whole integration.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Duration      float64
	SampleEvery   int
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.005,
		Duration:      10.0,
		SampleEvery:   1,
		Tolerance:     1e-6,
		MaxDt:         0.05,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

type Result struct {
	States     []State
	Times      []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	TraceDrift float64
	StepsTaken int
	Errors     []error
}

