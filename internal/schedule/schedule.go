// Package schedule provides shaped time profiles for Hamiltonian drives
// and dissipation rates.
package schedule

import "math"

// Schedule is a scalar function of time. Implementations used as
// dissipation rates must stay non-negative for all t.
type Schedule interface {
	At(t float64) float64
	Params() map[string]float64
}

// Constant is a fixed coefficient.
type Constant struct {
	Value float64
}

func NewConstant(v float64) *Constant { return &Constant{Value: v} }

func (c *Constant) At(t float64) float64 { return c.Value }

func (c *Constant) Params() map[string]float64 {
	return map[string]float64{"value": c.Value}
}

// Ramp interpolates linearly from From at T0 to To at T1, clamping
// outside the window.
type Ramp struct {
	From float64
	To   float64
	T0   float64
	T1   float64
}

func NewRamp(from, to, t0, t1 float64) *Ramp {
	return &Ramp{From: from, To: to, T0: t0, T1: t1}
}

func (r *Ramp) At(t float64) float64 {
	if t <= r.T0 {
		return r.From
	}
	if t >= r.T1 {
		return r.To
	}
	return r.From + (r.To-r.From)*(t-r.T0)/(r.T1-r.T0)
}

func (r *Ramp) Params() map[string]float64 {
	return map[string]float64{"from": r.From, "to": r.To, "t0": r.T0, "t1": r.T1}
}

// Exponential decays (or grows, for negative Rate) from Amp at t=0:
// Amp * exp(-Rate*t).
type Exponential struct {
	Amp  float64
	Rate float64
}

func NewExponential(amp, rate float64) *Exponential {
	return &Exponential{Amp: amp, Rate: rate}
}

func (e *Exponential) At(t float64) float64 {
	return e.Amp * math.Exp(-e.Rate*t)
}

func (e *Exponential) Params() map[string]float64 {
	return map[string]float64{"amp": e.Amp, "rate": e.Rate}
}

// Sinusoidal is Offset + Depth*sin(2*pi*Freq*t + Phase). With
// Offset >= |Depth| the value never goes negative.
type Sinusoidal struct {
	Offset float64
	Depth  float64
	Freq   float64
	Phase  float64
}

func NewSinusoidal(offset, depth, freq float64) *Sinusoidal {
	return &Sinusoidal{Offset: offset, Depth: depth, Freq: freq}
}

func (s *Sinusoidal) At(t float64) float64 {
	return s.Offset + s.Depth*math.Sin(2*math.Pi*s.Freq*t+s.Phase)
}

func (s *Sinusoidal) Params() map[string]float64 {
	return map[string]float64{"offset": s.Offset, "depth": s.Depth, "freq": s.Freq, "phase": s.Phase}
}

// GaussianPulse is Amp * exp(-(t-Center)^2 / (2*Sigma^2)).
type GaussianPulse struct {
	Amp    float64
	Center float64
	Sigma  float64
}

func NewGaussianPulse(amp, center, sigma float64) *GaussianPulse {
	return &GaussianPulse{Amp: amp, Center: center, Sigma: sigma}
}

func (g *GaussianPulse) At(t float64) float64 {
	d := (t - g.Center) / g.Sigma
	return g.Amp * math.Exp(-d*d/2)
}

func (g *GaussianPulse) Params() map[string]float64 {
	return map[string]float64{"amp": g.Amp, "center": g.Center, "sigma": g.Sigma}
}

// Smoothstep switches from From to To around Center with a tanh of
// characteristic Width.
type Smoothstep struct {
	From   float64
	To     float64
	Center float64
	Width  float64
}

func NewSmoothstep(from, to, center, width float64) *Smoothstep {
	return &Smoothstep{From: from, To: to, Center: center, Width: width}
}

func (s *Smoothstep) At(t float64) float64 {
	x := (math.Tanh((t-s.Center)/s.Width) + 1) / 2
	return s.From + (s.To-s.From)*x
}

func (s *Smoothstep) Params() map[string]float64 {
	return map[string]float64{"from": s.From, "to": s.To, "center": s.Center, "width": s.Width}
}
