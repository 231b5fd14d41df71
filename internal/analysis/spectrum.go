// Package analysis post-processes observable series: power spectra and
// dominant oscillation frequencies of the recorded dynamics.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum holds a one-sided power spectrum with its frequency axis.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum computes the one-sided power spectrum of a uniformly
// sampled series. dt is the sample spacing; the mean is removed first
// so the DC bin does not swamp the oscillation peaks.
func PowerSpectrum(values []float64, dt float64) Spectrum {
	n := len(values)
	if n < 2 || dt <= 0 {
		return Spectrum{}
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	detrended := make([]float64, n)
	for i, v := range values {
		detrended[i] = v - mean
	}

	coeffs := fft.FFTReal(detrended)

	half := n / 2
	sp := Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for i := 0; i < half; i++ {
		sp.Freqs[i] = float64(i) / (float64(n) * dt)
		a := cmplx.Abs(coeffs[i])
		sp.Power[i] = a * a / float64(n)
	}

	return sp
}

// DominantFrequency returns the frequency of the strongest non-DC
// spectral peak and its power.
func DominantFrequency(values []float64, dt float64) (freq, power float64) {
	sp := PowerSpectrum(values, dt)
	if len(sp.Power) < 2 {
		return 0, 0
	}

	best := 1
	for i := 2; i < len(sp.Power); i++ {
		if sp.Power[i] > sp.Power[best] {
			best = i
		}
	}

	return sp.Freqs[best], sp.Power[best]
}

// OscillationDecay fits log|peaks| of a decaying oscillation to a line
// and returns the decay rate. Peaks are local maxima of |values|; a
// series with fewer than two peaks returns 0.
func OscillationDecay(times, values []float64) float64 {
	if len(times) != len(values) || len(values) < 3 {
		return 0
	}

	var pt, pv []float64
	for i := 1; i < len(values)-1; i++ {
		a := math.Abs(values[i])
		if a > math.Abs(values[i-1]) && a >= math.Abs(values[i+1]) && a > 1e-12 {
			pt = append(pt, times[i])
			pv = append(pv, math.Log(a))
		}
	}
	if len(pt) < 2 {
		return 0
	}

	// Least-squares slope of log-peaks against time.
	n := float64(len(pt))
	var st, sv, stt, stv float64
	for i := range pt {
		st += pt[i]
		sv += pv[i]
		stt += pt[i] * pt[i]
		stv += pt[i] * pv[i]
	}
	denom := n*stt - st*st
	if denom == 0 {
		return 0
	}

	return -(n*stv - st*sv) / denom
}
