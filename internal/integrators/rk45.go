package integrators

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/qdyn/internal/master"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = complex(1.0/5.0, 0)
	b31 = complex(3.0/40.0, 0)
	b32 = complex(9.0/40.0, 0)
	b41 = complex(44.0/45.0, 0)
	b42 = complex(-56.0/15.0, 0)
	b43 = complex(32.0/9.0, 0)
	b51 = complex(19372.0/6561.0, 0)
	b52 = complex(-25360.0/2187.0, 0)
	b53 = complex(64448.0/6561.0, 0)
	b54 = complex(-212.0/729.0, 0)
	b61 = complex(9017.0/3168.0, 0)
	b62 = complex(-355.0/33.0, 0)
	b63 = complex(46732.0/5247.0, 0)
	b64 = complex(49.0/176.0, 0)
	b65 = complex(-5103.0/18656.0, 0)

	c1 = complex(35.0/384.0, 0)
	c3 = complex(500.0/1113.0, 0)
	c4 = complex(125.0/192.0, 0)
	c5 = complex(-2187.0/6784.0, 0)
	c6 = complex(11.0/84.0, 0)

	dc1 = c1 - complex(5179.0/57600.0, 0)
	dc3 = c3 - complex(7571.0/16695.0, 0)
	dc4 = c4 - complex(393.0/640.0, 0)
	dc5 = c5 - complex(-92097.0/339200.0, 0)
	dc6 = c6 - complex(187.0/2100.0, 0)
	dc7 = complex(-1.0/40.0, 0)
)

// dtFloor is the absolute smallest step StepAdaptive will retry with
// before giving up.
const dtFloor = 1e-12

type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64

	n    int
	pool *master.StatePool
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) ensurePool(n int) {
	if r.pool == nil || r.n != n {
		r.n = n
		r.pool = master.NewStatePool(n)
	}
}

// Step takes a single 5th-order step without error control.
func (r *RK45) Step(sys master.System, x master.State, t, dt float64) master.State {
	xNew, _ := r.attempt(sys, x, t, dt)
	return xNew
}

// StepAdaptive takes one error-controlled step, shrinking and retrying
// until the embedded error estimate meets tol. It returns the accepted
// state, the step actually taken, and the suggested next step.
func (r *RK45) StepAdaptive(sys master.System, x master.State, t, dt, tol float64) (master.State, float64, float64, error) {
	for {
		xNew, errMax := r.attempt(sys, x, t, dt)
		errRatio := errMax / tol

		if errRatio <= 1 {
			var dtNext float64
			if errRatio > 0 {
				dtNext = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
			} else {
				dtNext = dt * r.maxScale
			}
			return xNew, dt, dtNext, nil
		}

		shrunk := dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		if shrunk < dtFloor {
			return xNew, dt, shrunk,
				fmt.Errorf("%w: dt=%g at t=%.4f", master.ErrStepTooSmall, dt, t)
		}
		dt = shrunk
	}
}

// attempt evaluates the Dormand-Prince tableau once and returns the
// 5th-order solution with the scaled error estimate against the
// embedded 4th-order one.
func (r *RK45) attempt(sys master.System, x master.State, t, dt float64) (master.State, float64) {
	n := len(x)
	r.ensurePool(n)
	dtc := complex(dt, 0)

	// One pooled buffer holds each intermediate stage in turn; Derive
	// consumes it before the next stage overwrites it.
	xs := r.pool.Get()
	defer r.pool.Put(xs)

	k1 := sys.Derive(x, t)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dtc*b21*k1[i]
	}
	k2 := sys.Derive(xs, t+a2*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dtc*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(xs, t+a3*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dtc*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(xs, t+a4*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dtc*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(xs, t+a5*dt)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dtc*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(xs, t+dt)

	xNew := make(master.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dtc*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := sys.Derive(xNew, t+dt)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dtc * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := cmplx.Abs(x[i]) + cmplx.Abs(dtc*k1[i]) + 1e-10
		errMax = math.Max(errMax, cmplx.Abs(errEst)/scale)
	}

	return xNew, errMax
}
