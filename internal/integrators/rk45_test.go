package integrators

import (
	"math/cmplx"
	"testing"

	"github.com/san-kum/qdyn/internal/master"
)

func TestRK45Accuracy(t *testing.T) {
	sys := &precession{}
	integ := NewRK45()

	x := master.State{0.5, 0.5, 0.5, 0.5}
	dt := 0.05
	steps := 20

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	expected := 0.5 * cmplx.Exp(complex(0, 1.0))
	if cmplx.Abs(x[1]-expected) > 1e-7 {
		t.Errorf("coherence error too large: got %v, expected %v", x[1], expected)
	}
}

func TestRK45StepAdaptive(t *testing.T) {
	sys := &precession{}
	integ := NewRK45()

	x := master.State{0.5, 0.5, 0.5, 0.5}

	_, used, dtNext, err := integ.StepAdaptive(sys, x, 0, 0.01, 1e-8)
	if err != nil {
		t.Fatalf("adaptive step failed: %v", err)
	}
	if used <= 0 || used > 0.01 {
		t.Errorf("accepted step %f outside (0, 0.01]", used)
	}
	if dtNext <= 0 {
		t.Errorf("proposed dt must be positive, got %f", dtNext)
	}

	// A loose tolerance should propose a larger next step than a tight one.
	_, _, dtLoose, _ := integ.StepAdaptive(sys, x, 0, 0.01, 1e-4)
	_, _, dtTight, _ := integ.StepAdaptive(sys, x, 0, 0.01, 1e-12)
	if dtLoose < dtTight {
		t.Errorf("loose tolerance proposed dt %f < tight %f", dtLoose, dtTight)
	}
}

func TestRK45ShrinksOversizedStep(t *testing.T) {
	sys := &precession{}
	integ := NewRK45()
	x := master.State{0.5, 0.5, 0.5, 0.5}

	// A huge requested step at tight tolerance must be rejected and
	// retried internally; the accepted step comes back smaller, and
	// the state must correspond to that accepted step, not to the
	// requested one.
	xNew, used, _, err := integ.StepAdaptive(sys, x, 0, 2.0, 1e-10)
	if err != nil {
		t.Fatalf("adaptive step failed: %v", err)
	}
	if used >= 2.0 {
		t.Fatalf("oversized step was not shrunk: used %f", used)
	}
	expected := 0.5 * cmplx.Exp(complex(0, used))
	if cmplx.Abs(xNew[1]-expected) > 1e-8 {
		t.Errorf("state does not match accepted step %f: got %v, expected %v", used, xNew[1], expected)
	}
}
