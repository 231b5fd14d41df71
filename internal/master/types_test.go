package master

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestStateTraceAndPurity(t *testing.T) {
	// Maximally mixed qubit.
	mixed := State{0.5, 0, 0, 0.5}
	if math.Abs(mixed.Trace()-1.0) > 1e-12 {
		t.Errorf("trace: got %f, expected 1", mixed.Trace())
	}
	if math.Abs(mixed.Purity()-0.5) > 1e-12 {
		t.Errorf("purity: got %f, expected 0.5", mixed.Purity())
	}

	// Pure superposition (|0>+|1>)/sqrt(2).
	pure := State{0.5, 0.5, 0.5, 0.5}
	if math.Abs(pure.Purity()-1.0) > 1e-12 {
		t.Errorf("purity of pure state: got %f, expected 1", pure.Purity())
	}
}

func TestStateHermitize(t *testing.T) {
	s := State{
		complex(1, 0.01),
		complex(0.3, 0.2),
		complex(0.1, -0.1),
		complex(0, 0),
	}
	s.Hermitize()

	if imag(s[0]) != 0 || imag(s[3]) != 0 {
		t.Error("diagonal not real after hermitize")
	}
	if s[1] != cmplx.Conj(s[2]) {
		t.Errorf("off-diagonal not conjugate: %v vs %v", s[1], s[2])
	}
}

func TestStateIsValid(t *testing.T) {
	good := State{1, 0, 0, 0}
	if !good.IsValid() {
		t.Error("valid state reported invalid")
	}

	bad := State{complex(math.NaN(), 0), 0, 0, 0}
	if bad.IsValid() {
		t.Error("NaN state reported valid")
	}

	inf := State{0, complex(0, math.Inf(1)), 0, 0}
	if inf.IsValid() {
		t.Error("Inf state reported valid")
	}
}

func TestStateAXPY(t *testing.T) {
	s := State{1, 2}
	s.AXPY(complex(0, 1), State{1, 1})

	if s[0] != complex(1, 1) || s[1] != complex(2, 1) {
		t.Errorf("axpy result wrong: %v", s)
	}
}

func TestStateDim(t *testing.T) {
	for _, d := range []int{1, 2, 4, 8, 160} {
		s := make(State, d*d)
		if s.Dim() != d {
			t.Errorf("dim of %d-length state: got %d, expected %d", len(s), s.Dim(), d)
		}
	}
}
