package integrators

import "github.com/san-kum/qdyn/internal/master"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys master.System, x master.State, t float64, dt float64) master.State {
	dx := sys.Derive(x, t)
	result := make(master.State, len(x))
	dtc := complex(dt, 0)
	for i := range x {
		result[i] = x[i] + dtc*dx[i]
	}
	return result
}
