package integrators

import "github.com/san-kum/emerge/internal/entropy"

// Euler is the forward-Euler scheme. First order; cheapest, and adequate
// for the slow relaxation rates the entropy model typically runs with.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys entropy.System, x entropy.State, t, dt float64) entropy.State {
	return x.AddScaled(sys.Derive(x, t), dt)
}
