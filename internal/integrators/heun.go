package integrators

import "github.com/san-kum/emerge/internal/entropy"

// Heun is the explicit trapezoidal (RK2) scheme: a full Euler predictor
// followed by averaging the endpoint slopes. Second order; the default
// for all regimes so trajectories stay comparable.
type Heun struct{}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Step(sys entropy.System, x entropy.State, t, dt float64) entropy.State {
	k1 := sys.Derive(x, t)
	k2 := sys.Derive(x.AddScaled(k1, dt), t+dt)
	return x.AddScaled(k1, dt*0.5).AddScaled(k2, dt*0.5)
}
