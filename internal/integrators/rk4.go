package integrators

import "github.com/san-kum/emerge/internal/entropy"

// RK4 is the classic fourth-order Runge-Kutta scheme.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys entropy.System, x entropy.State, t, dt float64) entropy.State {
	half := dt * 0.5

	k1 := sys.Derive(x, t)
	k2 := sys.Derive(x.AddScaled(k1, half), t+half)
	k3 := sys.Derive(x.AddScaled(k2, half), t+half)
	k4 := sys.Derive(x.AddScaled(k3, dt), t+dt)

	sixth := dt / 6.0
	return x.
		AddScaled(k1, sixth).
		AddScaled(k2, 2*sixth).
		AddScaled(k3, 2*sixth).
		AddScaled(k4, sixth)
}
