package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/emerge/internal/entropy"
)

// decayDynamics relaxes both channels toward zero at unit rate, so the
// exact solution is x0 * exp(-t).
type decayDynamics struct{}

func (decayDynamics) Derive(x entropy.State, t float64) entropy.Derivative {
	return entropy.Derivative{Info: -x.Info, Meaning: -x.Meaning}
}

func integrate(integ entropy.Integrator, x0 entropy.State, dt float64, steps int) entropy.State {
	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(decayDynamics{}, x, float64(i)*dt, dt)
	}
	return x
}

func TestIntegratorAccuracy(t *testing.T) {
	x0 := entropy.State{Info: 1.0, Meaning: 2.0}
	dt := 0.01
	steps := 100
	exact := math.Exp(-1.0)

	tests := []struct {
		name  string
		integ entropy.Integrator
		tol   float64
	}{
		{"euler", NewEuler(), 2e-3},
		{"heun", NewHeun(), 2e-5},
		{"rk4", NewRK4(), 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := integrate(tt.integ, x0, dt, steps)
			if math.Abs(x.Info-exact) > tt.tol {
				t.Errorf("info error too large: got %.9f, expected %.9f", x.Info, exact)
			}
			if math.Abs(x.Meaning-2*exact) > tt.tol {
				t.Errorf("meaning error too large: got %.9f, expected %.9f", x.Meaning, 2*exact)
			}
		})
	}
}

func TestIntegratorDeterminism(t *testing.T) {
	x0 := entropy.State{Info: 0.7, Meaning: 1.3}
	for _, name := range Names {
		integ, err := New(name)
		if err != nil {
			t.Fatalf("new %s: %v", name, err)
		}
		a := integrate(integ, x0, 0.05, 200)
		b := integrate(integ, x0, 0.05, 200)
		if a != b {
			t.Errorf("%s: repeated integration differs: %+v vs %+v", name, a, b)
		}
	}
}

func TestNewUnknown(t *testing.T) {
	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
