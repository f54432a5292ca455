package integrators

import (
	"testing"

	"github.com/san-kum/emerge/internal/entropy"
)

func benchIntegrator(b *testing.B, integ entropy.Integrator) {
	x := entropy.State{Info: 1.0, Meaning: 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(decayDynamics{}, x, 0, 0.01)
	}
}

func BenchmarkEuler(b *testing.B) { benchIntegrator(b, NewEuler()) }
func BenchmarkHeun(b *testing.B)  { benchIntegrator(b, NewHeun()) }
func BenchmarkRK4(b *testing.B)   { benchIntegrator(b, NewRK4()) }
