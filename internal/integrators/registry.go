package integrators

import (
	"fmt"

	"github.com/san-kum/emerge/internal/entropy"
)

// Names lists the available schemes in preference order.
var Names = []string{"heun", "euler", "rk4"}

// New returns a fresh integrator for the given scheme name.
func New(name string) (entropy.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "heun", "rk2":
		return NewHeun(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
