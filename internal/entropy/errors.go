package entropy

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnstable indicates the state left the finite, non-negative region.
	ErrUnstable = errors.New("entropy: simulation unstable (state left valid region)")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("entropy: parameter out of valid bounds")

	// ErrUnknownParameter indicates a parameter name the system does not have.
	ErrUnknownParameter = errors.New("entropy: unknown parameter")
)

// ConfigError reports an invalid run or schedule configuration. It is
// always raised before integration begins.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("entropy: invalid config %s: %s", e.Field, e.Message)
}

// InstabilityError reports where a run left the valid state region.
type InstabilityError struct {
	Step  int
	Time  float64
	State State
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): state left valid region (info=%g meaning=%g)",
		e.Step, e.Time, e.State.Info, e.State.Meaning)
}

func (e *InstabilityError) Unwrap() error { return ErrUnstable }
