// Package schedule provides the time-varying input terms that drive the
// dual-entropy model: cultural reinforcement for the routine regime and
// the localized drug perturbation for the transformative regime.
package schedule

import (
	"math"

	"github.com/san-kum/emerge/internal/entropy"
)

// Schedule is a deterministic, side-effect-free function of time.
type Schedule interface {
	At(t float64) float64
}

// Validator is implemented by schedules whose defining times must lie
// inside the run interval [0, duration].
type Validator interface {
	Validate(duration float64) error
}

// Zero is the absent input.
type Zero struct{}

func (Zero) At(float64) float64 { return 0 }

// Constant holds a fixed input level.
type Constant struct {
	Level float64
}

func (c Constant) At(float64) float64 { return c.Level }

func (c Constant) Validate(float64) error {
	if c.Level < 0 {
		return &entropy.ConfigError{Field: "constant.level", Message: "must be non-negative"}
	}
	return nil
}

// PulseTrain emits rectangular reinforcement pulses of the given strength
// and width, repeating every Period time units starting at Offset.
type PulseTrain struct {
	Period   float64
	Width    float64
	Strength float64
	Offset   float64
}

func (p PulseTrain) At(t float64) float64 {
	if t < p.Offset {
		return 0
	}
	if math.Mod(t-p.Offset, p.Period) < p.Width {
		return p.Strength
	}
	return 0
}

func (p PulseTrain) Validate(duration float64) error {
	switch {
	case p.Period <= 0:
		return &entropy.ConfigError{Field: "pulse.period", Message: "must be positive"}
	case p.Width <= 0 || p.Width > p.Period:
		return &entropy.ConfigError{Field: "pulse.width", Message: "must be in (0, period]"}
	case p.Strength < 0:
		return &entropy.ConfigError{Field: "pulse.strength", Message: "must be non-negative"}
	case p.Offset < 0 || p.Offset > duration:
		return &entropy.ConfigError{Field: "pulse.offset", Message: "must lie within the run interval"}
	}
	return nil
}
