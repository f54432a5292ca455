package schedule

import (
	"math"

	"github.com/san-kum/emerge/internal/entropy"
)

// AlphaPulse is the bounded, smooth perturbation profile used by the
// transformative regime:
//
//	D(t) = Intensity * s * exp(1 - s),  s = (t - Onset) / Tau
//
// for t >= Onset, zero before. It rises from zero, peaks at exactly
// Intensity at time Onset + Tau, and decays back toward zero with time
// constant Tau.
type AlphaPulse struct {
	Onset     float64
	Intensity float64
	Tau       float64
}

func (a AlphaPulse) At(t float64) float64 {
	s := (t - a.Onset) / a.Tau
	if s <= 0 {
		return 0
	}
	return a.Intensity * s * math.Exp(1-s)
}

// PeakTime returns the time at which the pulse reaches Intensity.
func (a AlphaPulse) PeakTime() float64 { return a.Onset + a.Tau }

func (a AlphaPulse) Validate(duration float64) error {
	switch {
	case a.Tau <= 0:
		return &entropy.ConfigError{Field: "drug.tau", Message: "must be positive"}
	case a.Intensity < 0:
		return &entropy.ConfigError{Field: "drug.intensity", Message: "must be non-negative"}
	case a.Onset < 0 || a.Onset > duration:
		return &entropy.ConfigError{Field: "drug.onset", Message: "must lie within the run interval"}
	case a.PeakTime() > duration:
		return &entropy.ConfigError{Field: "drug.tau", Message: "peak time exceeds run interval"}
	}
	return nil
}
