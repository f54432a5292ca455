package model

import (
	"fmt"

	"github.com/san-kum/emerge/internal/entropy"
	"github.com/san-kum/emerge/internal/schedule"
)

// DualEntropy implements the coupled dual-entropy dynamics.
//
// The informational channel relaxes toward its baseline and is driven up
// by the external inputs:
//
//	dHe/dt = -InfoDecay*(He - InfoBaseline) + InputGain*(E(t) + D(t))
//
// The meaning channel relaxes toward its floor, and additionally harvests
// realized informational-entropy reduction between steps: each step, a
// fraction Coupling*max(0, ΔHe) of the remaining meaning uncertainty is
// resolved. The fractional form keeps meaning entropy above its floor for
// every non-negative coupling.
type DualEntropy struct {
	InfoDecay    float64
	InfoBaseline float64
	MeaningDecay float64
	MeaningFloor float64
	Coupling     float64
	InputGain    float64

	Culture schedule.Schedule
	Drug    schedule.Schedule
}

func (d *DualEntropy) Derive(x entropy.State, t float64) entropy.Derivative {
	drive := 0.0
	if d.Culture != nil {
		drive += d.Culture.At(t)
	}
	if d.Drug != nil {
		drive += d.Drug.At(t)
	}
	return entropy.Derivative{
		Info:    -d.InfoDecay*(x.Info-d.InfoBaseline) + d.InputGain*drive,
		Meaning: -d.MeaningDecay * (x.Meaning - d.MeaningFloor),
	}
}

// Harvest applies the discrete coupling term after an integration step.
func (d *DualEntropy) Harvest(prev, next entropy.State) entropy.State {
	resolved := prev.Info - next.Info
	if resolved <= 0 || d.Coupling == 0 {
		return next
	}
	next.Meaning -= d.Coupling * resolved * (next.Meaning - d.MeaningFloor)
	return next
}

// Floor exposes the meaning-entropy floor for normalization.
func (d *DualEntropy) Floor() float64 { return d.MeaningFloor }

// DrugAt samples the perturbation profile; ok is false when the run has
// no drug schedule.
func (d *DualEntropy) DrugAt(t float64) (value float64, ok bool) {
	if d.Drug == nil {
		return 0, false
	}
	return d.Drug.At(t), true
}

// Validate rejects parameter combinations the model is not defined for.
// It runs before integration begins; nothing is silently corrected.
func (d *DualEntropy) Validate() error {
	switch {
	case d.InfoDecay < 0:
		return &entropy.ConfigError{Field: "info_decay", Message: "must be non-negative"}
	case d.MeaningDecay < 0:
		return &entropy.ConfigError{Field: "meaning_decay", Message: "must be non-negative"}
	case d.Coupling < 0:
		return &entropy.ConfigError{Field: "coupling", Message: "must be non-negative"}
	case d.InputGain < 0:
		return &entropy.ConfigError{Field: "input_gain", Message: "must be non-negative"}
	case d.InfoBaseline < 0:
		return &entropy.ConfigError{Field: "info_baseline", Message: "must be non-negative"}
	case d.MeaningFloor < 0:
		return &entropy.ConfigError{Field: "meaning_floor", Message: "must be non-negative"}
	}
	return nil
}

// Clone returns an independent copy. Schedules are immutable values and
// are shared.
func (d *DualEntropy) Clone() *DualEntropy {
	c := *d
	return &c
}

// Params implements entropy.Configurable.
func (d *DualEntropy) Params() map[string]float64 {
	return map[string]float64{
		"info_decay":    d.InfoDecay,
		"info_baseline": d.InfoBaseline,
		"meaning_decay": d.MeaningDecay,
		"meaning_floor": d.MeaningFloor,
		"coupling":      d.Coupling,
		"input_gain":    d.InputGain,
	}
}

// SetParam implements entropy.Configurable.
func (d *DualEntropy) SetParam(name string, value float64) error {
	target := map[string]*float64{
		"info_decay":    &d.InfoDecay,
		"info_baseline": &d.InfoBaseline,
		"meaning_decay": &d.MeaningDecay,
		"meaning_floor": &d.MeaningFloor,
		"coupling":      &d.Coupling,
		"input_gain":    &d.InputGain,
	}[name]
	if target == nil {
		return fmt.Errorf("%w: %s", entropy.ErrUnknownParameter, name)
	}
	if value < 0 {
		return fmt.Errorf("%w: %s = %g", entropy.ErrParameterBounds, name, value)
	}
	*target = value
	return nil
}
