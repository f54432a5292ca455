package entropy

import "math"

// State is one sample of the dual-entropy model: informational entropy
// (disorder in raw inputs) and meaning entropy (uncertainty remaining in
// constructed meaning).
type State struct {
	Info    float64
	Meaning float64
}

// Valid reports whether both channels are finite and non-negative.
func (s State) Valid() bool {
	for _, v := range [2]float64{s.Info, s.Meaning} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// AddScaled returns s + h*d, the elementary step used by the integrators.
func (s State) AddScaled(d Derivative, h float64) State {
	return State{
		Info:    s.Info + h*d.Info,
		Meaning: s.Meaning + h*d.Meaning,
	}
}

// Derivative is the instantaneous rate of change of a State.
type Derivative struct {
	Info    float64
	Meaning float64
}

// System describes the continuous part of the entropy dynamics.
//
// Systems may additionally couple the two channels discretely between
// steps via the optional [Harvester] interface; the simulator applies it
// after each integration step.
type System interface {
	Derive(x State, t float64) Derivative
}

// Harvester converts realized informational-entropy reduction into
// meaning-entropy reduction. Harvest receives the pre- and post-step
// states and returns the post-step state with the coupling applied.
type Harvester interface {
	Harvest(prev, next State) State
}

// Configurable exposes named scalar parameters, used by the sensitivity
// sweep to override a single field per grid point.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Integrator advances a state by one fixed step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Metric observes every recorded sample of a run and reduces it to one
// scalar. Construction is the derived meaning-construction signal at the
// sample (zero for the initial sample).
type Metric interface {
	Name() string
	Observe(x State, construction, t float64)
	Value() float64
	Reset()
}

// Config holds the run-level settings of a single simulation.
type Config struct {
	Dt       float64
	Duration float64
}

// Steps returns the number of integration steps the config implies.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

// Trajectory is the complete, read-only output of one run: len(Times) ==
// Steps()+1 samples including the initial state. Construction holds the
// derived meaning-construction signal max(0, -dHm/dt) per sample
// (zero at the initial sample), MeaningIndex the normalized cumulative
// meaning in [0, 1], and Drug the perturbation profile sampled per step
// (nil when the run had no drug schedule).
type Trajectory struct {
	Times        []float64
	States       []State
	Construction []float64
	MeaningIndex []float64
	Drug         []float64
}

// Final returns the last sampled state.
func (tr *Trajectory) Final() State {
	return tr.States[len(tr.States)-1]
}

// PeakConstruction returns the maximum of the construction signal and the
// time at which it occurs.
func (tr *Trajectory) PeakConstruction() (value, at float64) {
	for i, c := range tr.Construction {
		if c > value {
			value = c
			at = tr.Times[i]
		}
	}
	return value, at
}

// ThresholdTime returns the first time at which meaning entropy falls
// below threshold. The second return is false when the trajectory never
// crosses it; the caller must treat that as a valid outcome.
func (tr *Trajectory) ThresholdTime(threshold float64) (float64, bool) {
	for i, s := range tr.States {
		if s.Meaning < threshold {
			return tr.Times[i], true
		}
	}
	return math.NaN(), false
}
