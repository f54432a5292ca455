// Package regime builds fully configured dual-entropy runs for the two
// qualitative regimes of the model: routine (steady periodic cultural
// reinforcement) and transformative (a single acute perturbation over a
// weak routine background).
package regime

import (
	"github.com/san-kum/emerge/internal/entropy"
	"github.com/san-kum/emerge/internal/model"
	"github.com/san-kum/emerge/internal/schedule"
)

// Base holds the parameters shared by both regimes.
type Base struct {
	Duration float64
	Dt       float64

	InfoDecay    float64
	InfoBaseline float64
	MeaningDecay float64
	MeaningFloor float64
	Coupling     float64
	InputGain    float64

	InitInfo    float64
	InitMeaning float64
}

// RoutineSpec configures the routine regime: a periodic cultural
// reinforcement pulse train and no perturbation.
type RoutineSpec struct {
	Base

	PulsePeriod   float64
	PulseWidth    float64
	PulseStrength float64
	PulseOffset   float64
}

// TransformativeSpec configures the transformative regime: a single
// bounded drug pulse over an optional weak constant cultural background.
type TransformativeSpec struct {
	Base

	CultureLevel  float64
	DrugOnset     float64
	DrugIntensity float64
	DrugTau       float64
}

// DefaultRoutine returns the reference routine parameterization: unit-ish
// entropies, reinforcement every ten time units.
func DefaultRoutine() RoutineSpec {
	return RoutineSpec{
		Base: Base{
			Duration:     100,
			Dt:           0.1,
			InfoDecay:    0.3,
			InfoBaseline: 0.2,
			MeaningDecay: 0.05,
			MeaningFloor: 0.1,
			Coupling:     0.4,
			InputGain:    1.0,
			InitInfo:     1.2,
			InitMeaning:  1.0,
		},
		PulsePeriod:   10,
		PulseWidth:    1,
		PulseStrength: 0.5,
		PulseOffset:   10,
	}
}

// DefaultTransformative returns the reference transformative
// parameterization: an acute pulse peaking a few time units in, relaxing
// back toward baseline dynamics afterwards.
func DefaultTransformative() TransformativeSpec {
	return TransformativeSpec{
		Base: Base{
			Duration:     24,
			Dt:           0.05,
			InfoDecay:    0.5,
			InfoBaseline: 0.0,
			MeaningDecay: 0.02,
			MeaningFloor: 0.05,
			Coupling:     0.6,
			InputGain:    1.0,
			InitInfo:     0.2,
			InitMeaning:  1.0,
		},
		CultureLevel:  0.05,
		DrugOnset:     1.0,
		DrugIntensity: 1.0,
		DrugTau:       2.0,
	}
}

func (b Base) system() *model.DualEntropy {
	return &model.DualEntropy{
		InfoDecay:    b.InfoDecay,
		InfoBaseline: b.InfoBaseline,
		MeaningDecay: b.MeaningDecay,
		MeaningFloor: b.MeaningFloor,
		Coupling:     b.Coupling,
		InputGain:    b.InputGain,
	}
}

func (b Base) runConfig() entropy.Config {
	return entropy.Config{Dt: b.Dt, Duration: b.Duration}
}

func (b Base) initState() entropy.State {
	return entropy.State{Info: b.InitInfo, Meaning: b.InitMeaning}
}

// BuildRoutine assembles the routine run. Schedule times and model
// parameters are validated against the run interval before anything is
// simulated.
func BuildRoutine(spec RoutineSpec) (*model.DualEntropy, entropy.State, entropy.Config, error) {
	culture := schedule.PulseTrain{
		Period:   spec.PulsePeriod,
		Width:    spec.PulseWidth,
		Strength: spec.PulseStrength,
		Offset:   spec.PulseOffset,
	}
	if err := culture.Validate(spec.Duration); err != nil {
		return nil, entropy.State{}, entropy.Config{}, err
	}

	sys := spec.system()
	sys.Culture = culture
	if err := sys.Validate(); err != nil {
		return nil, entropy.State{}, entropy.Config{}, err
	}
	return sys, spec.initState(), spec.runConfig(), nil
}

// BuildTransformative assembles the transformative run.
func BuildTransformative(spec TransformativeSpec) (*model.DualEntropy, entropy.State, entropy.Config, error) {
	culture := schedule.Constant{Level: spec.CultureLevel}
	if err := culture.Validate(spec.Duration); err != nil {
		return nil, entropy.State{}, entropy.Config{}, err
	}

	drug := schedule.AlphaPulse{
		Onset:     spec.DrugOnset,
		Intensity: spec.DrugIntensity,
		Tau:       spec.DrugTau,
	}
	if err := drug.Validate(spec.Duration); err != nil {
		return nil, entropy.State{}, entropy.Config{}, err
	}

	sys := spec.system()
	sys.Culture = culture
	sys.Drug = drug
	if err := sys.Validate(); err != nil {
		return nil, entropy.State{}, entropy.Config{}, err
	}
	return sys, spec.initState(), spec.runConfig(), nil
}
