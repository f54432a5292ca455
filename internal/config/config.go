// Package config loads, saves, and defaults run configurations for the
// emerge CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/emerge/internal/regime"
)

// Config mirrors the yaml file format. A zero value is not usable;
// start from Default and override.
type Config struct {
	Regime     string  `yaml:"regime"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Threshold  float64 `yaml:"threshold"`

	Model   ModelConfig   `yaml:"model"`
	Culture CultureConfig `yaml:"culture"`
	Drug    DrugConfig    `yaml:"drug"`
	Init    InitConfig    `yaml:"init"`
}

type ModelConfig struct {
	InfoDecay    float64 `yaml:"info_decay"`
	InfoBaseline float64 `yaml:"info_baseline"`
	MeaningDecay float64 `yaml:"meaning_decay"`
	MeaningFloor float64 `yaml:"meaning_floor"`
	Coupling     float64 `yaml:"coupling"`
	InputGain    float64 `yaml:"input_gain"`
}

type CultureConfig struct {
	// Pulse-train fields drive the routine regime.
	Period   float64 `yaml:"period"`
	Width    float64 `yaml:"width"`
	Strength float64 `yaml:"strength"`
	Offset   float64 `yaml:"offset"`
	// Level is the constant background used by the transformative regime.
	Level float64 `yaml:"level"`
}

type DrugConfig struct {
	Onset     float64 `yaml:"onset"`
	Intensity float64 `yaml:"intensity"`
	Tau       float64 `yaml:"tau"`
}

type InitConfig struct {
	Info    float64 `yaml:"info"`
	Meaning float64 `yaml:"meaning"`
}

// Default returns the reference configuration for the named regime.
func Default(regimeName string) (*Config, error) {
	switch regimeName {
	case "routine":
		return fromRoutine(regime.DefaultRoutine()), nil
	case "transformative":
		return fromTransformative(regime.DefaultTransformative()), nil
	default:
		return nil, fmt.Errorf("unknown regime: %s", regimeName)
	}
}

func fromBase(b regime.Base) Config {
	return Config{
		Integrator: "heun",
		Dt:         b.Dt,
		Duration:   b.Duration,
		Threshold:  0.4,
		Model: ModelConfig{
			InfoDecay:    b.InfoDecay,
			InfoBaseline: b.InfoBaseline,
			MeaningDecay: b.MeaningDecay,
			MeaningFloor: b.MeaningFloor,
			Coupling:     b.Coupling,
			InputGain:    b.InputGain,
		},
		Init: InitConfig{Info: b.InitInfo, Meaning: b.InitMeaning},
	}
}

func fromRoutine(spec regime.RoutineSpec) *Config {
	cfg := fromBase(spec.Base)
	cfg.Regime = "routine"
	cfg.Culture = CultureConfig{
		Period:   spec.PulsePeriod,
		Width:    spec.PulseWidth,
		Strength: spec.PulseStrength,
		Offset:   spec.PulseOffset,
	}
	return &cfg
}

func fromTransformative(spec regime.TransformativeSpec) *Config {
	cfg := fromBase(spec.Base)
	cfg.Regime = "transformative"
	cfg.Culture = CultureConfig{Level: spec.CultureLevel}
	cfg.Drug = DrugConfig{
		Onset:     spec.DrugOnset,
		Intensity: spec.DrugIntensity,
		Tau:       spec.DrugTau,
	}
	return &cfg
}

func (c *Config) base() regime.Base {
	return regime.Base{
		Duration:     c.Duration,
		Dt:           c.Dt,
		InfoDecay:    c.Model.InfoDecay,
		InfoBaseline: c.Model.InfoBaseline,
		MeaningDecay: c.Model.MeaningDecay,
		MeaningFloor: c.Model.MeaningFloor,
		Coupling:     c.Model.Coupling,
		InputGain:    c.Model.InputGain,
		InitInfo:     c.Init.Info,
		InitMeaning:  c.Init.Meaning,
	}
}

// RoutineSpec converts the configuration into routine builder input.
func (c *Config) RoutineSpec() regime.RoutineSpec {
	return regime.RoutineSpec{
		Base:          c.base(),
		PulsePeriod:   c.Culture.Period,
		PulseWidth:    c.Culture.Width,
		PulseStrength: c.Culture.Strength,
		PulseOffset:   c.Culture.Offset,
	}
}

// TransformativeSpec converts the configuration into transformative
// builder input.
func (c *Config) TransformativeSpec() regime.TransformativeSpec {
	return regime.TransformativeSpec{
		Base:          c.base(),
		CultureLevel:  c.Culture.Level,
		DrugOnset:     c.Drug.Onset,
		DrugIntensity: c.Drug.Intensity,
		DrugTau:       c.Drug.Tau,
	}
}

// Load reads a yaml file over the defaults for its regime, so partial
// files only override what they mention.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Regime string `yaml:"regime"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if probe.Regime == "" {
		probe.Regime = "routine"
	}

	cfg, err := Default(probe.Regime)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
