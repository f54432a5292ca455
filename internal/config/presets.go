package config

import "github.com/san-kum/emerge/internal/regime"

// Presets catalogs named parameterizations per regime. The routine
// "restrained" and "expressive" entries mirror the cultural-modulation
// comparison: same dynamics under weaker versus stronger group
// reinforcement.
var Presets = map[string]map[string]func() *Config{
	"routine": {
		"default": func() *Config {
			return fromRoutine(regime.DefaultRoutine())
		},
		"restrained": func() *Config {
			spec := regime.DefaultRoutine()
			spec.PulseStrength = 0.32
			spec.InitMeaning = 1.1
			return fromRoutine(spec)
		},
		"expressive": func() *Config {
			spec := regime.DefaultRoutine()
			spec.PulseStrength = 0.68
			spec.Coupling = 0.55
			return fromRoutine(spec)
		},
	},
	"transformative": {
		"default": func() *Config {
			return fromTransformative(regime.DefaultTransformative())
		},
		"gentle": func() *Config {
			spec := regime.DefaultTransformative()
			spec.DrugIntensity = 0.4
			spec.DrugTau = 3.0
			return fromTransformative(spec)
		},
		"acute": func() *Config {
			spec := regime.DefaultTransformative()
			spec.DrugIntensity = 1.6
			spec.DrugTau = 1.0
			spec.Coupling = 0.8
			return fromTransformative(spec)
		},
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(regimeName, preset string) *Config {
	regimePresets, ok := Presets[regimeName]
	if !ok {
		return nil
	}
	build, ok := regimePresets[preset]
	if !ok {
		return nil
	}
	return build()
}

// ListPresets names the presets available for a regime.
func ListPresets(regimeName string) []string {
	regimePresets, ok := Presets[regimeName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(regimePresets))
	for name := range regimePresets {
		names = append(names, name)
	}
	return names
}
