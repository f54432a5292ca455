// Package sim advances a dual-entropy system through a fixed-step run and
// records the full trajectory.
package sim

import (
	"context"
	"math"

	"github.com/san-kum/emerge/internal/entropy"
)

// Simulator pairs a system with an integration scheme. It is pure: a run
// performs no I/O and two runs with identical inputs produce identical
// trajectories. Instances are not safe for concurrent use; parallel
// callers build one simulator per run.
type Simulator struct {
	sys     entropy.System
	integ   entropy.Integrator
	metrics []entropy.Metric
}

func New(sys entropy.System, integ entropy.Integrator) *Simulator {
	return &Simulator{
		sys:     sys,
		integ:   integ,
		metrics: make([]entropy.Metric, 0),
	}
}

func (s *Simulator) AddMetric(m entropy.Metric) { s.metrics = append(s.metrics, m) }

type validator interface {
	Validate() error
}

type floorer interface {
	Floor() float64
}

type drugSampler interface {
	DrugAt(t float64) (float64, bool)
}

// Run integrates from x0 over cfg and returns the sampled trajectory.
// Configuration problems surface before the first step as *ConfigError;
// a state leaving the finite non-negative region aborts the run with
// *InstabilityError. Nothing is clamped.
func (s *Simulator) Run(ctx context.Context, x0 entropy.State, cfg entropy.Config) (*entropy.Trajectory, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if v, ok := s.sys.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if !x0.Valid() {
		return nil, &entropy.ConfigError{Field: "initial state", Message: "must be finite and non-negative"}
	}

	steps := cfg.Steps()
	tr := &entropy.Trajectory{
		Times:        make([]float64, 0, steps+1),
		States:       make([]entropy.State, 0, steps+1),
		Construction: make([]float64, 0, steps+1),
		MeaningIndex: make([]float64, 0, steps+1),
	}

	floor := 0.0
	if f, ok := s.sys.(floorer); ok {
		floor = f.Floor()
	}
	span := x0.Meaning - floor

	drug, hasDrug := s.sys.(drugSampler)
	if hasDrug {
		if _, ok := drug.DrugAt(0); !ok {
			hasDrug = false
		}
	}
	if hasDrug {
		tr.Drug = make([]float64, 0, steps+1)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	record := func(x entropy.State, construction, t float64) {
		tr.Times = append(tr.Times, t)
		tr.States = append(tr.States, x)
		tr.Construction = append(tr.Construction, construction)
		tr.MeaningIndex = append(tr.MeaningIndex, meaningIndex(x.Meaning, floor, span))
		if hasDrug {
			d, _ := drug.DrugAt(t)
			tr.Drug = append(tr.Drug, d)
		}
		for _, m := range s.metrics {
			m.Observe(x, construction, t)
		}
	}

	x := x0
	record(x, 0, 0)

	harvester, coupled := s.sys.(entropy.Harvester)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		next := s.integ.Step(s.sys, x, t, cfg.Dt)
		if coupled {
			next = harvester.Harvest(x, next)
		}

		if !next.Valid() {
			return nil, &entropy.InstabilityError{Step: i + 1, Time: t + cfg.Dt, State: next}
		}

		construction := (x.Meaning - next.Meaning) / cfg.Dt
		if construction < 0 {
			construction = 0
		}

		x = next
		record(x, construction, t+cfg.Dt)
	}

	return tr, nil
}

func validateConfig(cfg entropy.Config) error {
	if cfg.Dt <= 0 {
		return &entropy.ConfigError{Field: "dt", Message: "must be positive"}
	}
	if cfg.Duration <= 0 {
		return &entropy.ConfigError{Field: "duration", Message: "must be positive"}
	}
	steps := cfg.Steps()
	if steps < 1 {
		return &entropy.ConfigError{Field: "duration", Message: "must cover at least one step"}
	}
	if math.Abs(float64(steps)*cfg.Dt-cfg.Duration) > 1e-9*math.Max(1, cfg.Duration) {
		return &entropy.ConfigError{Field: "duration", Message: "must be an integer multiple of dt"}
	}
	return nil
}

func meaningIndex(meaning, floor, span float64) float64 {
	if span <= 0 {
		return 0
	}
	idx := (span - (meaning - floor)) / span
	if idx < 0 {
		return 0
	}
	if idx > 1 {
		return 1
	}
	return idx
}
