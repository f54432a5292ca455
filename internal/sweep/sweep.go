// Package sweep re-runs the dynamics engine across a one-parameter grid
// and reduces every trajectory to summary scalars for tabular export.
package sweep

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/emerge/internal/entropy"
	"github.com/san-kum/emerge/internal/integrators"
	"github.com/san-kum/emerge/internal/model"
	"github.com/san-kum/emerge/internal/sim"
)

// Summary reduces one trajectory to the fixed sensitivity statistics.
type Summary struct {
	FinalInfo        float64
	FinalMeaning     float64
	PeakConstruction float64
	PeakTime         float64
	ThresholdTime    float64
	ThresholdReached bool
}

// Point is one grid entry. Err is non-nil when the run at this value
// failed (for example through numeric instability); the failure is
// confined to the point and never aborts the rest of the grid.
type Point struct {
	Value   float64
	Summary Summary
	Err     error
}

// Result preserves the order of the requested grid values.
type Result struct {
	Param     string
	Threshold float64
	Points    []Point
}

// Options configures one sweep. NewIntegrator must return a fresh
// integrator per call so grid points can run on independent workers;
// it defaults to Heun. Workers defaults to 1; correctness does not
// depend on the worker count.
type Options struct {
	Param         string
	Values        []float64
	Init          entropy.State
	Config        entropy.Config
	Threshold     float64
	NewIntegrator func() entropy.Integrator
	Workers       int
}

// Run clones base once per grid value, overrides the varying parameter,
// simulates, and reduces. Grid points are mutually independent.
func Run(ctx context.Context, base *model.DualEntropy, opts Options) (*Result, error) {
	if opts.Param == "" {
		return nil, &entropy.ConfigError{Field: "param", Message: "must name the varying parameter"}
	}
	if _, ok := base.Params()[opts.Param]; !ok {
		return nil, fmt.Errorf("%w: %s", entropy.ErrUnknownParameter, opts.Param)
	}

	newIntegrator := opts.NewIntegrator
	if newIntegrator == nil {
		newIntegrator = func() entropy.Integrator { return integrators.NewHeun() }
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(opts.Values) && len(opts.Values) > 0 {
		workers = len(opts.Values)
	}

	res := &Result{
		Param:     opts.Param,
		Threshold: opts.Threshold,
		Points:    make([]Point, len(opts.Values)),
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			integ := newIntegrator()
			for i := range indices {
				res.Points[i] = runPoint(ctx, base, integ, opts, opts.Values[i])
			}
		}()
	}

	for i := range opts.Values {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return res, nil
}

func runPoint(ctx context.Context, base *model.DualEntropy, integ entropy.Integrator, opts Options, value float64) Point {
	p := Point{Value: value, Summary: Summary{ThresholdTime: math.NaN()}}

	sys := base.Clone()
	if err := sys.SetParam(opts.Param, value); err != nil {
		p.Err = err
		return p
	}

	tr, err := sim.New(sys, integ).Run(ctx, opts.Init, opts.Config)
	if err != nil {
		p.Err = err
		return p
	}

	p.Summary = Reduce(tr, opts.Threshold)
	return p
}

// Reduce computes the summary statistics of one trajectory.
func Reduce(tr *entropy.Trajectory, threshold float64) Summary {
	final := tr.Final()
	peak, at := tr.PeakConstruction()
	crossing, reached := tr.ThresholdTime(threshold)
	return Summary{
		FinalInfo:        final.Info,
		FinalMeaning:     final.Meaning,
		PeakConstruction: peak,
		PeakTime:         at,
		ThresholdTime:    crossing,
		ThresholdReached: reached,
	}
}
