// Package metrics provides streaming reductions over a run: each metric
// observes every recorded sample and yields one scalar at the end.
package metrics

import "github.com/san-kum/emerge/internal/entropy"

// PeakConstruction tracks the maximum of the meaning-construction signal
// and the time it occurred at.
type PeakConstruction struct {
	peak float64
	at   float64
}

func NewPeakConstruction() *PeakConstruction {
	return &PeakConstruction{}
}

func (p *PeakConstruction) Name() string { return "peak_construction" }

func (p *PeakConstruction) Observe(x entropy.State, construction, t float64) {
	if construction > p.peak {
		p.peak = construction
		p.at = t
	}
}

func (p *PeakConstruction) Value() float64 { return p.peak }

// At returns the time of the peak.
func (p *PeakConstruction) At() float64 { return p.at }

func (p *PeakConstruction) Reset() {
	p.peak = 0
	p.at = 0
}

// FinalState remembers the last observed sample.
type FinalState struct {
	last entropy.State
}

func NewFinalState() *FinalState {
	return &FinalState{}
}

func (f *FinalState) Name() string { return "final_state" }

func (f *FinalState) Observe(x entropy.State, construction, t float64) { f.last = x }

// Value returns the final meaning entropy; use State for both channels.
func (f *FinalState) Value() float64 { return f.last.Meaning }

func (f *FinalState) State() entropy.State { return f.last }

func (f *FinalState) Reset() { f.last = entropy.State{} }
