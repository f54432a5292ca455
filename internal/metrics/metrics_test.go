package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/emerge/internal/entropy"
)

func TestPeakConstruction(t *testing.T) {
	p := NewPeakConstruction()

	p.Observe(entropy.State{}, 0.1, 0)
	p.Observe(entropy.State{}, 0.5, 1)
	p.Observe(entropy.State{}, 0.2, 2)

	if p.Value() != 0.5 {
		t.Errorf("expected peak 0.5, got %f", p.Value())
	}
	if p.At() != 1 {
		t.Errorf("expected peak at t=1, got %f", p.At())
	}

	p.Reset()
	if p.Value() != 0 || p.At() != 0 {
		t.Error("reset did not clear peak")
	}
}

func TestThresholdCrossing(t *testing.T) {
	c := NewThresholdCrossing(0.5)

	c.Observe(entropy.State{Meaning: 1.0}, 0, 0)
	if c.Reached() {
		t.Error("threshold reported reached too early")
	}
	if !math.IsNaN(c.Value()) {
		t.Errorf("expected NaN before crossing, got %f", c.Value())
	}

	c.Observe(entropy.State{Meaning: 0.4}, 0, 3)
	c.Observe(entropy.State{Meaning: 0.3}, 0, 4)

	if !c.Reached() || c.Value() != 3 {
		t.Errorf("expected first crossing at t=3, got %f (reached=%v)", c.Value(), c.Reached())
	}
}

func TestFinalState(t *testing.T) {
	f := NewFinalState()
	f.Observe(entropy.State{Info: 1, Meaning: 2}, 0, 0)
	f.Observe(entropy.State{Info: 0.5, Meaning: 0.7}, 0, 1)

	if f.State() != (entropy.State{Info: 0.5, Meaning: 0.7}) {
		t.Errorf("unexpected final state: %+v", f.State())
	}
	if f.Value() != 0.7 {
		t.Errorf("expected final meaning 0.7, got %f", f.Value())
	}
}
