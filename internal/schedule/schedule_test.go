package schedule

import (
	"math"
	"testing"
)

func TestPulseTrainShape(t *testing.T) {
	p := PulseTrain{Period: 10, Width: 1, Strength: 0.5, Offset: 10}

	if got := p.At(0); got != 0 {
		t.Errorf("expected 0 before offset, got %f", got)
	}
	if got := p.At(10.5); got != 0.5 {
		t.Errorf("expected strength inside pulse, got %f", got)
	}
	if got := p.At(12.0); got != 0 {
		t.Errorf("expected 0 between pulses, got %f", got)
	}
	if got := p.At(30.2); got != 0.5 {
		t.Errorf("expected strength in later pulse, got %f", got)
	}
}

func TestPulseTrainValidate(t *testing.T) {
	tests := []struct {
		name  string
		pulse PulseTrain
	}{
		{"zero period", PulseTrain{Period: 0, Width: 1, Strength: 0.5}},
		{"width exceeds period", PulseTrain{Period: 1, Width: 2, Strength: 0.5}},
		{"negative strength", PulseTrain{Period: 10, Width: 1, Strength: -1}},
		{"offset outside run", PulseTrain{Period: 10, Width: 1, Strength: 0.5, Offset: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.pulse.Validate(100); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	good := PulseTrain{Period: 10, Width: 1, Strength: 0.5, Offset: 10}
	if err := good.Validate(100); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAlphaPulseShape(t *testing.T) {
	a := AlphaPulse{Onset: 15, Intensity: 1.0, Tau: 5}

	if got := a.At(10); got != 0 {
		t.Errorf("expected 0 before onset, got %f", got)
	}
	if got := a.At(a.PeakTime()); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected intensity at peak, got %f", got)
	}

	// Bounded: never exceeds intensity anywhere.
	for tm := 0.0; tm <= 100; tm += 0.05 {
		if v := a.At(tm); v < 0 || v > 1.0+1e-12 {
			t.Fatalf("pulse out of bounds at t=%f: %f", tm, v)
		}
	}

	// Monotone rise before peak, decay after.
	if a.At(17) >= a.At(19) {
		t.Error("expected rising edge before peak")
	}
	if a.At(25) <= a.At(40) {
		t.Error("expected decaying tail after peak")
	}
}

func TestAlphaPulseValidate(t *testing.T) {
	tests := []struct {
		name  string
		pulse AlphaPulse
	}{
		{"zero tau", AlphaPulse{Onset: 10, Intensity: 1, Tau: 0}},
		{"negative intensity", AlphaPulse{Onset: 10, Intensity: -1, Tau: 5}},
		{"onset outside run", AlphaPulse{Onset: 150, Intensity: 1, Tau: 5}},
		{"peak outside run", AlphaPulse{Onset: 98, Intensity: 1, Tau: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.pulse.Validate(100); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
