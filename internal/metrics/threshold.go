package metrics

import (
	"math"

	"github.com/san-kum/emerge/internal/entropy"
)

// ThresholdCrossing records the first time meaning entropy falls below a
// threshold. Value returns NaN while the threshold was never reached;
// Reached distinguishes that outcome explicitly.
type ThresholdCrossing struct {
	threshold float64
	at        float64
	reached   bool
}

func NewThresholdCrossing(threshold float64) *ThresholdCrossing {
	return &ThresholdCrossing{threshold: threshold, at: math.NaN()}
}

func (c *ThresholdCrossing) Name() string { return "threshold_crossing" }

func (c *ThresholdCrossing) Observe(x entropy.State, construction, t float64) {
	if c.reached {
		return
	}
	if x.Meaning < c.threshold {
		c.at = t
		c.reached = true
	}
}

func (c *ThresholdCrossing) Value() float64 { return c.at }

func (c *ThresholdCrossing) Reached() bool { return c.reached }

func (c *ThresholdCrossing) Reset() {
	c.at = math.NaN()
	c.reached = false
}
