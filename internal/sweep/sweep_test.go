package sweep_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/emerge/internal/entropy"
	"github.com/san-kum/emerge/internal/model"
	"github.com/san-kum/emerge/internal/schedule"
	"github.com/san-kum/emerge/internal/sweep"
)

func baseModel() *model.DualEntropy {
	return &model.DualEntropy{
		InfoDecay:    0.3,
		InfoBaseline: 0.2,
		MeaningDecay: 0.05,
		MeaningFloor: 0.1,
		Coupling:     0.4,
		InputGain:    1.0,
		Culture:      schedule.PulseTrain{Period: 10, Width: 1, Strength: 0.5, Offset: 10},
	}
}

var _ = Describe("Sweep", func() {
	var (
		base *model.DualEntropy
		opts sweep.Options
	)

	BeforeEach(func() {
		base = baseModel()
		opts = sweep.Options{
			Param:     "coupling",
			Values:    []float64{0.0, 0.2, 0.4, 0.6},
			Init:      entropy.State{Info: 1.2, Meaning: 1.0},
			Config:    entropy.Config{Dt: 0.1, Duration: 100},
			Threshold: 0.4,
		}
	})

	It("preserves grid order and length", func() {
		res, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Points).To(HaveLen(len(opts.Values)))
		for i, p := range res.Points {
			Expect(p.Value).To(Equal(opts.Values[i]))
			Expect(p.Err).NotTo(HaveOccurred())
		}
	})

	It("yields a non-decreasing construction peak in the coupling coefficient", func() {
		res, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < len(res.Points); i++ {
			Expect(res.Points[i].Summary.PeakConstruction).To(
				BeNumerically(">=", res.Points[i-1].Summary.PeakConstruction),
				"peak construction fell between coupling %v and %v",
				res.Points[i-1].Value, res.Points[i].Value,
			)
		}
	})

	It("represents an unreached threshold explicitly rather than failing", func() {
		opts.Threshold = 0 // meaning entropy never falls below zero
		res, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range res.Points {
			Expect(p.Err).NotTo(HaveOccurred())
			Expect(p.Summary.ThresholdReached).To(BeFalse())
			Expect(math.IsNaN(p.Summary.ThresholdTime)).To(BeTrue())
		}
	})

	It("records per-point instability without aborting the grid", func() {
		opts.Param = "info_decay"
		opts.Values = []float64{0.3, 80.0, 0.5} // 80/dt=0.1 diverges immediately

		res, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Points).To(HaveLen(3))

		Expect(res.Points[0].Err).NotTo(HaveOccurred())
		Expect(res.Points[2].Err).NotTo(HaveOccurred())
		Expect(res.Points[1].Err).To(MatchError(entropy.ErrUnstable))
	})

	It("isolates grid points from a failing neighbour", func() {
		opts.Param = "info_decay"

		opts.Values = []float64{0.3, 80.0, 0.5}
		withFailure, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())

		opts.Values = []float64{0.3, 0.5}
		clean, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())

		Expect(withFailure.Points[0].Summary).To(Equal(clean.Points[0].Summary))
		Expect(withFailure.Points[2].Summary).To(Equal(clean.Points[1].Summary))
	})

	It("produces identical results on parallel workers", func() {
		serial, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())

		opts.Workers = 4
		parallel, err := sweep.Run(context.Background(), base, opts)
		Expect(err).NotTo(HaveOccurred())

		Expect(parallel.Points).To(Equal(serial.Points))
	})

	It("rejects an unknown varying parameter up front", func() {
		opts.Param = "warp_factor"
		_, err := sweep.Run(context.Background(), base, opts)
		Expect(err).To(MatchError(entropy.ErrUnknownParameter))
	})
})
