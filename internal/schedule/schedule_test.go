package schedule_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qdyn/internal/schedule"
)

var _ = Describe("Constant", func() {
	It("returns the same value at any time", func() {
		s := schedule.NewConstant(0.03)
		Expect(s.At(0)).To(Equal(0.03))
		Expect(s.At(123.4)).To(Equal(0.03))
	})
})

var _ = Describe("Ramp", func() {
	s := schedule.NewRamp(0, 0.1, 0, 10)

	It("clamps below the window", func() {
		Expect(s.At(-5)).To(Equal(0.0))
	})

	It("clamps above the window", func() {
		Expect(s.At(20)).To(Equal(0.1))
	})

	It("interpolates linearly inside", func() {
		Expect(s.At(5)).To(BeNumerically("~", 0.05, 1e-12))
	})
})

var _ = Describe("Exponential", func() {
	It("starts at the amplitude and decays", func() {
		s := schedule.NewExponential(0.2, 0.4)
		Expect(s.At(0)).To(BeNumerically("~", 0.2, 1e-12))
		Expect(s.At(5)).To(BeNumerically("<", s.At(1)))
		Expect(s.At(100)).To(BeNumerically(">=", 0.0))
	})
})

var _ = Describe("Sinusoidal", func() {
	It("stays non-negative when offset dominates depth", func() {
		s := schedule.NewSinusoidal(0.12, 0.08, 1.5)
		for t := 0.0; t < 10; t += 0.01 {
			Expect(s.At(t)).To(BeNumerically(">=", 0.0))
		}
	})

	It("oscillates around the offset", func() {
		s := schedule.NewSinusoidal(0.12, 0.08, 1.5)
		Expect(s.At(0)).To(BeNumerically("~", 0.12, 1e-12))
	})
})

var _ = Describe("GaussianPulse", func() {
	s := schedule.NewGaussianPulse(0.15, 3.0, 0.5)

	It("peaks at the center", func() {
		Expect(s.At(3.0)).To(BeNumerically("~", 0.15, 1e-12))
		Expect(s.At(2.0)).To(BeNumerically("<", s.At(3.0)))
		Expect(s.At(4.0)).To(BeNumerically("<", s.At(3.0)))
	})

	It("is symmetric about the center", func() {
		Expect(s.At(2.3)).To(BeNumerically("~", s.At(3.7), 1e-12))
	})
})

var _ = Describe("Smoothstep", func() {
	s := schedule.NewSmoothstep(0, 0.25, 1.0, 0.3)

	It("switches between the endpoints", func() {
		Expect(s.At(-10)).To(BeNumerically("~", 0.0, 1e-9))
		Expect(s.At(10)).To(BeNumerically("~", 0.25, 1e-9))
	})

	It("passes through the midpoint at the center", func() {
		Expect(s.At(1.0)).To(BeNumerically("~", 0.125, 1e-12))
	})

	It("is monotonic", func() {
		prev := s.At(0)
		for t := 0.1; t < 3; t += 0.1 {
			v := s.At(t)
			Expect(v).To(BeNumerically(">=", prev))
			prev = v
		}
	})
})
