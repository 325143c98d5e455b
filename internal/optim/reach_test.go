package optim

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armtorque/internal/physics"
	"github.com/san-kum/armtorque/internal/statics"
)

var defaultLimits = statics.Limits{Shoulder: 33, Elbow: 21}

var _ = Describe("AngleRange", func() {
	It("is half-open", func() {
		r := AngleRange{Start: -90, Stop: 30, Step: 1}
		Expect(r.Len()).To(Equal(120))
		Expect(r.At(0)).To(Equal(-90.0))
		Expect(r.At(r.Len() - 1)).To(Equal(29.0))
	})

	It("includes 270 for the default theta2 range", func() {
		r := DefaultReachSearch().Theta2
		Expect(r.Len()).To(Equal(271))
		Expect(r.Values()[270]).To(Equal(270.0))
	})

	It("handles steps that do not divide the span", func() {
		r := AngleRange{Start: 0, Stop: 10, Step: 3}
		Expect(r.Values()).To(Equal([]float64{0, 3, 6, 9}))
	})

	It("rejects empty and non-positive ranges", func() {
		Expect(AngleRange{Start: 0, Stop: 10, Step: 0}.Validate("t")).To(MatchError(ErrInvalidGrid))
		Expect(AngleRange{Start: 5, Stop: 5, Step: 1}.Validate("t")).To(MatchError(ErrInvalidGrid))
		Expect(AngleRange{Start: 0, Stop: math.Inf(1), Step: 1}.Validate("t")).To(MatchError(ErrInvalidGrid))
	})

	It("rejects grids too fine to enumerate", func() {
		tiny := AngleRange{Start: -90, Stop: 30, Step: 1e-20}
		Expect(tiny.Validate("theta1")).To(MatchError(ErrInvalidGrid))
		Expect(tiny.Len()).To(Equal(0))

		dense := AngleRange{Start: 0, Stop: 2, Step: 1e-6}
		Expect(dense.Validate("theta1")).To(MatchError(ErrInvalidGrid))
		Expect(dense.Len()).To(Equal(0))

		Expect(AngleRange{Start: 0, Stop: 1, Step: 1e-5}.Validate("theta1")).To(Succeed())
	})

	It("refuses to search a grid too fine to enumerate", func() {
		search := DefaultReachSearch()
		search.Theta1.Step = 1e-20
		_, err := search.Search(context.Background(), physics.NewArm(), defaultLimits)
		Expect(err).To(MatchError(ErrInvalidGrid))
	})
})

var _ = Describe("ReachSearch", func() {
	var (
		ctx    context.Context
		arm    *physics.Arm
		search *ReachSearch
	)

	BeforeEach(func() {
		ctx = context.Background()
		arm = physics.NewArm()
		search = DefaultReachSearch()
	})

	Describe("default configuration", func() {
		It("reproduces the reference optimum", func() {
			res, err := search.Search(ctx, arm, defaultLimits)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Found).To(BeTrue())
			Expect(res.MaxX).To(BeNumerically("~", 0.5515053430043535, 1e-12))
			Expect(res.Theta1Deg).To(Equal(-40.0))
			Expect(res.Theta2Deg).To(Equal(97.0))
			Expect(res.Pose.Theta1).To(Equal(statics.Radians(-40)))
			Expect(res.Pose.Theta2).To(Equal(statics.Radians(97)))
			Expect(res.Pose.Theta3).To(BeNumerically("~", math.Pi/2, 1e-15))
		})

		It("evaluates the whole grid", func() {
			res, err := search.Search(ctx, arm, defaultLimits)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Evaluated).To(Equal(120 * 271))
			Expect(res.PositionFeasible).To(Equal(74))
			Expect(res.Feasible).To(Equal(43))
		})

		It("reports torques within limits at the optimum", func() {
			res, err := search.Search(ctx, arm, defaultLimits)
			Expect(err).NotTo(HaveOccurred())

			s, e := arm.Torques(res.Pose)
			Expect(res.Shoulder).To(Equal(s))
			Expect(res.Elbow).To(Equal(e))
			Expect(math.Abs(s)).To(BeNumerically("<=", defaultLimits.Shoulder))
			Expect(math.Abs(e)).To(BeNumerically("<=", defaultLimits.Elbow))
		})

		It("places the wrist at the target height", func() {
			res, err := search.Search(ctx, arm, defaultLimits)
			Expect(err).NotTo(HaveOccurred())

			pos := arm.Resolve(res.Pose)
			Expect(pos.Wrist.Y).To(BeNumerically("~", DefaultTargetHeight, DefaultTolerance))
			Expect(pos.Tip.X).To(Equal(res.MaxX))
		})
	})

	DescribeTable("other limit settings",
		func(limits statics.Limits, maxX, t1, t2 float64, feasible int) {
			res, err := search.Search(ctx, arm, limits)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.MaxX).To(BeNumerically("~", maxX, 1e-12))
			Expect(res.Theta1Deg).To(Equal(t1))
			Expect(res.Theta2Deg).To(Equal(t2))
			Expect(res.Feasible).To(Equal(feasible))
		},
		Entry("unconstrained", statics.Limits{Shoulder: 1000, Elbow: 1000}, 0.8414782139243409, 7.0, 2.0, 74),
		Entry("weak shoulder", statics.Limits{Shoulder: 20, Elbow: 21}, 0.31325578086710787, -54.0, 134.0, 31),
	)

	Context("when no pose is feasible", func() {
		It("returns the zero sentinel", func() {
			res, err := search.Search(ctx, arm, statics.Limits{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Found).To(BeFalse())
			Expect(res.MaxX).To(BeZero())
			Expect(res.Pose.IsZero()).To(BeTrue())
			Expect(res.Feasible).To(BeZero())
			Expect(res.PositionFeasible).To(Equal(74))
		})

		It("returns the sentinel when the target is out of reach", func() {
			search.TargetHeight = 5.0
			res, err := search.Search(ctx, arm, defaultLimits)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Found).To(BeFalse())
			Expect(res.PositionFeasible).To(BeZero())
		})
	})

	Describe("tie-break", func() {
		BeforeEach(func() {
			search.TargetHeight = 0
			search.Tolerance = 1
		})

		It("keeps the smaller theta1 among equal reaches", func() {
			search.Theta1 = AngleRange{Start: -10, Stop: 11, Step: 20}
			search.Theta2 = AngleRange{Start: -20, Stop: 21, Step: 1}

			res, err := search.Search(ctx, arm, statics.Limits{Shoulder: 1e6, Elbow: 1e6})
			Expect(err).NotTo(HaveOccurred())

			mirror := arm.Reach(statics.Pose{Theta1: statics.Radians(10), Theta2: statics.Radians(-10), Theta3: statics.Radians(90)})
			Expect(res.MaxX).To(Equal(mirror))
			Expect(res.Theta1Deg).To(Equal(-10.0))
			Expect(res.Theta2Deg).To(Equal(10.0))
		})

		It("keeps the smaller theta2 among equal reaches", func() {
			search.Theta1 = AngleRange{Start: 0, Stop: 1, Step: 1}
			search.Theta2 = AngleRange{Start: -5, Stop: 6, Step: 10}

			res, err := search.Search(ctx, arm, statics.Limits{Shoulder: 1e6, Elbow: 1e6})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Theta1Deg).To(Equal(0.0))
			Expect(res.Theta2Deg).To(Equal(-5.0))
		})

		It("holds across parallel chunks", func() {
			search.Theta1 = AngleRange{Start: -10, Stop: 11, Step: 20}
			search.Theta2 = AngleRange{Start: -20, Stop: 21, Step: 1}
			search.Workers = 4

			res, err := search.Search(ctx, arm, statics.Limits{Shoulder: 1e6, Elbow: 1e6})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Theta1Deg).To(Equal(-10.0))
			Expect(res.Theta2Deg).To(Equal(10.0))
		})
	})

	Describe("parallel execution", func() {
		DescribeTable("matches the sequential scan",
			func(workers int) {
				seq, err := search.Search(ctx, arm, defaultLimits)
				Expect(err).NotTo(HaveOccurred())

				par := search.Clone()
				par.Workers = workers
				got, err := par.Search(ctx, arm, defaultLimits)
				Expect(err).NotTo(HaveOccurred())

				Expect(got.MaxX).To(Equal(seq.MaxX))
				Expect(got.Pose).To(Equal(seq.Pose))
				Expect(got.Evaluated).To(Equal(seq.Evaluated))
				Expect(got.PositionFeasible).To(Equal(seq.PositionFeasible))
				Expect(got.Feasible).To(Equal(seq.Feasible))
			},
			Entry("2 workers", 2),
			Entry("7 workers", 7),
			Entry("more workers than rows", 500),
		)
	})

	Describe("monotonicity", func() {
		It("never loses reach when the shoulder limit rises", func() {
			prev := -1.0
			for limit := 0.0; limit <= 60; limit += 5 {
				res, err := search.Search(ctx, arm, statics.Limits{Shoulder: limit, Elbow: 21})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.MaxX).To(BeNumerically(">=", prev))
				prev = res.MaxX
			}
		})

		It("never loses reach when the elbow limit rises", func() {
			prev := -1.0
			for limit := 0.0; limit <= 40; limit += 4 {
				res, err := search.Search(ctx, arm, statics.Limits{Shoulder: 33, Elbow: limit})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.MaxX).To(BeNumerically(">=", prev))
				prev = res.MaxX
			}
		})

		It("shrinks the positional set as the tolerance tightens", func() {
			prev := math.MaxInt
			for _, tol := range []float64{0.01, 0.005, 0.001, 0.0005, 0.0001, 0} {
				search.Tolerance = tol
				res, err := search.Search(ctx, arm, defaultLimits)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.PositionFeasible).To(BeNumerically("<=", prev))
				prev = res.PositionFeasible
			}
			Expect(prev).To(BeZero())
		})
	})

	Describe("FeasiblePoses", func() {
		It("lists every feasible point in canonical order", func() {
			poses, err := search.FeasiblePoses(ctx, arm, defaultLimits)
			Expect(err).NotTo(HaveOccurred())
			Expect(poses).To(HaveLen(43))

			for i := 1; i < len(poses); i++ {
				a, b := poses[i-1], poses[i]
				Expect(a.Theta1Deg < b.Theta1Deg || (a.Theta1Deg == b.Theta1Deg && a.Theta2Deg < b.Theta2Deg)).To(BeTrue())
			}

			best := poses[0]
			for _, c := range poses[1:] {
				if c.Reach > best.Reach {
					best = c
				}
			}
			Expect(best.Theta1Deg).To(Equal(-40.0))
			Expect(best.Theta2Deg).To(Equal(97.0))
		})
	})

	Describe("input validation", func() {
		It("rejects a malformed grid", func() {
			search.Theta2.Step = 0
			_, err := search.Search(ctx, arm, defaultLimits)
			Expect(err).To(MatchError(ErrInvalidGrid))
		})

		It("rejects a negative tolerance", func() {
			search.Tolerance = -0.1
			_, err := search.Search(ctx, arm, defaultLimits)
			Expect(err).To(MatchError(ErrInvalidTolerance))
		})

		It("rejects negative masses", func() {
			arm.Masses.Link2 = -0.44
			_, err := search.Search(ctx, arm, defaultLimits)
			Expect(errors.Is(err, statics.ErrNegativeMass)).To(BeTrue())
		})

		It("rejects negative limits", func() {
			_, err := search.Search(ctx, arm, statics.Limits{Shoulder: -1, Elbow: 21})
			Expect(errors.Is(err, statics.ErrNegativeLimit)).To(BeTrue())
		})
	})

	Context("with a cancelled context", func() {
		It("stops and reports the interruption", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := search.Search(cctx, arm, defaultLimits)
			Expect(err).To(MatchError(ErrInterrupted))
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})
})
