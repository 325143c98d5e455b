package optim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/armtorque/internal/physics"
	"github.com/san-kum/armtorque/internal/statics"
)

const (
	DefaultTheta3       = 90.0
	DefaultTargetHeight = 0.12
	DefaultTolerance    = 0.001

	// rows of theta1 handed to each worker at minimum
	minRowsPerWorker = 1
)

// ReachSearch finds the pose with the largest horizontal reach whose wrist
// sits at TargetHeight and whose joint torques stay within limits. Every
// grid point is evaluated; there is no early exit.
type ReachSearch struct {
	Theta1       AngleRange `yaml:"theta1" toml:"theta1" json:"theta1"`
	Theta2       AngleRange `yaml:"theta2" toml:"theta2" json:"theta2"`
	Theta3       float64    `yaml:"theta3" toml:"theta3" json:"theta3"`
	TargetHeight float64    `yaml:"target_height" toml:"target_height" json:"target_height"`
	Tolerance    float64    `yaml:"tolerance" toml:"tolerance" json:"tolerance"`
	Workers      int        `yaml:"workers" toml:"workers" json:"workers"`
}

func DefaultReachSearch() *ReachSearch {
	return &ReachSearch{
		Theta1:       AngleRange{Start: -90, Stop: 30, Step: 1},
		Theta2:       AngleRange{Start: 0, Stop: 271, Step: 1},
		Theta3:       DefaultTheta3,
		TargetHeight: DefaultTargetHeight,
		Tolerance:    DefaultTolerance,
	}
}

func (s *ReachSearch) Validate() error {
	if err := s.Theta1.Validate("theta1"); err != nil {
		return err
	}
	if err := s.Theta2.Validate("theta2"); err != nil {
		return err
	}
	if math.IsNaN(s.Tolerance) || math.IsInf(s.Tolerance, 0) || s.Tolerance < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidTolerance, s.Tolerance)
	}
	if math.IsNaN(s.TargetHeight) || math.IsInf(s.TargetHeight, 0) ||
		math.IsNaN(s.Theta3) || math.IsInf(s.Theta3, 0) {
		return fmt.Errorf("%w: target height and theta3 must be finite", ErrInvalidGrid)
	}
	return nil
}

// Candidate is one feasible grid point.
type Candidate struct {
	Theta1Deg float64
	Theta2Deg float64
	Pose      statics.Pose
	Reach     float64
	Shoulder  float64
	Elbow     float64
}

// ReachResult is the outcome of a search. When no feasible pose improves on
// zero reach, Found is false and MaxX and Pose are zero.
type ReachResult struct {
	MaxX      float64
	Pose      statics.Pose
	Theta1Deg float64
	Theta2Deg float64
	Shoulder  float64
	Elbow     float64
	Found     bool

	Evaluated        int
	PositionFeasible int
	Feasible         int
	Elapsed          time.Duration
}

// partial is the best point of a block of theta1 rows.
type partial struct {
	best   Candidate
	i1, i2 int
	found  bool

	evaluated, positional, feasible int
}

// prefer reports whether a should replace b as the optimum: larger reach
// wins, exact ties go to the smaller (theta1, theta2) grid index.
func prefer(a, b *partial) bool {
	if !a.found {
		return false
	}
	if !b.found {
		return true
	}
	if a.best.Reach != b.best.Reach {
		return a.best.Reach > b.best.Reach
	}
	if a.i1 != b.i1 {
		return a.i1 < b.i1
	}
	return a.i2 < b.i2
}

func (s *ReachSearch) pose(i1, i2 int) statics.Pose {
	return statics.Pose{
		Theta1: s.Theta1.Radians(i1),
		Theta2: s.Theta2.Radians(i2),
		Theta3: statics.Radians(s.Theta3),
	}
}

// scan evaluates rows [start, end) of theta1 in canonical order. visit, if
// set, is called for every feasible point.
func (s *ReachSearch) scan(ctx context.Context, arm *physics.Arm, limits statics.Limits, start, end int, visit func(Candidate)) partial {
	var p partial
	n2 := s.Theta2.Len()

	for i1 := start; i1 < end; i1++ {
		if ctx.Err() != nil {
			return p
		}
		t1 := s.Theta1.Radians(i1)

		for i2 := 0; i2 < n2; i2++ {
			p.evaluated++
			t2 := s.Theta2.Radians(i2)

			if math.Abs(arm.WristHeight(t1, t2)-s.TargetHeight) >= s.Tolerance {
				continue
			}
			p.positional++

			pose := s.pose(i1, i2)
			pos := arm.Resolve(pose)
			shoulder, elbow := physics.TorquesAt(pos, arm.Masses, arm.Gravity)
			if !limits.Allows(shoulder, elbow) {
				continue
			}
			p.feasible++

			c := Candidate{
				Theta1Deg: s.Theta1.At(i1),
				Theta2Deg: s.Theta2.At(i2),
				Pose:      pose,
				Reach:     pos.Tip.X,
				Shoulder:  shoulder,
				Elbow:     elbow,
			}
			if visit != nil {
				visit(c)
			}

			best := 0.0
			if p.found {
				best = p.best.Reach
			}
			if c.Reach > best {
				p.best, p.i1, p.i2, p.found = c, i1, i2, true
			}
		}
	}
	return p
}

// Search evaluates the whole grid and returns the feasible pose of maximum
// reach. With Workers > 1 the theta1 rows are split across goroutines and
// the partial optima are merged with the same tie-break as a sequential
// scan.
func (s *ReachSearch) Search(ctx context.Context, arm *physics.Arm, limits statics.Limits) (*ReachResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := arm.Validate(); err != nil {
		return nil, err
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	logger := log.FromContext(ctx)
	start := time.Now()
	n1 := s.Theta1.Len()

	chunks, _ := statics.Chunks(n1, minRowsPerWorker, s.Workers)
	partials := make([]partial, chunks)
	statics.ParallelFor(n1, minRowsPerWorker, s.Workers, func(k, lo, hi int) {
		partials[k] = s.scan(ctx, arm, limits, lo, hi, nil)
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	var merged partial
	res := &ReachResult{}
	for i := range partials {
		p := &partials[i]
		res.Evaluated += p.evaluated
		res.PositionFeasible += p.positional
		res.Feasible += p.feasible
		if prefer(p, &merged) {
			merged.best, merged.i1, merged.i2, merged.found = p.best, p.i1, p.i2, true
		}
	}

	if merged.found {
		res.Found = true
		res.MaxX = merged.best.Reach
		res.Pose = merged.best.Pose
		res.Theta1Deg = merged.best.Theta1Deg
		res.Theta2Deg = merged.best.Theta2Deg
		res.Shoulder = merged.best.Shoulder
		res.Elbow = merged.best.Elbow
	}
	res.Elapsed = time.Since(start)

	logger.Debug("reach search",
		"grid", fmt.Sprintf("%dx%d", n1, s.Theta2.Len()),
		"chunks", chunks,
		"positional", res.PositionFeasible,
		"feasible", res.Feasible,
		"found", res.Found,
		"elapsed", res.Elapsed.Round(time.Microsecond),
	)
	return res, nil
}

// FeasiblePoses lists every feasible grid point in canonical order. It runs
// sequentially regardless of Workers.
func (s *ReachSearch) FeasiblePoses(ctx context.Context, arm *physics.Arm, limits statics.Limits) ([]Candidate, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := arm.Validate(); err != nil {
		return nil, err
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	var out []Candidate
	s.scan(ctx, arm, limits, 0, s.Theta1.Len(), func(c Candidate) {
		out = append(out, c)
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return out, nil
}

// Clone returns an independent copy of the search settings.
func (s *ReachSearch) Clone() *ReachSearch {
	c := *s
	return &c
}
