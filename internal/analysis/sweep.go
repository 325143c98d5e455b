package analysis

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/armtorque/internal/optim"
	"github.com/san-kum/armtorque/internal/physics"
	"github.com/san-kum/armtorque/internal/statics"
)

// Joint selects which torque limit a sweep varies.
type Joint string

const (
	Shoulder Joint = "shoulder"
	Elbow    Joint = "elbow"
)

func ParseJoint(s string) (Joint, error) {
	switch Joint(s) {
	case Shoulder, Elbow:
		return Joint(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownJoint, s)
}

// SweepPoint is the search outcome for one swept value.
type SweepPoint struct {
	Value            float64
	MaxX             float64
	Theta1Deg        float64
	Theta2Deg        float64
	Found            bool
	PositionFeasible int
	Feasible         int
}

// Sweep is a series of search outcomes over one varied input.
type Sweep struct {
	Name   string
	Points []SweepPoint
}

func (s *Sweep) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

func (s *Sweep) Reaches() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.MaxX
	}
	return out
}

func (s *Sweep) FeasibleCounts() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = float64(p.PositionFeasible)
	}
	return out
}

// NonDecreasing reports whether max reach never drops from one point to
// the next.
func (s *Sweep) NonDecreasing() bool {
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].MaxX < s.Points[i-1].MaxX {
			return false
		}
	}
	return true
}

// LinearValues returns n evenly spaced values from lo to hi inclusive.
func LinearValues(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	vals[n-1] = hi
	return vals
}

func point(v float64, res *optim.ReachResult) SweepPoint {
	return SweepPoint{
		Value:            v,
		MaxX:             res.MaxX,
		Theta1Deg:        res.Theta1Deg,
		Theta2Deg:        res.Theta2Deg,
		Found:            res.Found,
		PositionFeasible: res.PositionFeasible,
		Feasible:         res.Feasible,
	}
}

// SweepLimit runs the search once per value of the chosen joint limit,
// holding every other input fixed.
func SweepLimit(ctx context.Context, search *optim.ReachSearch, arm *physics.Arm, limits statics.Limits, joint Joint, values []float64) (*Sweep, error) {
	if _, err := ParseJoint(string(joint)); err != nil {
		return nil, err
	}

	sw := &Sweep{Name: string(joint) + " limit", Points: make([]SweepPoint, 0, len(values))}
	for _, v := range values {
		l := limits
		if joint == Shoulder {
			l.Shoulder = v
		} else {
			l.Elbow = v
		}

		res, err := search.Search(ctx, arm, l)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", joint, v, err)
		}
		sw.Points = append(sw.Points, point(v, res))
	}

	log.FromContext(ctx).Debug("limit sweep", "joint", joint, "points", len(sw.Points), "monotone", sw.NonDecreasing())
	return sw, nil
}

// SweepTolerance runs the search once per positional tolerance.
func SweepTolerance(ctx context.Context, search *optim.ReachSearch, arm *physics.Arm, limits statics.Limits, tolerances []float64) (*Sweep, error) {
	sw := &Sweep{Name: "tolerance", Points: make([]SweepPoint, 0, len(tolerances))}
	s := search.Clone()
	for _, tol := range tolerances {
		s.Tolerance = tol
		res, err := s.Search(ctx, arm, limits)
		if err != nil {
			return nil, fmt.Errorf("sweep tolerance=%g: %w", tol, err)
		}
		sw.Points = append(sw.Points, point(tol, res))
	}

	log.FromContext(ctx).Debug("tolerance sweep", "points", len(sw.Points))
	return sw, nil
}
