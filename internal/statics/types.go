package statics

import (
	"fmt"
	"math"
)

// DefaultGravity is the gravitational acceleration used by every torque
// computation unless a caller overrides it (m/s²).
const DefaultGravity = 9.87

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Midpoint returns the point halfway between v and o.
func (v Vec2) Midpoint(o Vec2) Vec2 {
	return Vec2{(v.X + o.X) / 2.0, (v.Y + o.Y) / 2.0}
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

// PointMass is a mass in kilograms lumped at Pos.
type PointMass struct {
	Name string
	Pos  Vec2
	Mass float64
}

// Pose holds the joint angles of a three-link chain in radians.
type Pose struct {
	Theta1 float64
	Theta2 float64
	Theta3 float64
}

func (p Pose) Degrees() (float64, float64, float64) {
	return Degrees(p.Theta1), Degrees(p.Theta2), Degrees(p.Theta3)
}

func (p Pose) IsZero() bool {
	return p.Theta1 == 0 && p.Theta2 == 0 && p.Theta3 == 0
}

// Limits are the torque limits of the actuated pivots in N·m. They are
// always compared against the absolute value of a computed torque.
type Limits struct {
	Shoulder float64 `yaml:"shoulder" toml:"shoulder" json:"shoulder"`
	Elbow    float64 `yaml:"elbow" toml:"elbow" json:"elbow"`
}

// Allows reports whether both torques are within their limits.
func (l Limits) Allows(shoulder, elbow float64) bool {
	return math.Abs(shoulder) <= l.Shoulder && math.Abs(elbow) <= l.Elbow
}

func (l Limits) Validate() error {
	if err := checkNonNegative("limits.shoulder", l.Shoulder, ErrNegativeLimit); err != nil {
		return err
	}
	return checkNonNegative("limits.elbow", l.Elbow, ErrNegativeLimit)
}

// Radians converts degrees with the same factor on every call so that
// symmetric grid angles map to exactly negated radians.
func Radians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func Degrees(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}
