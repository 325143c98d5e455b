package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/armtorque/internal/statics"
)

// Convention selects how the third joint angle orients link 3.
type Convention string

const (
	// Link3Absolute points link 3 along theta3 measured from the +X axis,
	// independent of the first two joints.
	Link3Absolute Convention = "absolute"
	// Link3Relative points link 3 along theta1+theta2+theta3.
	Link3Relative Convention = "relative"
)

// Lengths are the link lengths in meters.
type Lengths struct {
	L1 float64 `yaml:"l1" toml:"l1" json:"l1"`
	L2 float64 `yaml:"l2" toml:"l2" json:"l2"`
	L3 float64 `yaml:"l3" toml:"l3" json:"l3"`
}

// Positions are the resolved pivot, midpoint and tip locations of a pose.
type Positions struct {
	Shoulder statics.Vec2
	Elbow    statics.Vec2
	Wrist    statics.Vec2
	Tip      statics.Vec2
	Link1Mid statics.Vec2
	Link2Mid statics.Vec2
	Link3Mid statics.Vec2
}

// Joints returns the chain in drawing order: shoulder, elbow, wrist, tip.
func (p Positions) Joints() [4]statics.Vec2 {
	return [4]statics.Vec2{p.Shoulder, p.Elbow, p.Wrist, p.Tip}
}

// Arm is a planar three-link manipulator with its shoulder pivot at the
// origin.
type Arm struct {
	Lengths Lengths
	Masses  Masses
	Gravity float64
	Link3   Convention
}

func NewArm() *Arm {
	return &Arm{
		Lengths: Lengths{L1: 0.400, L2: 0.450, L3: 0.180},
		Masses:  DefaultMasses(),
		Gravity: statics.DefaultGravity,
		Link3:   Link3Absolute,
	}
}

func (a *Arm) Validate() error {
	if err := statics.CheckLength("links.l1", a.Lengths.L1); err != nil {
		return err
	}
	if err := statics.CheckLength("links.l2", a.Lengths.L2); err != nil {
		return err
	}
	if err := statics.CheckLength("links.l3", a.Lengths.L3); err != nil {
		return err
	}
	if err := statics.CheckGravity(a.Gravity); err != nil {
		return err
	}
	switch a.Link3 {
	case Link3Absolute, Link3Relative:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConvention, a.Link3)
	}
	return a.Masses.Validate()
}

// WristHeight is the vertical coordinate of the wrist pivot. It depends only
// on the first two joints.
func (a *Arm) WristHeight(theta1, theta2 float64) float64 {
	return a.Lengths.L1*math.Sin(theta1) + a.Lengths.L2*math.Sin(theta1+theta2)
}

func (a *Arm) link3Angle(p statics.Pose) float64 {
	if a.Link3 == Link3Relative {
		return p.Theta1 + p.Theta2 + p.Theta3
	}
	return p.Theta3
}

// Resolve runs forward kinematics for pose p.
func (a *Arm) Resolve(p statics.Pose) Positions {
	L1, L2, L3 := a.Lengths.L1, a.Lengths.L2, a.Lengths.L3
	phi1 := p.Theta1
	phi2 := p.Theta1 + p.Theta2
	phi3 := a.link3Angle(p)

	c1, s1 := math.Cos(phi1), math.Sin(phi1)
	c2, s2 := math.Cos(phi2), math.Sin(phi2)
	c3, s3 := math.Cos(phi3), math.Sin(phi3)

	elbow := statics.Vec2{X: L1 * c1, Y: L1 * s1}
	wrist := statics.Vec2{X: elbow.X + L2*c2, Y: elbow.Y + L2*s2}
	tip := statics.Vec2{X: wrist.X + L3*c3, Y: wrist.Y + L3*s3}

	return Positions{
		Shoulder: statics.Vec2{},
		Elbow:    elbow,
		Wrist:    wrist,
		Tip:      tip,
		Link1Mid: statics.Vec2{X: (L1 / 2) * c1, Y: (L1 / 2) * s1},
		Link2Mid: statics.Vec2{X: elbow.X + (L2/2)*c2, Y: elbow.Y + (L2/2)*s2},
		Link3Mid: statics.Vec2{X: wrist.X + (L3/2)*c3, Y: wrist.Y + (L3/2)*s3},
	}
}

// Reach is the horizontal coordinate of the end effector.
func (a *Arm) Reach(p statics.Pose) float64 {
	return a.Resolve(p).Tip.X
}

// Torques returns the signed shoulder and elbow torques for pose p.
func (a *Arm) Torques(p statics.Pose) (shoulder, elbow float64) {
	return TorquesAt(a.Resolve(p), a.Masses, a.Gravity)
}

// TorquesAt evaluates the shoulder torque over the whole inventory and the
// elbow torque over the masses distal to the elbow.
func TorquesAt(pos Positions, m Masses, g float64) (shoulder, elbow float64) {
	shoulder = statics.TorqueAbout(pos.Shoulder, m.PointMasses(pos), g)
	elbow = statics.TorqueAbout(pos.Elbow, m.DistalToElbow(pos), g)
	return shoulder, elbow
}

func (a *Arm) GetParams() map[string]float64 {
	params := a.Masses.GetParams()
	params["l1"] = a.Lengths.L1
	params["l2"] = a.Lengths.L2
	params["l3"] = a.Lengths.L3
	params["gravity"] = a.Gravity
	return params
}

func (a *Arm) SetParam(name string, value float64) error {
	switch name {
	case "l1":
		a.Lengths.L1 = value
	case "l2":
		a.Lengths.L2 = value
	case "l3":
		a.Lengths.L3 = value
	case "gravity":
		a.Gravity = value
	default:
		return a.Masses.SetParam(name, value)
	}
	return nil
}

// Clone returns an independent copy of the arm.
func (a *Arm) Clone() *Arm {
	c := *a
	return &c
}

// PointMasses places the arm's inventory at the resolved positions.
func (a *Arm) PointMasses(pos Positions) []statics.PointMass {
	return a.Masses.PointMasses(pos)
}
