package physics

import (
	"math"

	"github.com/san-kum/armtorque/internal/statics"
)

// ReferencePoints are the four fixed points of the reference pose.
type ReferencePoints struct {
	Origin statics.Vec2
	Elbow  statics.Vec2
	Wrist  statics.Vec2
	End    statics.Vec2
}

func cmToM(c float64) float64 { return 0.01 * c }

// ReferenceGeometryCM returns the reference pose in centimeters. The elbow is
// the intersection point that keeps link 1 at 40 cm from the origin and
// link 2 at 45 cm from the wrist, so it is computed in closed form rather
// than stored as a rounded literal.
func ReferenceGeometryCM() ReferencePoints {
	root := math.Sqrt(116319.0)
	return ReferencePoints{
		Origin: statics.Vec2{X: 0.0, Y: 30.0},
		Elbow: statics.Vec2{
			X: (6595.0 / 436.0) + (27.0 * root / 872.0),
			Y: (22203.0 / 872.0) + (45.0 * root / 436.0),
		},
		Wrist: statics.Vec2{X: 40.0, Y: 18.0},
		End:   statics.Vec2{X: 40.0, Y: 0.0},
	}
}

// ReferenceGeometry returns the reference pose in meters.
func ReferenceGeometry() ReferencePoints {
	cm := ReferenceGeometryCM()
	conv := func(v statics.Vec2) statics.Vec2 {
		return statics.Vec2{X: cmToM(v.X), Y: cmToM(v.Y)}
	}
	return ReferencePoints{
		Origin: conv(cm.Origin),
		Elbow:  conv(cm.Elbow),
		Wrist:  conv(cm.Wrist),
		End:    conv(cm.End),
	}
}

// ReferencePositions expands the reference points into the full set of mass
// locations with the shoulder pivot at the origin point.
func ReferencePositions() Positions {
	p := ReferenceGeometry()
	return Positions{
		Shoulder: p.Origin,
		Elbow:    p.Elbow,
		Wrist:    p.Wrist,
		Tip:      p.End,
		Link1Mid: p.Origin.Midpoint(p.Elbow),
		Link2Mid: p.Elbow.Midpoint(p.Wrist),
		Link3Mid: p.Wrist.Midpoint(p.End),
	}
}

// ReferenceTorques evaluates the signed shoulder and elbow torques of the
// reference pose for the given inventory. Callers report absolute values.
func ReferenceTorques(m Masses, g float64) (shoulder, elbow float64) {
	return TorquesAt(ReferencePositions(), m, g)
}

// Joints returns the reference chain in drawing order.
func (p ReferencePoints) Joints() [4]statics.Vec2 {
	return [4]statics.Vec2{p.Origin, p.Elbow, p.Wrist, p.End}
}
