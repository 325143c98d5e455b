package statics

// Moment is the contribution of a single weight to the moment about pivot.
// The force has no horizontal component, so the cross product rx*Fy - ry*Fx
// reduces to rx*Fy and the vertical offset never enters.
func Moment(pivot Vec2, m PointMass, g float64) float64 {
	rx := m.Pos.X - pivot.X
	fy := -m.Mass * g
	return rx * fy
}

// TorqueAbout sums the gravitational moments of masses about pivot.
// Callers pass only the masses carried by the structure distal to the
// pivot.
func TorqueAbout(pivot Vec2, masses []PointMass, g float64) float64 {
	total := 0.0
	for _, m := range masses {
		total += Moment(pivot, m, g)
	}
	return total
}
