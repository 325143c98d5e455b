// Package statics provides the primitives for static moment analysis of
// planar manipulators.
//
// The package defines the values every torque computation shares:
//
//   - [Vec2]: a point in the plane (meters)
//   - [PointMass]: a mass lumped at a point
//   - [Pose]: three joint angles in radians
//   - [Limits]: per-joint torque limits
//   - [TorqueAbout]: net gravitational moment about a pivot
//
// # Sign Convention
//
// Gravity acts straight down, so only the horizontal lever arm enters the
// moment. A mass to the right of its pivot produces a negative
// (clockwise) torque:
//
//	tau := statics.TorqueAbout(statics.Vec2{}, []statics.PointMass{
//	    {Pos: statics.Vec2{X: 0.5}, Mass: 2},
//	}, statics.DefaultGravity)
//	// tau == 0.5 * (-2 * 9.87)
//
// # Thread Safety
//
// Everything here is a value type or a pure function and is safe for
// concurrent use. [ParallelFor] fans a range out over goroutines.
package statics
