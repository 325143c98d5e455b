// Package physics models the three-link planar manipulator.
//
// An [Arm] couples link lengths, a [Masses] inventory and a gravitational
// constant. Forward kinematics ([Arm.Resolve]) turns a pose into the
// locations of every pivot, link midpoint and the tip; [Arm.Torques]
// evaluates the static shoulder and elbow moments of that pose:
//
//	arm := physics.NewArm()
//	shoulder, elbow := arm.Torques(statics.Pose{Theta1: 0.2, Theta2: 1.1, Theta3: math.Pi / 2})
//
// Link 1 points along theta1 and link 2 along theta1+theta2. Link 3 follows
// [Arm.Link3]: with [Link3Absolute] it points along theta3 on its own, so
// theta3 = pi/2 holds it vertical whatever the first two joints do.
//
// [ReferenceTorques] evaluates one fixed configuration whose four points are
// given in centimeters by [ReferenceGeometryCM].
package physics
