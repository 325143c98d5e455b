// Package analysis studies how the reach optimum responds to its inputs.
//
//   - [SweepLimit]: max reach as one torque limit varies
//   - [SweepTolerance]: feasible grid points as the positional tolerance varies
//
// Raising a limit only enlarges the feasible set, so a limit sweep is
// non-decreasing in reach:
//
//	sw, _ := analysis.SweepLimit(ctx, optim.DefaultReachSearch(), physics.NewArm(),
//	    limits, analysis.Shoulder, analysis.LinearValues(0, 60, 13))
//	sw.NonDecreasing() // true
package analysis
