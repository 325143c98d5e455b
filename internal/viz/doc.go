// Package viz renders reports and arm poses in the terminal.
//
//   - [RenderReport]: styled summary of both scenarios with torque load bars
//   - [DrawPose]: Braille drawing of a three-link chain
//   - [ControlSurface]: Bubble Tea model for editing masses and limits
//
// # Key Bindings
//
//	j/k   - Select parameter
//	h/l   - Decrease/increase (H/L for ten steps)
//	Enter - Type a value
//	S     - Save a snapshot row
//	T     - Cycle color themes
//	R     - Reset to defaults
//	Q     - Quit
package viz
