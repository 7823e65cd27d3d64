// Package viz provides a terminal view of a rigid body in motion.
//
// The live [Model] is a Bubble Tea program that steps a body in real time and
// draws its equivalent box, body axes and panel normals on a braille
// [Canvas], rotated by the body's orientation. A side panel shows pose,
// rates, energy and tunable controller parameters.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	x/y/z - Rotate the camera (shift reverses)
//	+/-   - Zoom
//	Tab   - Select controller parameter
//	↑/↓   - Tune the selected parameter by 5%
//	1-6   - Torque kicks about ±x ±y ±z
//	[ ]   - Step through recent history
//	T     - Cycle color themes
//	Q     - Quit
package viz
