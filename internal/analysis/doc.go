// Package analysis provides tools for inspecting rigid-body trajectories.
//
//   - [GeneratePhasePortrait]: 2D trajectory of two state channels
//   - [FromSeries]: the same portrait from a stored run
//   - [GeneratePoincareSection]: stroboscopic section of phase space
//   - [LyapunovExponent]: spin stability via trajectory separation
//
// Channels are named in [ChannelNames] and evaluated by [Channels].
//
// # Spin Stability
//
// Spin about the intermediate principal axis is unstable:
//
//	lambda := analysis.LyapunovExponent(s, dynamo.NewRK4(), dynamo.Moment{}, 0.001, 5, 1e-8)
//	if lambda > 0 {
//	    // the body will tumble
//	}
package analysis
