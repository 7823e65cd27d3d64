// Package dynamo is the kinetic core of a 6-degree-of-freedom rigid body.
//
// A [State] carries an [InertiaMass], a [Transform] (world pose), a [Momentum]
// and a list of aerodynamic [Panel]s exposed to a [Medium]. Velocity is never
// stored: [State.Velocity] derives it from momentum and the current
// orientation. [State.Step] advances pose and momentum under an external
// [Moment] with the classical fourth-order Runge-Kutta scheme, re-evaluating
// the panel forces against every intermediate stage.
//
// # Example
//
//	mass, _ := dynamo.CylinderZ(1, 1, 1)
//	s, _ := dynamo.NewBuilder().
//		Mass(mass).
//		AddPanel(dynamo.NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 1)).
//		Build()
//	_ = s.Step(0.01, dynamo.Moment{})
//
// # Thread Safety
//
// Everything here is plain arithmetic over value types. A State must not be
// stepped from two goroutines at once; independent States can be stepped in
// parallel, and integrators hold no state so one value may be shared.
package dynamo
