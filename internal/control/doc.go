// Package control provides external moment sources for a rigid body.
//
// Actuators implement [Actuator] and are queried once per timestep for the
// force and torque to apply:
//
//   - [PID]: drives world angular velocity toward a target rate
//   - [LQR]: linear state feedback on angular velocity
//   - [Constant]: a fixed moment such as gravity or thrust
//   - [Manual]: a moment set from outside, e.g. by key presses
//   - [None]: zero moment
//
// # Usage
//
//	pid := control.NewPID(2.0, 0.1, 0.0, mgl64.Vec3{0, 0, 1})
//	sim := sim.New(dynamo.NewRK4(), pid)
//
// Actuators implementing [Configurable] support live tuning.
package control

import "github.com/san-kum/sixdof/internal/dynamo"

// Actuator computes the external moment applied to s at time t.
type Actuator interface {
	Moment(s *dynamo.State, t float64) dynamo.Moment
}

// Configurable is implemented by actuators with tunable parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Resetter is implemented by actuators that carry memory between calls.
type Resetter interface {
	Reset()
}
