package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

// Momentum is the integrated state variable, world frame.
type Momentum struct {
	Linear  quantity.LinMom `json:"linear"`
	Angular quantity.AngMom `json:"angular"`
}

func (p Momentum) Add(o Momentum) Momentum {
	return Momentum{p.Linear.Add(o.Linear), p.Angular.Add(o.Angular)}
}

func (p Momentum) Sub(o Momentum) Momentum {
	return Momentum{p.Linear.Sub(o.Linear), p.Angular.Sub(o.Angular)}
}

func (p Momentum) Scale(s float64) Momentum {
	return Momentum{p.Linear.Scale(s), p.Angular.Scale(s)}
}

// Velocity is derived from Momentum and never stored.
type Velocity struct {
	Linear  quantity.LinVel
	Angular quantity.AngVel
}

func (v Velocity) Add(o Velocity) Velocity {
	return Velocity{v.Linear.Add(o.Linear), v.Angular.Add(o.Angular)}
}

func (v Velocity) Sub(o Velocity) Velocity {
	return Velocity{v.Linear.Sub(o.Linear), v.Angular.Sub(o.Angular)}
}

func (v Velocity) Scale(s float64) Velocity {
	return Velocity{v.Linear.Scale(s), v.Angular.Scale(s)}
}

// MulSecs is the pose change produced by holding v for dt seconds.
func (v Velocity) MulSecs(dt float64) Transform {
	return Transform{
		Translation: v.Linear.MulSecs(dt),
		Rotation:    v.Angular.MulSecs(dt),
	}
}

// Moment is the generalized force acting on a body, world frame.
type Moment struct {
	Force  quantity.Force  `json:"force"`
	Torque quantity.Torque `json:"torque"`
}

// MomentAt is the moment of force applied at offset from the centre of mass.
func MomentAt(force quantity.Force, offset mgl64.Vec3) Moment {
	return Moment{Force: force, Torque: force.TorqueAt(offset)}
}

func (m Moment) Add(o Moment) Moment {
	return Moment{m.Force.Add(o.Force), m.Torque.Add(o.Torque)}
}

func (m Moment) Sub(o Moment) Moment {
	return Moment{m.Force.Sub(o.Force), m.Torque.Sub(o.Torque)}
}

func (m Moment) Scale(s float64) Moment {
	return Moment{m.Force.Scale(s), m.Torque.Scale(s)}
}

func (m Moment) Neg() Moment {
	return Moment{m.Force.Neg(), m.Torque.Neg()}
}

// MulSecs is the impulse delivered by m over dt seconds.
func (m Moment) MulSecs(dt float64) Momentum {
	return Momentum{m.Force.MulSecs(dt), m.Torque.MulSecs(dt)}
}

// Magnitude is the Euclidean length of the six force and torque components.
func (m Moment) Magnitude() float64 {
	f, t := m.Force.Len(), m.Torque.Len()
	return math.Sqrt(f*f + t*t)
}

// VelocityOf converts momentum to velocity for a body with the given mass
// distribution and pose. The inverse tensor is rotated with the current
// orientation because angular momentum lives in world frame.
func VelocityOf(mass InertiaMass, t Transform, p Momentum) Velocity {
	inv := mass.RotatedInvInertia(t.Rotation)
	return Velocity{
		Linear:  p.Linear.DivMass(mass.Mass),
		Angular: quantity.AngVel(inv.Mul3x1(p.Angular.Vec3())),
	}
}

// MomentumOf is the inverse of VelocityOf.
func MomentumOf(mass InertiaMass, t Transform, v Velocity) Momentum {
	inertia := mass.RotatedInertia(t.Rotation)
	return Momentum{
		Linear:  v.Linear.MulMass(mass.Mass),
		Angular: quantity.AngMom(inertia.Mul3x1(v.Angular.Vec3())),
	}
}
