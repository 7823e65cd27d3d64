package quantity

import "github.com/go-gl/mathgl/mgl64"

// AngVel is an angular velocity in rad/s, world frame. Its direction is the
// rotation axis and its length the rate.
type AngVel mgl64.Vec3

func (w AngVel) Add(o AngVel) AngVel    { return add(w, o) }
func (w AngVel) Sub(o AngVel) AngVel    { return sub(w, o) }
func (w AngVel) Scale(s float64) AngVel { return scale(w, s) }
func (w AngVel) Neg() AngVel            { return neg(w) }
func (w AngVel) Len() float64           { return length(w) }
func (w AngVel) Vec3() mgl64.Vec3       { return mgl64.Vec3(w) }

// MulSecs returns the rotation swept by w over dt seconds.
func (w AngVel) MulSecs(dt float64) Rotation { return FromScaledAxis(mgl64.Vec3(w).Mul(dt)) }

// PointVelocity is the linear velocity of a point at offset from the rotation
// centre, both in world frame.
func (w AngVel) PointVelocity(offset mgl64.Vec3) LinVel {
	return LinVel(mgl64.Vec3(w).Cross(offset))
}

// AngMom is an angular momentum in N·s·m, world frame.
type AngMom mgl64.Vec3

func (l AngMom) Add(o AngMom) AngMom    { return add(l, o) }
func (l AngMom) Sub(o AngMom) AngMom    { return sub(l, o) }
func (l AngMom) Scale(s float64) AngMom { return scale(l, s) }
func (l AngMom) Neg() AngMom            { return neg(l) }
func (l AngMom) Len() float64           { return length(l) }
func (l AngMom) Vec3() mgl64.Vec3       { return mgl64.Vec3(l) }

// Torque is a torque in N·m, world frame.
type Torque mgl64.Vec3

func (t Torque) Add(o Torque) Torque    { return add(t, o) }
func (t Torque) Sub(o Torque) Torque    { return sub(t, o) }
func (t Torque) Scale(s float64) Torque { return scale(t, s) }
func (t Torque) Neg() Torque            { return neg(t) }
func (t Torque) Len() float64           { return length(t) }
func (t Torque) Vec3() mgl64.Vec3       { return mgl64.Vec3(t) }

// MulSecs returns the angular impulse delivered by t over dt seconds.
func (t Torque) MulSecs(dt float64) AngMom { return AngMom(mgl64.Vec3(t).Mul(dt)) }
