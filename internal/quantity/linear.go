package quantity

import "github.com/go-gl/mathgl/mgl64"

// Translation is a displacement in metres, world frame.
type Translation mgl64.Vec3

func (t Translation) Add(o Translation) Translation { return add(t, o) }
func (t Translation) Sub(o Translation) Translation { return sub(t, o) }
func (t Translation) Scale(s float64) Translation   { return scale(t, s) }
func (t Translation) Neg() Translation              { return neg(t) }
func (t Translation) Len() float64                  { return length(t) }
func (t Translation) Vec3() mgl64.Vec3              { return mgl64.Vec3(t) }

// LinVel is a linear velocity in m/s.
type LinVel mgl64.Vec3

func (v LinVel) Add(o LinVel) LinVel    { return add(v, o) }
func (v LinVel) Sub(o LinVel) LinVel    { return sub(v, o) }
func (v LinVel) Scale(s float64) LinVel { return scale(v, s) }
func (v LinVel) Neg() LinVel            { return neg(v) }
func (v LinVel) Len() float64           { return length(v) }
func (v LinVel) Vec3() mgl64.Vec3       { return mgl64.Vec3(v) }

// MulSecs integrates the velocity over dt seconds.
func (v LinVel) MulSecs(dt float64) Translation { return Translation(mgl64.Vec3(v).Mul(dt)) }

// MulMass returns the momentum of a mass moving at v.
func (v LinVel) MulMass(mass float64) LinMom { return LinMom(mgl64.Vec3(v).Mul(mass)) }

// LinMom is a linear momentum in N·s, world frame.
type LinMom mgl64.Vec3

func (p LinMom) Add(o LinMom) LinMom    { return add(p, o) }
func (p LinMom) Sub(o LinMom) LinMom    { return sub(p, o) }
func (p LinMom) Scale(s float64) LinMom { return scale(p, s) }
func (p LinMom) Neg() LinMom            { return neg(p) }
func (p LinMom) Len() float64           { return length(p) }
func (p LinMom) Vec3() mgl64.Vec3       { return mgl64.Vec3(p) }

// DivMass converts momentum to velocity for the given mass.
func (p LinMom) DivMass(mass float64) LinVel { return LinVel{p[0] / mass, p[1] / mass, p[2] / mass} }

// Force is a force in newtons, world frame.
type Force mgl64.Vec3

func (f Force) Add(o Force) Force     { return add(f, o) }
func (f Force) Sub(o Force) Force     { return sub(f, o) }
func (f Force) Scale(s float64) Force { return scale(f, s) }
func (f Force) Neg() Force            { return neg(f) }
func (f Force) Len() float64          { return length(f) }
func (f Force) Vec3() mgl64.Vec3      { return mgl64.Vec3(f) }

// MulSecs returns the impulse delivered by f over dt seconds.
func (f Force) MulSecs(dt float64) LinMom { return LinMom(mgl64.Vec3(f).Mul(dt)) }

// TorqueAt returns the torque produced by f applied at offset from the
// centre of mass.
func (f Force) TorqueAt(offset mgl64.Vec3) Torque { return Torque(offset.Cross(mgl64.Vec3(f))) }
