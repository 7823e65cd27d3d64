package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

// singularTolerance is the smallest |det(I)| accepted, relative to the cube
// of the largest tensor entry.
const singularTolerance = 1e-12

// InertiaMass is the mass distribution of a rigid body. Inertia and
// InvInertia are body-frame tensors; InvInertia is set by NewInertiaMass and
// always holds the inverse of Inertia.
type InertiaMass struct {
	Mass       float64    `json:"mass"`
	Inertia    mgl64.Mat3 `json:"inertia"`
	InvInertia mgl64.Mat3 `json:"inv_inertia"`
}

// NewInertiaMass validates mass and inertia and precomputes the inverse
// tensor.
func NewInertiaMass(mass float64, inertia mgl64.Mat3) (InertiaMass, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return InertiaMass{}, fmt.Errorf("%w: got %v", ErrNonPositiveMass, mass)
	}

	scale := 0.0
	for _, v := range inertia {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return InertiaMass{}, fmt.Errorf("%w: non-finite entry", ErrSingularInertia)
		}
		scale = math.Max(scale, math.Abs(v))
	}

	det := inertia.Det()
	if scale == 0 || math.Abs(det) <= singularTolerance*scale*scale*scale {
		return InertiaMass{}, fmt.Errorf("%w: det=%g", ErrSingularInertia, det)
	}

	// Mat3.Inv treats |det| < 1e-20 as singular, so invert the unit-scaled
	// tensor and rescale.
	return InertiaMass{
		Mass:       mass,
		Inertia:    inertia,
		InvInertia: inertia.Mul(1 / scale).Inv().Mul(1 / scale),
	}, nil
}

// MustInertiaMass is like NewInertiaMass but panics on invalid input.
func MustInertiaMass(mass float64, inertia mgl64.Mat3) InertiaMass {
	m, err := NewInertiaMass(mass, inertia)
	if err != nil {
		panic(err)
	}
	return m
}

// Rotated returns a copy with both tensors expressed in the frame reached by
// r, I' = R·I·Rᵀ.
func (m InertiaMass) Rotated(r quantity.Rotation) InertiaMass {
	rm := r.Matrix()
	rt := rm.Transpose()
	return InertiaMass{
		Mass:       m.Mass,
		Inertia:    rm.Mul3(m.Inertia).Mul3(rt),
		InvInertia: rm.Mul3(m.InvInertia).Mul3(rt),
	}
}

// RotatedInertia returns only the rotated inertia tensor.
func (m InertiaMass) RotatedInertia(r quantity.Rotation) mgl64.Mat3 {
	rm := r.Matrix()
	return rm.Mul3(m.Inertia).Mul3(rm.Transpose())
}

// RotatedInvInertia returns only the rotated inverse tensor.
func (m InertiaMass) RotatedInvInertia(r quantity.Rotation) mgl64.Mat3 {
	rm := r.Matrix()
	return rm.Mul3(m.InvInertia).Mul3(rm.Transpose())
}

func cylinder(height, radius, mass float64) (side, front float64) {
	side = mass*height*height/12 + mass*radius*radius/4
	front = mass * radius * radius / 2
	return side, front
}

// CylinderX is a solid cylinder whose axis is the local x axis.
func CylinderX(height, radius, mass float64) (InertiaMass, error) {
	side, front := cylinder(height, radius, mass)
	return NewInertiaMass(mass, mgl64.Diag3(mgl64.Vec3{front, side, side}))
}

// CylinderY is a solid cylinder whose axis is the local y axis.
func CylinderY(height, radius, mass float64) (InertiaMass, error) {
	side, front := cylinder(height, radius, mass)
	return NewInertiaMass(mass, mgl64.Diag3(mgl64.Vec3{side, front, side}))
}

// CylinderZ is a solid cylinder whose axis is the local z axis.
func CylinderZ(height, radius, mass float64) (InertiaMass, error) {
	side, front := cylinder(height, radius, mass)
	return NewInertiaMass(mass, mgl64.Diag3(mgl64.Vec3{side, side, front}))
}

// SolidSphere is a uniform ball.
func SolidSphere(radius, mass float64) (InertiaMass, error) {
	i := 2.0 / 5.0 * mass * radius * radius
	return NewInertiaMass(mass, mgl64.Diag3(mgl64.Vec3{i, i, i}))
}

// SolidBox is a uniform cuboid with full edge lengths x, y and z.
func SolidBox(x, y, z, mass float64) (InertiaMass, error) {
	k := mass / 12
	return NewInertiaMass(mass, mgl64.Diag3(mgl64.Vec3{
		k * (y*y + z*z),
		k * (x*x + z*z),
		k * (x*x + y*y),
	}))
}
