package quantity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is an orientation stored as a unit quaternion. It maps body-frame
// vectors into the world frame.
//
// Rotations do not commute. Compose fixes the order once for the whole
// codebase: a.Compose(b) is b applied after a, i.e. the quaternion product
// b·a.
type Rotation mgl64.Quat

// Identity is the rotation that leaves every vector unchanged.
func Identity() Rotation { return Rotation(mgl64.QuatIdent()) }

// FromQuat wraps q without normalizing it.
func FromQuat(q mgl64.Quat) Rotation { return Rotation(q) }

// FromAxisAngle returns a rotation of angle radians about axis. The axis is
// normalized; a zero axis yields the identity.
func FromAxisAngle(axis mgl64.Vec3, angle float64) Rotation {
	unit := NormalizeOrZero(axis)
	if unit == (mgl64.Vec3{}) {
		return Identity()
	}
	return Rotation(mgl64.QuatRotate(angle, unit))
}

// RotationX returns a rotation of angle radians about the world x axis.
func RotationX(angle float64) Rotation { return Rotation(mgl64.QuatRotate(angle, mgl64.Vec3{1, 0, 0})) }

// RotationY returns a rotation of angle radians about the world y axis.
func RotationY(angle float64) Rotation { return Rotation(mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0})) }

// RotationZ returns a rotation of angle radians about the world z axis.
func RotationZ(angle float64) Rotation { return Rotation(mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1})) }

// FromScaledAxis returns the rotation whose axis is the direction of v and
// whose angle is |v| radians.
func FromScaledAxis(v mgl64.Vec3) Rotation {
	angle := v.Len()
	if angle == 0 {
		return Identity()
	}
	return Rotation(mgl64.QuatRotate(angle, v.Mul(1/angle)))
}

// Quat returns the underlying quaternion.
func (r Rotation) Quat() mgl64.Quat { return mgl64.Quat(r) }

// Compose returns b applied after r (quaternion product b·r).
func (r Rotation) Compose(b Rotation) Rotation {
	return Rotation(mgl64.Quat(b).Mul(mgl64.Quat(r)))
}

// ComposeInverse removes b from r: the inverse of b applied after r
// (quaternion product b⁻¹·r). r.Compose(b).ComposeInverse(b) recovers r up to
// rounding.
func (r Rotation) ComposeInverse(b Rotation) Rotation {
	return Rotation(mgl64.Quat(b.Inverse()).Mul(mgl64.Quat(r)))
}

// Inverse returns the conjugate, which is the inverse of a unit quaternion.
func (r Rotation) Inverse() Rotation { return Rotation(mgl64.Quat(r).Conjugate()) }

// Norm is the quaternion length; 1 for a well-formed rotation.
func (r Rotation) Norm() float64 { return mgl64.Quat(r).Len() }

// Normalize rescales the quaternion to unit length. A zero quaternion
// normalizes to the identity; non-finite input stays non-finite.
func (r Rotation) Normalize() Rotation {
	n := r.Norm()
	if n == 0 {
		return Identity()
	}
	q := mgl64.Quat(r)
	return Rotation(mgl64.Quat{W: q.W / n, V: q.V.Mul(1 / n)})
}

// Rotate maps a body-frame vector into the world frame.
func (r Rotation) Rotate(v mgl64.Vec3) mgl64.Vec3 { return mgl64.Quat(r).Rotate(v) }

// Matrix returns the 3x3 rotation matrix of r.
func (r Rotation) Matrix() mgl64.Mat3 { return mgl64.Quat(r).Mat4().Mat3() }

// AxisAngle decomposes r into a unit axis and an angle in [0, 2π]. The
// identity returns the x axis and zero.
func (r Rotation) AxisAngle() (mgl64.Vec3, float64) {
	q := mgl64.Quat(r.Normalize())
	s := q.V.Len()
	if s == 0 {
		return mgl64.Vec3{1, 0, 0}, 0
	}
	return q.V.Mul(1 / s), 2 * math.Atan2(s, q.W)
}

// IsFinite reports whether every quaternion component is finite.
func (r Rotation) IsFinite() bool {
	return !math.IsNaN(r.W) && !math.IsInf(r.W, 0) && IsFinite(r.V)
}

// ApproxEqual reports whether r and o describe the same orientation within
// eps. q and -q are the same rotation.
func (r Rotation) ApproxEqual(o Rotation, eps float64) bool {
	a, b := mgl64.Quat(r), mgl64.Quat(o)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return math.Abs(a.W-b.W) <= eps &&
		math.Abs(a.V[0]-b.V[0]) <= eps &&
		math.Abs(a.V[1]-b.V[1]) <= eps &&
		math.Abs(a.V[2]-b.V[2]) <= eps
}
