package dynamo

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

// Transform is the world pose of a body. The zero value has a zero
// quaternion and is not a valid pose; use IdentityTransform.
type Transform struct {
	Translation quantity.Translation `json:"translation"`
	Rotation    quantity.Rotation    `json:"rotation"`
}

// IdentityTransform is the pose at the origin with no rotation.
func IdentityTransform() Transform {
	return Transform{Rotation: quantity.Identity()}
}

// Add applies b after t: translations sum and rotations compose. The
// integrator treats Transform as additive through this method even though
// rotations do not form a vector space.
func (t Transform) Add(b Transform) Transform {
	return Transform{
		Translation: t.Translation.Add(b.Translation),
		Rotation:    t.Rotation.Compose(b.Rotation),
	}
}

// Sub removes b from t, undoing Add.
func (t Transform) Sub(b Transform) Transform {
	return Transform{
		Translation: t.Translation.Sub(b.Translation),
		Rotation:    t.Rotation.ComposeInverse(b.Rotation),
	}
}

// Neg returns the opposite translation and the inverse rotation.
func (t Transform) Neg() Transform {
	return Transform{
		Translation: t.Translation.Neg(),
		Rotation:    t.Rotation.Inverse(),
	}
}

// Normalize returns t with its rotation rescaled to unit length.
func (t Transform) Normalize() Transform {
	t.Rotation = t.Rotation.Normalize()
	return t
}

// ToWorld maps a body-frame point into the world frame.
func (t Transform) ToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation.Vec3())
}
