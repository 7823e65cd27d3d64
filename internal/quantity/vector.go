package quantity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// vector is satisfied by every named vector quantity in this package.
type vector interface {
	~[3]float64
}

func add[V vector](a, b V) V           { return V(mgl64.Vec3(a).Add(mgl64.Vec3(b))) }
func sub[V vector](a, b V) V           { return V(mgl64.Vec3(a).Sub(mgl64.Vec3(b))) }
func scale[V vector](a V, s float64) V { return V(mgl64.Vec3(a).Mul(s)) }
func neg[V vector](a V) V              { return V(mgl64.Vec3(a).Mul(-1)) }
func length[V vector](a V) float64     { return mgl64.Vec3(a).Len() }

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// has zero length. It never produces NaN for finite input.
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// IsFinite reports whether every component of v is finite.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
