package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vec3AlmostEqual(a, b mgl64.Vec3, tol float64) bool {
	return almostEqual(a[0], b[0], tol) && almostEqual(a[1], b[1], tol) && almostEqual(a[2], b[2], tol)
}

func mat3AlmostEqual(a, b mgl64.Mat3, tol float64) bool {
	for i := range a {
		if !almostEqual(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func mustCylinderZ(height, radius, mass float64) InertiaMass {
	m, err := CylinderZ(height, radius, mass)
	if err != nil {
		panic(err)
	}
	return m
}

var asymmetricInertia = mgl64.Mat3{
	2, 0.1, 0.2,
	0.1, 3, 0.3,
	0.2, 0.3, 4,
}
