package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
)

// LyapunovExponent estimates the largest Lyapunov exponent of the body's
// rotation by trajectory separation. A companion body starts with its
// body-frame rate nudged by perturbation about x. Separation is measured in
// body-frame rate and renormalized back to perturbation whenever it grows by
// a factor of 1000, keeping the companion's orientation equal to the
// reference. A positive value means the spin is unstable, as about the
// intermediate principal axis.
func LyapunovExponent(
	s0 *dynamo.State,
	integ dynamo.Integrator,
	ext dynamo.Moment,
	dt, duration float64,
	perturbation float64,
) float64 {
	steps := int(duration/dt + 1e-9)
	if steps <= 0 || !(perturbation > 0) {
		return 0
	}
	return lyapunovFor(s0, integ, ext, mgl64.Vec3{perturbation, 0, 0}, dt, steps)
}

// LyapunovByAxis runs LyapunovExponent once per body axis, nudging that axis.
// Each entry estimates the largest exponent as seen from its seed direction;
// the separations are not re-orthonormalized, so this is not the full
// Lyapunov spectrum. Seeds along the spin axis show little growth.
func LyapunovByAxis(
	s0 *dynamo.State,
	integ dynamo.Integrator,
	ext dynamo.Moment,
	dt, duration float64,
	perturbation float64,
) [3]float64 {
	var byAxis [3]float64
	steps := int(duration/dt + 1e-9)
	if steps <= 0 || !(perturbation > 0) {
		return byAxis
	}

	for i := range byAxis {
		var d mgl64.Vec3
		d[i] = perturbation
		byAxis[i] = lyapunovFor(s0, integ, ext, d, dt, steps)
	}
	return byAxis
}

func lyapunovFor(s0 *dynamo.State, integ dynamo.Integrator, ext dynamo.Moment, d mgl64.Vec3, dt float64, steps int) float64 {
	d0 := d.Len()
	limit := d0 * 1e3

	ref := s0.Clone()
	per := withBodyRate(ref, BodyRate(ref).Add(d))

	sumLog := 0.0
	for i := 0; i < steps; i++ {
		if ref.StepWith(integ, dt, ext) != nil || per.StepWith(integ, dt, ext) != nil {
			return math.NaN()
		}
		ref.Renormalize()
		per.Renormalize()

		diff := BodyRate(per).Sub(BodyRate(ref))
		sep := diff.Len()
		if sep == 0 || math.IsNaN(sep) {
			return math.NaN()
		}

		if sep >= limit || i == steps-1 {
			sumLog += math.Log(sep / d0)
			per = withBodyRate(ref, BodyRate(ref).Add(diff.Mul(d0/sep)))
		}
	}

	return sumLog / (float64(steps) * dt)
}

// withBodyRate returns a copy of s with the same pose, spinning at body-frame
// rate w.
func withBodyRate(s *dynamo.State, w mgl64.Vec3) *dynamo.State {
	c := s.Clone()
	l := s.Transform.Rotation.Rotate(s.Mass.Inertia.Mul3x1(w))
	c.Momentum.Angular = quantity.AngMom(l)
	return c
}
