package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

// Dormand-Prince coefficients
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the embedded Dormand-Prince 5(4) pair. A call to Step still covers
// exactly dt, split into as many substeps as the error estimate demands.
//
// Orientation is advanced in the Munthe-Kaas manner: every stage works on
// the rotation vector from the start of the substep, and stage rates are
// mapped through the inverse exponential differential.
type RK45 struct {
	// Tol bounds the estimated local error of a substep, relative to
	// 1 + |state| per component.
	Tol         float64
	MaxSubsteps int

	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		Tol:         1e-9,
		MaxSubsteps: 256,
		safety:      0.9,
		minScale:    0.2,
		maxScale:    10.0,
	}
}

func (*RK45) Name() string { return "rk45" }

func (r *RK45) Step(s *State, ext Moment, dt float64) {
	remaining := dt
	h := dt
	for n := 1; remaining > 0; n++ {
		h = math.Min(h, remaining)
		if n >= r.MaxSubsteps {
			h = remaining
		}
		next, ratio := r.attempt(s, ext, h)

		if ratio > 1 && n < r.MaxSubsteps {
			h *= math.Max(r.minScale, r.safety*math.Pow(ratio, -0.25))
			continue
		}

		s.Transform = next.Transform
		s.Momentum = next.Momentum
		remaining -= h

		if ratio > 0 {
			h *= math.Min(r.maxScale, math.Max(r.minScale, r.safety*math.Pow(ratio, -0.2)))
		} else {
			h *= r.maxScale
		}
	}
}

// attempt takes one substep of length h and returns the result with its
// error estimate divided by Tol.
func (r *RK45) attempt(s *State, ext Moment, h float64) (State, float64) {
	stage := func(rate Rate) (State, Rate) {
		x := Advanced(s, rate, h)
		k := Derive(&x, ext)
		theta := rate.Velocity.Angular.Vec3().Mul(h)
		k.Velocity.Angular = quantity.AngVel(dexpInv(theta, k.Velocity.Angular.Vec3()))
		return x, k
	}

	k1 := Derive(s, ext)
	_, k2 := stage(k1.Scale(b21))
	_, k3 := stage(k1.Scale(b31).Add(k2.Scale(b32)))
	_, k4 := stage(k1.Scale(b41).Add(k2.Scale(b42)).Add(k3.Scale(b43)))
	_, k5 := stage(k1.Scale(b51).Add(k2.Scale(b52)).Add(k3.Scale(b53)).Add(k4.Scale(b54)))
	_, k6 := stage(k1.Scale(b61).Add(k2.Scale(b62)).Add(k3.Scale(b63)).Add(k4.Scale(b64)).Add(k5.Scale(b65)))
	next, k7 := stage(k1.Scale(c1).Add(k3.Scale(c3)).Add(k4.Scale(c4)).Add(k5.Scale(c5)).Add(k6.Scale(c6)))

	e := k1.Scale(dc1).Add(k3.Scale(dc3)).Add(k4.Scale(dc4)).Add(k5.Scale(dc5)).Add(k6.Scale(dc6)).Add(k7.Scale(dc7))
	return next, errorNorm(s, e, h) / r.Tol
}

// dexpInv maps a world angular rate w to the rate of the rotation vector
// theta, truncated after the fourth-order Bernoulli term.
func dexpInv(theta, w mgl64.Vec3) mgl64.Vec3 {
	a1 := theta.Cross(w)
	a2 := theta.Cross(a1)
	a4 := theta.Cross(theta.Cross(a2))
	return w.Sub(a1.Mul(0.5)).Add(a2.Mul(1.0 / 12)).Sub(a4.Mul(1.0 / 720))
}

// errorNorm is the largest component error of e over h, each relative to
// 1 + the size of the matching state component. Rotation error is in
// radians.
func errorNorm(s *State, e Rate, h float64) float64 {
	errs := [4]float64{
		h * e.Velocity.Linear.Len() / (1 + s.Transform.Translation.Len()),
		h * e.Velocity.Angular.Len(),
		h * e.Moment.Force.Len() / (1 + s.Momentum.Linear.Len()),
		h * e.Moment.Torque.Len() / (1 + s.Momentum.Angular.Len()),
	}
	return max(errs[0], errs[1], errs[2], errs[3])
}
