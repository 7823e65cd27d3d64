package control

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
)

// LQR is full-state feedback on world angular velocity, τ = -K·(ω - Target).
// K is usually obtained offline from the linearized rate dynamics.
type LQR struct {
	K      mgl64.Mat3
	Target mgl64.Vec3
}

func NewLQR(k mgl64.Mat3, target mgl64.Vec3) *LQR {
	return &LQR{K: k, Target: target}
}

// NewRateDamper is an LQR with equal decoupled gain on every axis, which
// brings the body to rest.
func NewRateDamper(gain float64) *LQR {
	return NewLQR(mgl64.Diag3(mgl64.Vec3{gain, gain, gain}), mgl64.Vec3{})
}

func (l *LQR) Moment(s *dynamo.State, t float64) dynamo.Moment {
	e := s.Velocity().Angular.Vec3().Sub(l.Target)
	return dynamo.Moment{Torque: quantity.Torque(l.K.Mul3x1(e).Mul(-1))}
}

func (l *LQR) GetParams() map[string]float64 {
	return map[string]float64{
		"Kxx": l.K.At(0, 0),
		"Kyy": l.K.At(1, 1),
		"Kzz": l.K.At(2, 2),
	}
}

func (l *LQR) SetParam(name string, value float64) error {
	switch name {
	case "Kxx":
		l.K.Set(0, 0, value)
	case "Kyy":
		l.K.Set(1, 1, value)
	case "Kzz":
		l.K.Set(2, 2, value)
	default:
		return fmt.Errorf("control: unknown LQR parameter %q", name)
	}
	return nil
}
