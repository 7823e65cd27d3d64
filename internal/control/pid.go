package control

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
)

// PID drives the body's world angular velocity toward Target by emitting
// torque. Limit caps the torque magnitude when positive.
type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target mgl64.Vec3
	Limit  float64

	integral mgl64.Vec3
	prevErr  mgl64.Vec3
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd float64, target mgl64.Vec3) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

func (p *PID) Moment(s *dynamo.State, t float64) dynamo.Moment {
	err := p.Target.Sub(s.Velocity().Angular.Vec3())

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.torque(err.Mul(p.Kp))
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral = p.integral.Add(err.Mul(dt))
		derivative := err.Sub(p.prevErr).Mul(1 / dt)

		u := err.Mul(p.Kp).Add(p.integral.Mul(p.Ki)).Add(derivative.Mul(p.Kd))

		p.prevErr = err
		p.prevT = t

		return p.torque(u)
	}
	return p.torque(err.Mul(p.Kp))
}

func (p *PID) torque(u mgl64.Vec3) dynamo.Moment {
	if p.Limit > 0 {
		if n := u.Len(); n > p.Limit {
			u = u.Mul(p.Limit / n)
		}
	}
	return dynamo.Moment{Torque: quantity.Torque(u)}
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = mgl64.Vec3{}
	p.prevErr = mgl64.Vec3{}
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":      p.Kp,
		"Ki":      p.Ki,
		"Kd":      p.Kd,
		"TargetX": p.Target[0],
		"TargetY": p.Target[1],
		"TargetZ": p.Target[2],
		"Limit":   p.Limit,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "TargetX":
		p.Target[0] = value
	case "TargetY":
		p.Target[1] = value
	case "TargetZ":
		p.Target[2] = value
	case "Limit":
		p.Limit = value
	default:
		return fmt.Errorf("control: unknown PID parameter %q", name)
	}
	return nil
}
