package analysis

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/dynamo"
)

// ChannelNames lists the scalar quantities a portrait can plot, in the order
// returned by Channels. w* are world angular rates, b* body-frame rates.
var ChannelNames = []string{
	"tx", "ty", "tz",
	"vx", "vy", "vz",
	"wx", "wy", "wz",
	"bx", "by", "bz",
	"lx", "ly", "lz",
	"energy",
}

// ChannelIndex resolves a channel name.
func ChannelIndex(name string) (int, error) {
	for i, n := range ChannelNames {
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown channel %q", name)
}

// Channels evaluates every channel of s.
func Channels(s *dynamo.State) []float64 {
	v := s.Velocity()
	b := BodyRate(s)
	return []float64{
		s.Transform.Translation[0], s.Transform.Translation[1], s.Transform.Translation[2],
		v.Linear[0], v.Linear[1], v.Linear[2],
		v.Angular[0], v.Angular[1], v.Angular[2],
		b[0], b[1], b[2],
		s.Momentum.Angular[0], s.Momentum.Angular[1], s.Momentum.Angular[2],
		s.KineticEnergy(),
	}
}

// BodyRate is the angular velocity expressed in body axes, I⁻¹·Rᵀ·L.
func BodyRate(s *dynamo.State) mgl64.Vec3 {
	l := s.Transform.Rotation.Inverse().Rotate(s.Momentum.Angular.Vec3())
	return s.Mass.InvInertia.Mul3x1(l)
}
