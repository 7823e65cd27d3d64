package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

// State is the full kinetic state of one rigid body. Mass, Transform,
// Momentum and Panels are the persisted fields; Medium configures the panel
// force model.
type State struct {
	Mass      InertiaMass `json:"mass"`
	Transform Transform   `json:"transform"`
	Momentum  Momentum    `json:"momentum"`
	Panels    []Panel     `json:"panels"`
	Medium    Medium      `json:"medium"`
}

// Velocity derives the body's world velocity from its momentum.
func (s *State) Velocity() Velocity {
	return VelocityOf(s.Mass, s.Transform, s.Momentum)
}

// TotalMoment is ext plus the drag of every panel at the current state.
func (s *State) TotalMoment(ext Moment) Moment {
	return ext.Add(PanelMoment(s))
}

// Step advances s by dt seconds under ext with RK4. A zero dt leaves s
// untouched.
func (s *State) Step(dt float64, ext Moment) error {
	return s.StepWith(RK4{}, dt, ext)
}

// StepWith advances s by dt seconds with the given integrator.
func (s *State) StepWith(integ Integrator, dt float64, ext Moment) error {
	if dt < 0 || math.IsNaN(dt) {
		return fmt.Errorf("%w: got %v", ErrNegativeTimestep, dt)
	}
	if dt == 0 {
		return nil
	}
	integ.Step(s, ext, dt)
	return nil
}

// Renormalize corrects accumulated drift in the orientation quaternion.
func (s *State) Renormalize() {
	s.Transform = s.Transform.Normalize()
}

// Clone returns a deep copy; the panel slice is not shared.
func (s *State) Clone() *State {
	c := *s
	if s.Panels != nil {
		c.Panels = make([]Panel, len(s.Panels))
		copy(c.Panels, s.Panels)
	}
	return &c
}

// IsValid reports whether pose and momentum are finite.
func (s *State) IsValid() bool {
	return quantity.IsFinite(s.Transform.Translation.Vec3()) &&
		s.Transform.Rotation.IsFinite() &&
		quantity.IsFinite(s.Momentum.Linear.Vec3()) &&
		quantity.IsFinite(s.Momentum.Angular.Vec3())
}

// Translation is the world position of the centre of mass.
func (s *State) Translation() quantity.Translation { return s.Transform.Translation }

// Rotation is the body-to-world orientation.
func (s *State) Rotation() quantity.Rotation { return s.Transform.Rotation }

// WorldInertia is the inertia tensor at the current orientation.
func (s *State) WorldInertia() mgl64.Mat3 {
	return s.Mass.RotatedInertia(s.Transform.Rotation)
}

// WorldInvInertia is the inverse inertia tensor at the current orientation.
func (s *State) WorldInvInertia() mgl64.Mat3 {
	return s.Mass.RotatedInvInertia(s.Transform.Rotation)
}

// KineticEnergy is ½p·v + ½L·ω.
func (s *State) KineticEnergy() float64 {
	v := s.Velocity()
	return 0.5*s.Momentum.Linear.Vec3().Dot(v.Linear.Vec3()) +
		0.5*s.Momentum.Angular.Vec3().Dot(v.Angular.Vec3())
}
