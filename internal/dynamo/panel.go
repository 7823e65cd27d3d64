package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

// Medium is the fluid panels move through.
type Medium struct {
	Density  float64 `json:"density"`   // kg/m³
	HalfDrag float64 `json:"half_drag"` // Cd/2 of a flat plate
}

// StandardAir is sea-level air acting on a flat plate.
var StandardAir = Medium{Density: 1.293, HalfDrag: 1.28 / 2}

// Vacuum produces no aerodynamic force.
var Vacuum = Medium{}

// Panel is a flat surface element in body frame. Offset runs from the centre
// of mass to the panel's centre of pressure; Normal is expected to be unit
// length.
type Panel struct {
	Offset mgl64.Vec3 `json:"offset"`
	Normal mgl64.Vec3 `json:"normal"`
	Area   float64    `json:"area"`
}

func NewPanel(offset, normal mgl64.Vec3, area float64) Panel {
	return Panel{Offset: offset, Normal: normal, Area: area}
}

// Validate rejects panels that would poison the force model.
func (p Panel) Validate() error {
	if math.IsNaN(p.Area) || math.IsInf(p.Area, 0) || p.Area < 0 {
		return ErrInvalidPanel
	}
	if !quantity.IsFinite(p.Offset) || !quantity.IsFinite(p.Normal) {
		return ErrInvalidPanel
	}
	return nil
}

// ToForce is the quadratic drag on the panel moving at v through m. Only the
// component of the motion along the normal contributes, and the force always
// acts along the normal. A panel at rest feels exactly zero force.
func (p Panel) ToForce(m Medium, v quantity.LinVel) quantity.Force {
	dir := quantity.NormalizeOrZero(v.Vec3())
	areaComponent := p.Normal.Dot(dir) * p.Area
	speed := v.Len()
	magnitude := m.Density * speed * speed * m.HalfDrag * areaComponent
	return quantity.Force(p.Normal.Mul(-magnitude))
}

// Rotated re-expresses offset and normal in the frame reached by r.
func (p Panel) Rotated(r quantity.Rotation) Panel {
	return Panel{
		Offset: r.Rotate(p.Offset),
		Normal: r.Rotate(p.Normal),
		Area:   p.Area,
	}
}

// TipVelocity is the world velocity of the panel point for a body moving at
// v. The panel must already be in world frame.
func (p Panel) TipVelocity(v Velocity) quantity.LinVel {
	return v.Linear.Add(v.Angular.PointVelocity(p.Offset))
}

// ToMoment is the drag force and torque the panel exerts on s.
func (p Panel) ToMoment(s *State) Moment {
	return p.momentAt(s.Transform.Rotation, s.Velocity(), s.Medium)
}

func (p Panel) momentAt(r quantity.Rotation, v Velocity, m Medium) Moment {
	world := p.Rotated(r)
	force := world.ToForce(m, world.TipVelocity(v))
	return MomentAt(force, world.Offset)
}

// PanelMoment sums the drag moment of every panel on s.
func PanelMoment(s *State) Moment {
	if len(s.Panels) == 0 {
		return Moment{}
	}
	v := s.Velocity()
	var total Moment
	for _, p := range s.Panels {
		total = total.Add(p.momentAt(s.Transform.Rotation, v, s.Medium))
	}
	return total
}

// BoxPanels returns the six outward-facing faces of a box with full edge
// lengths x, y and z centred on the centre of mass. The force model is
// two-sided, so opposite faces both resist motion along their shared axis.
func BoxPanels(x, y, z float64) []Panel {
	hx, hy, hz := x/2, y/2, z/2
	return []Panel{
		NewPanel(mgl64.Vec3{hx, 0, 0}, mgl64.Vec3{1, 0, 0}, y*z),
		NewPanel(mgl64.Vec3{-hx, 0, 0}, mgl64.Vec3{-1, 0, 0}, y*z),
		NewPanel(mgl64.Vec3{0, hy, 0}, mgl64.Vec3{0, 1, 0}, x*z),
		NewPanel(mgl64.Vec3{0, -hy, 0}, mgl64.Vec3{0, -1, 0}, x*z),
		NewPanel(mgl64.Vec3{0, 0, hz}, mgl64.Vec3{0, 0, 1}, x*y),
		NewPanel(mgl64.Vec3{0, 0, -hz}, mgl64.Vec3{0, 0, -1}, x*y),
	}
}
