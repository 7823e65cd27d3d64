package dynamo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

var testPanels = []Panel{
	NewPanel(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 1),
	NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 1),
	NewPanel(mgl64.Vec3{-0.3, 2, 0.7}, mgl64.Vec3{0, 0.6, 0.8}, 2.5),
}

func TestToForceZeroVelocity(t *testing.T) {
	for _, p := range testPanels {
		got := p.ToForce(StandardAir, quantity.LinVel{})
		if got != (quantity.Force{}) {
			t.Errorf("panel %+v at rest: force = %v, want zero", p, got)
		}
		if !quantity.IsFinite(got.Vec3()) {
			t.Errorf("panel %+v at rest produced %v", p, got)
		}
	}
}

func TestToForcePerpendicular(t *testing.T) {
	tests := []struct {
		normal mgl64.Vec3
		v      quantity.LinVel
	}{
		{mgl64.Vec3{1, 0, 0}, quantity.LinVel{0, 3, 0}},
		{mgl64.Vec3{0, 1, 0}, quantity.LinVel{-2, 0, 7}},
		{mgl64.Vec3{0, 0.6, 0.8}, quantity.LinVel{5, 0, 0}},
	}

	for _, tt := range tests {
		p := NewPanel(mgl64.Vec3{}, tt.normal, 1)
		if got := p.ToForce(StandardAir, tt.v); got.Len() != 0 {
			t.Errorf("normal %v, velocity %v: force = %v, want zero", tt.normal, tt.v, got)
		}
	}
}

func TestToForceHeadOn(t *testing.T) {
	p := NewPanel(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 1)

	for _, v := range []float64{0.5, 1, 3, 12.25, 340} {
		got := p.ToForce(StandardAir, quantity.LinVel{v, 0, 0})
		want := quantity.Force{-(StandardAir.Density * v * v * StandardAir.HalfDrag), 0, 0}
		if got != want {
			t.Errorf("v=%v: force = %v, want %v", v, got, want)
		}
	}
}

func TestToForceOpposesMotion(t *testing.T) {
	p := NewPanel(mgl64.Vec3{}, mgl64.Vec3{0, 0.6, 0.8}, 2)
	for _, v := range []quantity.LinVel{{0, 1, 1}, {0, -1, -1}, {3, -2, 0.5}} {
		f := p.ToForce(StandardAir, v)
		if f.Vec3().Dot(v.Vec3()) > 0 {
			t.Errorf("velocity %v: force %v does work on the body", v, f)
		}
	}
}

func TestToForceVacuum(t *testing.T) {
	p := NewPanel(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 1)
	if got := p.ToForce(Vacuum, quantity.LinVel{10, 0, 0}); got.Len() != 0 {
		t.Errorf("vacuum force = %v, want zero", got)
	}
}

func TestPanelRotated(t *testing.T) {
	for _, p := range testPanels {
		if got := p.Rotated(quantity.Identity()); got != p {
			t.Errorf("Rotated(identity) = %+v, want %+v", got, p)
		}

		q := quantity.FromAxisAngle(mgl64.Vec3{0.3, -1, 2}, 2.2)
		got := p.Rotated(q).Rotated(q.Inverse())
		if !vec3AlmostEqual(got.Offset, p.Offset, 1e-12) || !vec3AlmostEqual(got.Normal, p.Normal, 1e-12) {
			t.Errorf("round trip = %+v, want %+v", got, p)
		}
	}

	p := NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 1).Rotated(quantity.RotationZ(math.Pi / 2))
	if !vec3AlmostEqual(p.Offset, mgl64.Vec3{0, 1, 0}, 1e-12) || !vec3AlmostEqual(p.Normal, mgl64.Vec3{-1, 0, 0}, 1e-12) {
		t.Errorf("quarter turn = %+v", p)
	}
}

func TestTipVelocity(t *testing.T) {
	p := NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 1)
	v := Velocity{
		Linear:  quantity.LinVel{0.5, 0, 0},
		Angular: quantity.AngVel{0, 0, 2},
	}
	if got := p.TipVelocity(v); got != (quantity.LinVel{0.5, 2, 0}) {
		t.Errorf("TipVelocity = %v, want (0.5,2,0)", got)
	}
}

func TestToMomentSpinningPanel(t *testing.T) {
	s, err := NewBuilder().
		Mass(mustCylinderZ(1, 1, 1)).
		Momentum(Momentum{Angular: quantity.AngMom{0, 0, 0.5}}).
		AddPanel(NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 1)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if w := s.Velocity().Angular; !vec3AlmostEqual(w.Vec3(), mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Fatalf("angular velocity = %v, want (0,0,1)", w)
	}

	drag := StandardAir.Density * StandardAir.HalfDrag
	m := s.Panels[0].ToMoment(s)
	if !vec3AlmostEqual(m.Force.Vec3(), mgl64.Vec3{0, -drag, 0}, 1e-12) {
		t.Errorf("force = %v, want (0,%v,0)", m.Force, -drag)
	}
	if !vec3AlmostEqual(m.Torque.Vec3(), mgl64.Vec3{0, 0, -drag}, 1e-12) {
		t.Errorf("torque = %v, want (0,0,%v)", m.Torque, -drag)
	}
	if got := PanelMoment(s); got != m {
		t.Errorf("PanelMoment = %+v, want %+v", got, m)
	}
}

func TestToMomentUsesWorldOffset(t *testing.T) {
	// Rotating the body a quarter turn about z moves the panel from +x to
	// +y, so pure x translation now drives the panel edge-on.
	s, err := NewBuilder().
		Mass(mustCylinderZ(1, 1, 1)).
		Transform(Transform{Rotation: quantity.RotationZ(math.Pi / 2)}).
		Momentum(Momentum{Linear: quantity.LinMom{2, 0, 0}}).
		AddPanel(NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}, 1)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	m := PanelMoment(s)
	want := -StandardAir.Density * 4 * StandardAir.HalfDrag
	if !vec3AlmostEqual(m.Force.Vec3(), mgl64.Vec3{0, 0, 0}, 1e-12) {
		t.Errorf("force = %v, want zero for an edge-on panel", m.Force)
	}

	s.Transform.Rotation = quantity.Identity()
	m = PanelMoment(s)
	if !vec3AlmostEqual(m.Force.Vec3(), mgl64.Vec3{want, 0, 0}, 1e-12) {
		t.Errorf("force = %v, want (%v,0,0)", m.Force, want)
	}
	if m.Torque.Len() > 1e-12 {
		t.Errorf("torque = %v, want zero for a force through the offset", m.Torque)
	}
}

func TestBoxPanels(t *testing.T) {
	panels := BoxPanels(1, 2, 3)
	if len(panels) != 6 {
		t.Fatalf("got %d panels, want 6", len(panels))
	}

	var area float64
	for _, p := range panels {
		area += p.Area
		if !almostEqual(p.Normal.Len(), 1, 1e-15) {
			t.Errorf("normal %v is not unit length", p.Normal)
		}
		if p.Offset.Dot(p.Normal) <= 0 {
			t.Errorf("panel %+v does not face outward", p)
		}
	}
	if want := 2 * (1*2 + 2*3 + 1*3.0); area != want {
		t.Errorf("total area = %v, want %v", area, want)
	}

	s, err := NewBuilder().
		Mass(MustInertiaMass(1, mgl64.Ident3())).
		Momentum(Momentum{Linear: quantity.LinMom{3, 0, 0}}).
		AddPanels(panels...).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	m := PanelMoment(s)
	want := -2 * StandardAir.Density * 9 * StandardAir.HalfDrag * 6
	if !almostEqual(m.Force[0], want, 1e-9) || m.Force[1] != 0 || m.Force[2] != 0 {
		t.Errorf("force = %v, want (%v,0,0)", m.Force, want)
	}
	if m.Torque.Len() > 1e-12 {
		t.Errorf("symmetric box produced torque %v", m.Torque)
	}
}

func TestPanelValidate(t *testing.T) {
	tests := []struct {
		name  string
		panel Panel
		ok    bool
	}{
		{"valid", NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 1), true},
		{"zero area", NewPanel(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 0), true},
		{"negative area", NewPanel(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, -1), false},
		{"nan offset", NewPanel(mgl64.Vec3{math.NaN(), 0, 0}, mgl64.Vec3{0, 1, 0}, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.panel.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
