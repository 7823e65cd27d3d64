package dynamo

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

func TestBuilderRequiresMass(t *testing.T) {
	_, err := NewBuilder().AddPanel(NewPanel(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 1)).Build()
	if !errors.Is(err, ErrMissingMass) {
		t.Errorf("error = %v, want ErrMissingMass", err)
	}
}

func TestBuilderValidatesMass(t *testing.T) {
	_, err := NewBuilder().
		Mass(InertiaMass{}).
		Momentum(Momentum{Linear: quantity.LinMom{1, 0, 0}}).
		Build()
	if !errors.Is(err, ErrNonPositiveMass) {
		t.Errorf("error = %v, want ErrNonPositiveMass", err)
	}

	// A literal without its inverse gets one at build time.
	s, err := NewBuilder().Mass(InertiaMass{Mass: 2, Inertia: asymmetricInertia}).Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Mass.Inertia.Mul3(s.Mass.InvInertia); !mat3AlmostEqual(got, mgl64.Ident3(), 1e-9) {
		t.Errorf("I·I⁻¹ = %v, want identity", got)
	}
}

func TestBuilderDefaults(t *testing.T) {
	s, err := NewBuilder().Mass(mustCylinderZ(1, 1, 1)).Build()
	if err != nil {
		t.Fatal(err)
	}
	if s.Transform != IdentityTransform() {
		t.Errorf("transform = %+v, want identity", s.Transform)
	}
	if s.Momentum != (Momentum{}) {
		t.Errorf("momentum = %+v, want zero", s.Momentum)
	}
	if s.Medium != StandardAir {
		t.Errorf("medium = %+v, want StandardAir", s.Medium)
	}
	if len(s.Panels) != 0 {
		t.Errorf("panels = %v, want none", s.Panels)
	}
}

func TestBuilderVelocity(t *testing.T) {
	rot := quantity.RotationX(0.6)
	v := Velocity{
		Linear:  quantity.LinVel{1, 2, 3},
		Angular: quantity.AngVel{0.1, 0.2, -0.3},
	}
	s, err := NewBuilder().
		Velocity(v).
		Transform(Transform{Rotation: rot}).
		Mass(MustInertiaMass(2, asymmetricInertia)).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if s.Momentum.Linear != (quantity.LinMom{2, 4, 6}) {
		t.Errorf("linear momentum = %v, want (2,4,6)", s.Momentum.Linear)
	}
	got := s.Velocity()
	if !vec3AlmostEqual(got.Angular.Vec3(), v.Angular.Vec3(), 1e-12) {
		t.Errorf("angular velocity = %v, want %v", got.Angular, v.Angular)
	}

	s, err = NewBuilder().
		Mass(MustInertiaMass(2, asymmetricInertia)).
		Velocity(v).
		Momentum(Momentum{}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if s.Momentum != (Momentum{}) {
		t.Errorf("Momentum after Velocity should win, got %+v", s.Momentum)
	}
}

func TestBuilderPanels(t *testing.T) {
	panels := BoxPanels(1, 1, 1)
	b := NewBuilder().Mass(mustCylinderZ(1, 1, 1)).Panels(panels)
	panels[0].Area = 42

	s, err := b.AddPanel(NewPanel(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 0.5)).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Panels) != 7 {
		t.Fatalf("got %d panels, want 7", len(s.Panels))
	}
	if s.Panels[0].Area != 1 {
		t.Errorf("builder kept a reference to the caller's slice")
	}
}

func TestBuilderRejectsInvalidInput(t *testing.T) {
	_, err := NewBuilder().
		Mass(mustCylinderZ(1, 1, 1)).
		AddPanel(NewPanel(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, -2)).
		Build()
	if !errors.Is(err, ErrInvalidPanel) {
		t.Errorf("error = %v, want ErrInvalidPanel", err)
	}

	_, err = NewBuilder().
		Mass(mustCylinderZ(1, 1, 1)).
		Momentum(Momentum{Linear: quantity.LinMom{math.NaN(), 0, 0}}).
		Build()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("error = %v, want ErrInvalidState", err)
	}
}
