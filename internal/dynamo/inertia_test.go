package dynamo

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

func TestNewInertiaMassInverse(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		inertia mgl64.Mat3
	}{
		{"identity", 1, mgl64.Ident3()},
		{"diagonal", 2.5, mgl64.Diag3(mgl64.Vec3{0.5, 1.5, 4})},
		{"full symmetric", 7, asymmetricInertia},
		{"tiny body", 1e-3, mgl64.Diag3(mgl64.Vec3{4e-8, 4e-8, 4e-8})},
		{"tiny asymmetric", 1e-3, asymmetricInertia.Mul(1e-8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewInertiaMass(tt.mass, tt.inertia)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := m.Inertia.Mul3(m.InvInertia); !mat3AlmostEqual(got, mgl64.Ident3(), 1e-9) {
				t.Errorf("I·I⁻¹ = %v, want identity", got)
			}
			if m.Mass != tt.mass {
				t.Errorf("Mass = %v, want %v", m.Mass, tt.mass)
			}
		})
	}
}

func TestSmallSphereSpins(t *testing.T) {
	m, err := SolidSphere(0.005, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	s := &State{
		Mass:      m,
		Transform: IdentityTransform(),
		Momentum:  Momentum{Angular: quantity.AngMom{0, 0, 1e-8}},
	}
	want := 1e-8 / (0.4 * 0.001 * 0.005 * 0.005)
	if got := s.Velocity().Angular[2]; math.Abs(got-want) > 1e-9*want {
		t.Errorf("ω_z = %v, want %v", got, want)
	}
}

func TestNewInertiaMassErrors(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		inertia mgl64.Mat3
		want    error
	}{
		{"zero mass", 0, mgl64.Ident3(), ErrNonPositiveMass},
		{"negative mass", -1, mgl64.Ident3(), ErrNonPositiveMass},
		{"nan mass", math.NaN(), mgl64.Ident3(), ErrNonPositiveMass},
		{"inf mass", math.Inf(1), mgl64.Ident3(), ErrNonPositiveMass},
		{"zero tensor", 1, mgl64.Mat3{}, ErrSingularInertia},
		{"rank deficient", 1, mgl64.Diag3(mgl64.Vec3{1, 1, 0}), ErrSingularInertia},
		{"nan entry", 1, mgl64.Diag3(mgl64.Vec3{1, math.NaN(), 1}), ErrSingularInertia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInertiaMass(tt.mass, tt.inertia)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMustInertiaMassPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for singular tensor")
		}
	}()
	MustInertiaMass(1, mgl64.Mat3{})
}

func TestRotatedIdentityIsNoOp(t *testing.T) {
	m := MustInertiaMass(3, asymmetricInertia)
	got := m.Rotated(quantity.Identity())
	if !mat3AlmostEqual(got.Inertia, m.Inertia, 1e-15) || !mat3AlmostEqual(got.InvInertia, m.InvInertia, 1e-15) {
		t.Errorf("Rotated(identity) = %+v, want %+v", got, m)
	}
}

func TestRotatedRoundTrip(t *testing.T) {
	m := MustInertiaMass(3, asymmetricInertia)
	rotations := []quantity.Rotation{
		quantity.RotationX(0.7),
		quantity.RotationY(-2.3),
		quantity.FromAxisAngle(mgl64.Vec3{1, -2, 0.5}, 1.234),
	}

	for _, q := range rotations {
		got := m.Rotated(q).Rotated(q.Inverse())
		if !mat3AlmostEqual(got.Inertia, m.Inertia, 1e-12) {
			t.Errorf("inertia round trip = %v, want %v", got.Inertia, m.Inertia)
		}
		if !mat3AlmostEqual(got.InvInertia, m.InvInertia, 1e-12) {
			t.Errorf("inverse round trip = %v, want %v", got.InvInertia, m.InvInertia)
		}

		world := m.Rotated(q)
		if r := world.RotatedInertia(quantity.Identity()); !mat3AlmostEqual(r, world.Inertia, 1e-15) {
			t.Errorf("RotatedInertia disagrees with Rotated")
		}
		if r := m.RotatedInvInertia(q); !mat3AlmostEqual(r, world.InvInertia, 1e-15) {
			t.Errorf("RotatedInvInertia disagrees with Rotated")
		}
		if p := world.Inertia.Mul3(world.InvInertia); !mat3AlmostEqual(p, mgl64.Ident3(), 1e-12) {
			t.Errorf("rotated tensors are not inverse: %v", p)
		}
	}
}

func TestRotatedQuarterTurnSwapsAxes(t *testing.T) {
	m := MustInertiaMass(1, mgl64.Diag3(mgl64.Vec3{1, 2, 3}))
	got := m.RotatedInertia(quantity.RotationZ(math.Pi / 2))
	want := mgl64.Diag3(mgl64.Vec3{2, 1, 3})
	if !mat3AlmostEqual(got, want, 1e-12) {
		t.Errorf("RotatedInertia = %v, want %v", got, want)
	}
}

func TestCanonicalShapes(t *testing.T) {
	side := 3.0*2*2/12 + 3.0*0.5*0.5/4
	front := 3.0 * 0.5 * 0.5 / 2

	tests := []struct {
		name string
		make func() (InertiaMass, error)
		want mgl64.Vec3
	}{
		{"cylinder x", func() (InertiaMass, error) { return CylinderX(2, 0.5, 3) }, mgl64.Vec3{front, side, side}},
		{"cylinder y", func() (InertiaMass, error) { return CylinderY(2, 0.5, 3) }, mgl64.Vec3{side, front, side}},
		{"cylinder z", func() (InertiaMass, error) { return CylinderZ(2, 0.5, 3) }, mgl64.Vec3{side, side, front}},
		{"unit cylinder", func() (InertiaMass, error) { return CylinderX(1, 1, 1) }, mgl64.Vec3{0.5, 1.0/12 + 0.25, 1.0/12 + 0.25}},
		{"sphere", func() (InertiaMass, error) { return SolidSphere(1, 5) }, mgl64.Vec3{2, 2, 2}},
		{"box", func() (InertiaMass, error) { return SolidBox(1, 2, 3, 12) }, mgl64.Vec3{13, 10, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.make()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := mgl64.Vec3{m.Inertia.At(0, 0), m.Inertia.At(1, 1), m.Inertia.At(2, 2)}
			if !vec3AlmostEqual(got, tt.want, 1e-15) {
				t.Errorf("diagonal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegenerateCylinder(t *testing.T) {
	if _, err := CylinderZ(1, 0, 1); !errors.Is(err, ErrSingularInertia) {
		t.Errorf("zero radius error = %v, want ErrSingularInertia", err)
	}
}
