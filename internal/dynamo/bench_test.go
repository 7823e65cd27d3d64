package dynamo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/quantity"
)

func benchState(b *testing.B, panels []Panel) *State {
	s, err := NewBuilder().
		Mass(MustInertiaMass(2, asymmetricInertia)).
		Momentum(Momentum{
			Linear:  quantity.LinMom{10, 0, 1},
			Angular: quantity.AngMom{0.3, 1, -0.5},
		}).
		Panels(panels).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	return s
}

func BenchmarkEuler(b *testing.B) {
	s := benchState(b, BoxPanels(1, 0.5, 0.2))
	integ := NewEuler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(s, Moment{}, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	s := benchState(b, BoxPanels(1, 0.5, 0.2))
	integ := NewRK4()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(s, Moment{}, 0.001)
	}
}

func BenchmarkRK4_NoPanels(b *testing.B) {
	s := benchState(b, nil)
	integ := NewRK4()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(s, Moment{}, 0.001)
	}
}

func BenchmarkRK4_Panels64(b *testing.B) {
	panels := make([]Panel, 0, 64)
	for i := 0; i < 64; i++ {
		f := float64(i)
		panels = append(panels, NewPanel(mgl64.Vec3{f * 0.01, 1, 0}, mgl64.Vec3{0, 0, 1}, 0.01))
	}
	s := benchState(b, panels)
	integ := NewRK4()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(s, Moment{}, 0.001)
	}
}

func BenchmarkVelocity(b *testing.B) {
	s := benchState(b, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Velocity()
	}
}
