package dynamo_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
)

func build(b *dynamo.Builder) *dynamo.State {
	GinkgoHelper()
	s, err := b.Build()
	Expect(err).NotTo(HaveOccurred())
	return s
}

// plateState is a unit mass carrying one head-on panel, moving along x.
func plateState(speed float64) *dynamo.State {
	return build(dynamo.NewBuilder().
		Mass(dynamo.MustInertiaMass(1, mgl64.Ident3())).
		Momentum(dynamo.Momentum{Linear: quantity.LinMom{speed, 0, 0}}).
		AddPanel(dynamo.NewPanel(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 1)))
}

// plateSpeed is the closed-form speed of plateState under quadratic drag.
func plateSpeed(v0, t float64) float64 {
	c := dynamo.StandardAir.Density * dynamo.StandardAir.HalfDrag
	return v0 / (1 + c*v0*t)
}

func run(integ dynamo.Integrator, s *dynamo.State, ext dynamo.Moment, dt float64, steps int) {
	for i := 0; i < steps; i++ {
		Expect(s.StepWith(integ, dt, ext)).To(Succeed())
	}
}

var _ = Describe("Integrators", func() {
	integrators := []dynamo.Integrator{dynamo.NewRK4(), dynamo.NewEuler(), dynamo.NewRK45()}

	for _, integ := range integrators {
		integ := integ

		Context(integ.Name(), func() {
			It("conserves momentum exactly with no moment and no panels", func() {
				s := build(dynamo.NewBuilder().
					Mass(dynamo.MustInertiaMass(3, mgl64.Diag3(mgl64.Vec3{1, 2, 3}))).
					Transform(dynamo.Transform{Rotation: quantity.RotationY(0.3)}).
					Momentum(dynamo.Momentum{
						Linear:  quantity.LinMom{1.5, -2, 0.25},
						Angular: quantity.AngMom{0.7, 0.1, -1.3},
					}))
				before := s.Momentum

				run(integ, s, dynamo.Moment{}, 0.01, 250)
				Expect(s.Momentum).To(Equal(before))
			})

			It("advances translation by velocity times dt under constant velocity", func() {
				s := build(dynamo.NewBuilder().
					Mass(dynamo.MustInertiaMass(2, mgl64.Ident3())).
					Momentum(dynamo.Momentum{Linear: quantity.LinMom{2, -4, 1}}))

				Expect(s.StepWith(integ, 0.25, dynamo.Moment{})).To(Succeed())
				got := s.Transform.Translation
				Expect(got[0]).To(BeNumerically("~", 0.25, 1e-15))
				Expect(got[1]).To(BeNumerically("~", -0.5, 1e-15))
				Expect(got[2]).To(BeNumerically("~", 0.125, 1e-15))
				Expect(s.Transform.Rotation).To(Equal(quantity.Identity()))
			})

			It("applies a constant external moment as impulse", func() {
				s := build(dynamo.NewBuilder().
					Mass(dynamo.MustInertiaMass(1, mgl64.Ident3())).
					Medium(dynamo.Vacuum))
				ext := dynamo.Moment{
					Force:  quantity.Force{0, 0, -9.81},
					Torque: quantity.Torque{0.5, 0, 0},
				}

				run(integ, s, ext, 0.01, 100)
				Expect(s.Momentum.Linear[2]).To(BeNumerically("~", -9.81, 1e-12))
				Expect(s.Momentum.Angular[0]).To(BeNumerically("~", 0.5, 1e-12))
			})

			It("is a no-op for a zero timestep and rejects negative ones", func() {
				s := plateState(10)
				before := s.Clone()

				Expect(s.StepWith(integ, 0, dynamo.Moment{})).To(Succeed())
				Expect(s.Transform).To(Equal(before.Transform))
				Expect(s.Momentum).To(Equal(before.Momentum))
				Expect(s.StepWith(integ, -1, dynamo.Moment{})).To(MatchError(dynamo.ErrNegativeTimestep))
			})
		})
	}

	Describe("RK4", func() {
		rk4 := dynamo.NewRK4()

		It("tracks quadratic drag to fourth order", func() {
			s := plateState(10)
			run(rk4, s, dynamo.Moment{}, 0.01, 100)
			Expect(s.Velocity().Linear[0]).To(BeNumerically("~", plateSpeed(10, 1), 1e-6))
		})

		It("re-evaluates drag at every stage", func() {
			rk := plateState(10)
			eu := plateState(10)
			run(rk4, rk, dynamo.Moment{}, 0.05, 20)
			run(dynamo.NewEuler(), eu, dynamo.Moment{}, 0.05, 20)

			want := plateSpeed(10, 1)
			rkErr := math.Abs(rk.Velocity().Linear[0] - want)
			euErr := math.Abs(eu.Velocity().Linear[0] - want)
			Expect(rkErr).To(BeNumerically("<", 1e-3))
			Expect(rkErr).To(BeNumerically("<", euErr/100))
		})

		It("matches the Step method on State", func() {
			a := plateState(4)
			b := a.Clone()
			Expect(a.Step(0.02, dynamo.Moment{})).To(Succeed())
			rk4.Step(b, dynamo.Moment{}, 0.02)
			Expect(a.Momentum).To(Equal(b.Momentum))
			Expect(a.Transform).To(Equal(b.Transform))
		})

		It("spins an axisymmetric body at a steady rate", func() {
			s := build(dynamo.NewBuilder().
				Mass(dynamo.MustInertiaMass(1, mgl64.Diag3(mgl64.Vec3{1, 1, 2}))).
				Momentum(dynamo.Momentum{Angular: quantity.AngMom{0, 0, 2}}).
				Medium(dynamo.Vacuum))

			run(rk4, s, dynamo.Moment{}, 0.01, 100)
			Expect(s.Transform.Rotation.ApproxEqual(quantity.RotationZ(1), 1e-9)).To(BeTrue())
		})

		It("keeps energy nearly constant for a torque-free tumbling body", func() {
			s := build(dynamo.NewBuilder().
				Mass(dynamo.MustInertiaMass(1, mgl64.Diag3(mgl64.Vec3{1, 2, 3}))).
				Momentum(dynamo.Momentum{Angular: quantity.AngMom{0.2, 1.5, 0.3}}).
				Medium(dynamo.Vacuum))
			e0 := s.KineticEnergy()

			for i := 0; i < 1000; i++ {
				Expect(s.Step(0.001, dynamo.Moment{})).To(Succeed())
				s.Renormalize()
			}
			Expect(math.Abs(s.KineticEnergy()-e0) / e0).To(BeNumerically("<", 1e-4))
		})

		It("slows a panel spinning about z", func() {
			s := build(dynamo.NewBuilder().
				Mass(mustCylinderZ()).
				Momentum(dynamo.Momentum{Angular: quantity.AngMom{0, 0, 0.5}}).
				AddPanel(dynamo.NewPanel(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 1)))

			prev := s.Momentum.Angular[2]
			for i := 0; i < 50; i++ {
				Expect(s.Step(0.02, dynamo.Moment{})).To(Succeed())
				Expect(s.Momentum.Angular[2]).To(BeNumerically("<", prev))
				Expect(s.Momentum.Angular[2]).To(BeNumerically(">", 0))
				prev = s.Momentum.Angular[2]
			}
		})
	})
})

var _ = Describe("RK45", func() {
	It("tracks quadratic drag at a coarse timestep", func() {
		s := plateState(10)
		run(dynamo.NewRK45(), s, dynamo.Moment{}, 0.1, 10)
		Expect(s.Velocity().Linear[0]).To(BeNumerically("~", plateSpeed(10, 1), 1e-6))
	})

	It("beats RK4 on a tumbling body at the same timestep", func() {
		tumbler := func() *dynamo.State {
			return build(dynamo.NewBuilder().
				Mass(dynamo.MustInertiaMass(1, mgl64.Diag3(mgl64.Vec3{1, 2, 3}))).
				Momentum(dynamo.Momentum{Angular: quantity.AngMom{0.2, 1.5, 0.3}}).
				Medium(dynamo.Vacuum))
		}
		drift := func(integ dynamo.Integrator) float64 {
			s := tumbler()
			e0 := s.KineticEnergy()
			for i := 0; i < 100; i++ {
				Expect(s.StepWith(integ, 0.1, dynamo.Moment{})).To(Succeed())
				s.Renormalize()
			}
			return math.Abs(s.KineticEnergy()-e0) / e0
		}

		adaptive := drift(dynamo.NewRK45())
		Expect(adaptive).To(BeNumerically("<", 1e-6))
		Expect(adaptive).To(BeNumerically("<", drift(dynamo.NewRK4())))
	})

	It("gives up refining after MaxSubsteps", func() {
		integ := dynamo.NewRK45()
		integ.Tol = 0
		integ.MaxSubsteps = 4
		s := plateState(10)
		Expect(s.StepWith(integ, 0.1, dynamo.Moment{})).To(Succeed())
		Expect(s.IsValid()).To(BeTrue())
		Expect(s.Transform.Translation[0]).To(BeNumerically(">", 0))
	})
})

func mustCylinderZ() dynamo.InertiaMass {
	m, err := dynamo.CylinderZ(1, 1, 1)
	Expect(err).NotTo(HaveOccurred())
	return m
}
