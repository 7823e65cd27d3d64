package dynamo

// RK4 is the classical fourth-order Runge-Kutta scheme on the coupled
// pose/momentum system. Each stage re-derives velocity and panel drag from
// its own intermediate state.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (RK4) Name() string { return "rk4" }

func (RK4) Step(s *State, ext Moment, dt float64) {
	half := dt * 0.5

	k1 := Derive(s, ext)
	s1 := Advanced(s, k1, half)

	k2 := Derive(&s1, ext)
	s2 := Advanced(s, k2, half)

	k3 := Derive(&s2, ext)
	s3 := Advanced(s, k3, dt)

	k4 := Derive(&s3, ext)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	dt6 := dt / 6.0
	s.Transform = s.Transform.Add(sum.Velocity.MulSecs(dt6))
	s.Momentum = s.Momentum.Add(sum.Moment.MulSecs(dt6))
}
