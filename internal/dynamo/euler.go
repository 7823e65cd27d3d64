package dynamo

// Euler is the explicit first-order scheme: one force evaluation per step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Name() string { return "euler" }

func (Euler) Step(s *State, ext Moment, dt float64) {
	r := Derive(s, ext)
	s.Transform = s.Transform.Add(r.Velocity.MulSecs(dt))
	s.Momentum = s.Momentum.Add(r.Moment.MulSecs(dt))
}
