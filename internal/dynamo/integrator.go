package dynamo

// Rate is the time derivative of a State: d(Transform)/dt is the body
// velocity and d(Momentum)/dt is the total moment.
type Rate struct {
	Velocity Velocity
	Moment   Moment
}

func (r Rate) Add(o Rate) Rate {
	return Rate{r.Velocity.Add(o.Velocity), r.Moment.Add(o.Moment)}
}

func (r Rate) Scale(k float64) Rate {
	return Rate{r.Velocity.Scale(k), r.Moment.Scale(k)}
}

// Derive evaluates the rate of s under ext. Panel drag is recomputed from s,
// so the result depends on the state it is evaluated at.
func Derive(s *State, ext Moment) Rate {
	return Rate{
		Velocity: s.Velocity(),
		Moment:   s.TotalMoment(ext),
	}
}

// Advanced returns s moved along r for dt seconds. Mass, panels and medium are
// carried over unchanged; the panel slice is shared with s.
func Advanced(s *State, r Rate, dt float64) State {
	return State{
		Mass:      s.Mass,
		Transform: s.Transform.Add(r.Velocity.MulSecs(dt)),
		Momentum:  s.Momentum.Add(r.Moment.MulSecs(dt)),
		Panels:    s.Panels,
		Medium:    s.Medium,
	}
}

// Integrator advances a State in place by one fixed step.
type Integrator interface {
	Step(s *State, ext Moment, dt float64)
	Name() string
}
