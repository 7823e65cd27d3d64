package control

import "github.com/san-kum/sixdof/internal/dynamo"

// Sum applies the combined moment of several actuators.
type Sum []Actuator

func (s Sum) Moment(st *dynamo.State, t float64) dynamo.Moment {
	var m dynamo.Moment
	for _, a := range s {
		m = m.Add(a.Moment(st, t))
	}
	return m
}

func (s Sum) Reset() {
	for _, a := range s {
		if r, ok := a.(Resetter); ok {
			r.Reset()
		}
	}
}
