package metrics

import "github.com/san-kum/sixdof/internal/dynamo"

// Stability is the fraction of samples whose angular speed stays at or below
// Threshold rad/s. A run with no samples counts as fully stable.
type Stability struct {
	Threshold float64
	calm      average
}

func NewStability(threshold float64) *Stability {
	return &Stability{Threshold: threshold}
}

func (*Stability) Name() string { return "stability" }

func (s *Stability) Observe(st *dynamo.State, _ dynamo.Moment, _ float64) {
	if st.Velocity().Angular.Len() <= s.Threshold {
		s.calm.add(1)
	} else {
		s.calm.add(0)
	}
}

func (s *Stability) Value() float64 { return s.calm.value(1) }
func (s *Stability) Reset()         { s.calm = average{} }
