package metrics

import (
	"math"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// MomentumDrift is the largest relative change of |L| from the first sample.
// Torque-free runs should keep it at rounding level.
type MomentumDrift struct{ d drift }

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (*MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(s *dynamo.State, _ dynamo.Moment, _ float64) {
	m.d.add(s.Momentum.Angular.Len())
}

func (m *MomentumDrift) Value() float64 { return m.d.worst }
func (m *MomentumDrift) Reset()         { m.d = drift{} }

// NormDrift is the largest deviation of the orientation quaternion from unit
// length. With renormalization on it stays near machine epsilon.
type NormDrift struct{ worst float64 }

func NewNormDrift() *NormDrift { return &NormDrift{} }

func (*NormDrift) Name() string { return "norm_drift" }

func (n *NormDrift) Observe(s *dynamo.State, _ dynamo.Moment, _ float64) {
	n.worst = math.Max(n.worst, math.Abs(s.Transform.Rotation.Norm()-1))
}

func (n *NormDrift) Value() float64 { return n.worst }
func (n *NormDrift) Reset()         { n.worst = 0 }
