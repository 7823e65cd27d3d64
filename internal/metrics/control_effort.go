package metrics

import "github.com/san-kum/sixdof/internal/dynamo"

// ControlEffort is the mean magnitude of the applied moment, force and torque
// taken together as one six-vector.
type ControlEffort struct{ avg average }

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (*ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(_ *dynamo.State, ext dynamo.Moment, _ float64) {
	c.avg.add(ext.Magnitude())
}

func (c *ControlEffort) Value() float64 { return c.avg.value(0) }
func (c *ControlEffort) Reset()         { c.avg = average{} }
