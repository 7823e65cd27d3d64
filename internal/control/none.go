package control

import (
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
)

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Moment(s *dynamo.State, t float64) dynamo.Moment {
	return dynamo.Moment{}
}

// Constant applies the same world-frame moment at every step.
type Constant struct {
	Value dynamo.Moment
}

func NewConstant(m dynamo.Moment) *Constant {
	return &Constant{Value: m}
}

func (c *Constant) Moment(s *dynamo.State, t float64) dynamo.Moment {
	return c.Value
}

// Gravity is a constant downward force of mass·g along -z.
func Gravity(mass, g float64) *Constant {
	return NewConstant(dynamo.Moment{Force: quantity.Force{0, 0, -mass * g}})
}
