package control

import (
	"sync"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// Manual passes a moment set from outside to the body. Used by the live view
// to fire thrusters from the keyboard. Safe for concurrent Set and Moment.
type Manual struct {
	mu    sync.Mutex
	value dynamo.Moment
	decay float64
}

// NewManual returns a Manual actuator. After each Moment call the stored
// value is multiplied by decay, so 0 yields one-shot impulses and 1 holds the
// moment until it is changed.
func NewManual(decay float64) *Manual {
	return &Manual{decay: decay}
}

// Set replaces the moment applied from the next step on.
func (c *Manual) Set(m dynamo.Moment) {
	c.mu.Lock()
	c.value = m
	c.mu.Unlock()
}

// Add accumulates m onto the pending moment.
func (c *Manual) Add(m dynamo.Moment) {
	c.mu.Lock()
	c.value = c.value.Add(m)
	c.mu.Unlock()
}

func (c *Manual) Moment(s *dynamo.State, t float64) dynamo.Moment {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.value
	c.value = c.value.Scale(c.decay)
	return m
}

func (c *Manual) Reset() {
	c.Set(dynamo.Moment{})
}
