// Package metrics holds scalar summaries observed once per simulation step.
// Every type here satisfies sim.Metric.
package metrics

import "math"

// average accumulates a running mean.
type average struct {
	sum     float64
	samples int
}

func (a *average) add(v float64) {
	a.sum += v
	a.samples++
}

func (a *average) value(empty float64) float64 {
	if a.samples == 0 {
		return empty
	}
	return a.sum / float64(a.samples)
}

// drift tracks the largest relative departure from the first sample. A zero
// first sample has no scale, so no drift is recorded against it.
type drift struct {
	ref     float64
	worst   float64
	started bool
}

func (d *drift) add(v float64) {
	if !d.started {
		d.ref, d.started = v, true
	}
	if d.ref != 0 {
		d.worst = math.Max(d.worst, math.Abs(v-d.ref)/math.Abs(d.ref))
	}
}
