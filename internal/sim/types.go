package sim

import (
	"fmt"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// Metric accumulates a scalar over the samples of a run.
type Metric interface {
	Name() string
	Observe(s *dynamo.State, ext dynamo.Moment, t float64)
	Value() float64
	Reset()
}

// Observer is notified before every step.
type Observer interface {
	OnStep(s *dynamo.State, ext dynamo.Moment, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Renormalize   bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Renormalize:   true,
		ValidateState: true,
	}
}

// Steps is the number of whole steps that fit in Duration.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 1e-9)
}

// Snapshot is the evolving part of a State at one sample time. Mass, panels
// and medium are fixed for a run and live on Result.Body.
type Snapshot struct {
	Transform dynamo.Transform `json:"transform"`
	Momentum  dynamo.Momentum  `json:"momentum"`
}

func SnapshotOf(s *dynamo.State) Snapshot {
	return Snapshot{Transform: s.Transform, Momentum: s.Momentum}
}

// State rebuilds a full State from the snapshot and the run's body.
func (sn Snapshot) State(body *dynamo.State) *dynamo.State {
	s := body.Clone()
	s.Transform = sn.Transform
	s.Momentum = sn.Momentum
	return s
}

type Result struct {
	Body        *dynamo.State
	Snapshots   []Snapshot
	Moments     []dynamo.Moment
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Final returns the last recorded state of the run.
func (r *Result) Final() *dynamo.State {
	if len(r.Snapshots) == 0 {
		return r.Body.Clone()
	}
	return r.Snapshots[len(r.Snapshots)-1].State(r.Body)
}

// SimError reports a failure at a given step of a run.
type SimError struct {
	Time float64
	Step int
	Err  error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e SimError) Unwrap() error {
	return e.Err
}
