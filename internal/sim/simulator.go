package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/sixdof/internal/control"
	"github.com/san-kum/sixdof/internal/dynamo"
	"go.uber.org/zap"
)

type Simulator struct {
	integrator dynamo.Integrator
	actuator   control.Actuator
	metrics    []Metric
	observers  []Observer
	logger     *zap.Logger
}

type Option func(*Simulator)

// WithLogger routes run diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Simulator stepping with integrator and taking the external
// moment from actuator. A nil actuator applies no external moment.
func New(integrator dynamo.Integrator, actuator control.Actuator, opts ...Option) *Simulator {
	if actuator == nil {
		actuator = control.NewNone()
	}
	s := &Simulator{
		integrator: integrator,
		actuator:   actuator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Integrator() dynamo.Integrator { return s.integrator }
func (s *Simulator) Actuator() control.Actuator    { return s.actuator }

// Run integrates a copy of s0 for cfg.Duration and records every step. On
// cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, s0 *dynamo.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Body:      s0.Clone(),
		Snapshots: make([]Snapshot, 0, steps+1),
		Moments:   make([]dynamo.Moment, 0, steps),
		Times:     make([]float64, 0, steps+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	if r, ok := s.actuator.(control.Resetter); ok {
		r.Reset()
	}

	log := s.logger.With(zap.String("integrator", s.integrator.Name()))
	log.Debug("run started",
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.Int("steps", steps),
		zap.Int("panels", len(s0.Panels)))

	x := s0.Clone()
	t := 0.0

	result.Snapshots = append(result.Snapshots, SnapshotOf(x))
	result.Times = append(result.Times, t)

	initialEnergy := x.KineticEnergy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			log.Debug("run canceled", zap.Int("step", i), zap.Error(ctx.Err()))
			return result, ctx.Err()
		default:
		}

		ext := s.actuator.Moment(x, t)

		for _, m := range s.metrics {
			m.Observe(x, ext, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, ext, t)
		}

		if err := x.StepWith(s.integrator, cfg.Dt, ext); err != nil {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Err: err})
			break
		}
		if cfg.ValidateState && !x.IsValid() {
			err := SimError{Time: t, Step: i, Err: dynamo.ErrInvalidState}
			log.Warn("state diverged", zap.Int("step", i), zap.Float64("t", t))
			result.Errors = append(result.Errors, err)
			break
		}
		if cfg.Renormalize {
			x.Renormalize()
		}

		t += cfg.Dt
		result.StepsTaken++

		result.Snapshots = append(result.Snapshots, SnapshotOf(x))
		result.Moments = append(result.Moments, ext)
		result.Times = append(result.Times, t)
	}

	finalEnergy := result.Final().KineticEnergy()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.Debug("run finished",
		zap.Int("steps_taken", result.StepsTaken),
		zap.Float64("energy_drift", result.EnergyDrift),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Dt > cfg.Duration {
		return fmt.Errorf("dt %f exceeds duration %f", cfg.Dt, cfg.Duration)
	}
	return nil
}

// RunWithCallback steps s in place until cfg.Duration elapses, the context is
// canceled or callback returns false. The callback sees the state before each
// step.
func (s *Simulator) RunWithCallback(ctx context.Context, st *dynamo.State, cfg Config, callback func(*dynamo.State, dynamo.Moment, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ext := s.actuator.Moment(st, t)

		if !callback(st, ext, t) {
			return nil
		}

		if err := st.StepWith(s.integrator, cfg.Dt, ext); err != nil {
			return SimError{Time: t, Step: i, Err: err}
		}
		t += cfg.Dt

		if cfg.ValidateState && !st.IsValid() {
			return SimError{Time: t, Step: i, Err: dynamo.ErrInvalidState}
		}
		if cfg.Renormalize {
			st.Renormalize()
		}
	}

	return nil
}
