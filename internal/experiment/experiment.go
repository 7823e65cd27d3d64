package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/control"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
	"github.com/san-kum/sixdof/internal/sim"
	"go.uber.org/zap"
)

// Experiment is one scenario wired to an integrator, a controller and the
// default metrics.
type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	simulator  *sim.Simulator
	controller control.Actuator
	initial    *dynamo.State
	logger     *zap.Logger
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the initial state and the simulator. The scenario's constant
// external moment and gravity are applied alongside the controller.
func (e *Experiment) Setup(reg *Registry, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	s0, err := e.cfg.BuildState()
	if err != nil {
		return fmt.Errorf("build state: %w", err)
	}
	integ, err := reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := reg.GetController(e.cfg.Controller, e.cfg.GetControllerParams())
	if err != nil {
		return err
	}

	e.registry = reg
	e.initial = s0
	e.controller = ctrl
	e.logger = logger.With(zap.String("scenario", e.cfg.Name))
	e.simulator = sim.New(integ, e.withExternal(ctrl), sim.WithLogger(e.logger))
	for _, m := range reg.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.initial, e.SimConfig())
}

// RunEnsemble simulates n copies of the scenario in parallel, each with its
// own controller and metrics. perturb, if non-nil, adjusts copy i before it
// runs.
func (e *Experiment) RunEnsemble(ctx context.Context, n int, perturb func(i int, s *dynamo.State)) ([]*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	bodies := make([]*dynamo.State, n)
	for i := range bodies {
		bodies[i] = e.initial.Clone()
		if perturb != nil {
			perturb(i, bodies[i])
		}
	}

	// The controller name was resolved in Setup, so this cannot fail.
	newActuator := func() control.Actuator {
		ctrl, _ := e.registry.GetController(e.cfg.Controller, e.cfg.GetControllerParams())
		return e.withExternal(ctrl)
	}

	ens := sim.NewEnsemble(e.simulator.Integrator(), newActuator, e.registry.DefaultMetrics, e.logger)
	return ens.Run(ctx, bodies, e.SimConfig())
}

// withExternal adds the scenario's constant external moment and gravity to
// the controller.
func (e *Experiment) withExternal(ctrl control.Actuator) control.Actuator {
	acts := control.Sum{ctrl}
	ext := dynamo.Moment{
		Force:  quantity.Force(e.cfg.External.Force),
		Torque: quantity.Torque(e.cfg.External.Torque),
	}
	if ext != (dynamo.Moment{}) {
		acts = append(acts, control.NewConstant(ext))
	}
	if e.cfg.Gravity != 0 {
		acts = append(acts, control.Gravity(e.cfg.Body.Mass, e.cfg.Gravity))
	}
	if len(acts) == 1 {
		return ctrl
	}
	return acts
}

func (e *Experiment) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = e.cfg.Dt
	cfg.Duration = e.cfg.Duration
	cfg.Renormalize = e.cfg.Renormalize
	return cfg
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// InitialState returns a copy of the scenario's starting state.
func (e *Experiment) InitialState() *dynamo.State {
	if e.initial == nil {
		return nil
	}
	return e.initial.Clone()
}

// Controller is the registry controller, without the constant external
// moment, for live tuning through control.Configurable.
func (e *Experiment) Controller() control.Actuator { return e.controller }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
