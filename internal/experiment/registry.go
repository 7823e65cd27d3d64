package experiment

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/control"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/metrics"
	"github.com/san-kum/sixdof/internal/sim"
)

// StabilityThreshold is the angular speed in rad/s under which a sample
// counts as settled.
const StabilityThreshold = 0.1

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	controllers map[string]func(map[string]float64) control.Actuator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		controllers: make(map[string]func(map[string]float64) control.Actuator),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return dynamo.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return dynamo.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return dynamo.NewRK45() }

	r.controllers["none"] = func(params map[string]float64) control.Actuator {
		return control.NewNone()
	}
	r.controllers["pid"] = func(params map[string]float64) control.Actuator {
		pid := control.NewPID(params["kp"], params["ki"], params["kd"], target(params))
		pid.Limit = params["limit"]
		return pid
	}
	r.controllers["lqr"] = func(params map[string]float64) control.Actuator {
		k := params["kp"]
		return control.NewLQR(mgl64.Diag3(mgl64.Vec3{k, k, k}), target(params))
	}
	r.controllers["manual"] = func(params map[string]float64) control.Actuator {
		return control.NewManual(params["decay"])
	}

	return r
}

func target(params map[string]float64) mgl64.Vec3 {
	return mgl64.Vec3{params["target_x"], params["target_y"], params["target_z"]}
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetController(name string, params map[string]float64) (control.Actuator, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }
func (r *Registry) ListControllers() []string { return sortedKeys(r.controllers) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh set of the standard run metrics.
func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewNormDrift(),
		metrics.NewControlEffort(),
		metrics.NewStability(StabilityThreshold),
	}
}
