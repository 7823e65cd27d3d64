package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultMass     = 1.0
	DefaultHeight   = 1.0
	DefaultRadius   = 1.0
	DefaultKp       = 2.0
	DefaultKi       = 0.1
	DefaultKd       = 0.0
)

// Inertia shapes understood by InertiaConfig.
const (
	ShapeCylinderX = "cylinder_x"
	ShapeCylinderY = "cylinder_y"
	ShapeCylinderZ = "cylinder_z"
	ShapeSphere    = "sphere"
	ShapeBox       = "box"
	ShapeMatrix    = "matrix"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid scenario")

type Vec3 [3]float64

func (v Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3(v) }

// Config is a scenario file: one rigid body, its initial motion, the fluid it
// moves through and how it is driven.
type Config struct {
	Name             string           `yaml:"name,omitempty"`
	Integrator       string           `yaml:"integrator"`
	Controller       string           `yaml:"controller"`
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	Renormalize      bool             `yaml:"renormalize"`
	Body             BodyConfig       `yaml:"body"`
	Transform        TransformConfig  `yaml:"transform"`
	Momentum         *MotionConfig    `yaml:"momentum,omitempty"`
	Velocity         *MotionConfig    `yaml:"velocity,omitempty"`
	Panels           []PanelConfig    `yaml:"panels,omitempty"`
	BoxPanels        *Vec3            `yaml:"box_panels,omitempty,flow"`
	Medium           *MediumConfig    `yaml:"medium,omitempty"`
	Gravity          float64          `yaml:"gravity,omitempty"`
	External         ExternalConfig   `yaml:"external"`
	ControllerParams ControllerConfig `yaml:"controller_params"`
}

type BodyConfig struct {
	Mass    float64       `yaml:"mass"`
	Inertia InertiaConfig `yaml:"inertia"`
}

// InertiaConfig selects a closed-form shape or an explicit row-major matrix.
type InertiaConfig struct {
	Shape  string    `yaml:"shape"`
	Height float64   `yaml:"height,omitempty"`
	Radius float64   `yaml:"radius,omitempty"`
	Size   Vec3      `yaml:"size,omitempty,flow"`
	Matrix []float64 `yaml:"matrix,omitempty,flow"`
}

type TransformConfig struct {
	Translation Vec3    `yaml:"translation,flow"`
	Axis        Vec3    `yaml:"axis,flow"`
	Angle       float64 `yaml:"angle"`
}

type MotionConfig struct {
	Linear  Vec3 `yaml:"linear,flow"`
	Angular Vec3 `yaml:"angular,flow"`
}

type PanelConfig struct {
	Offset Vec3    `yaml:"offset,flow"`
	Normal Vec3    `yaml:"normal,flow"`
	Area   float64 `yaml:"area"`
}

type MediumConfig struct {
	Density  float64 `yaml:"density"`
	HalfDrag float64 `yaml:"half_drag"`
}

type ExternalConfig struct {
	Force  Vec3 `yaml:"force,flow"`
	Torque Vec3 `yaml:"torque,flow"`
}

type ControllerConfig struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target Vec3    `yaml:"target,flow"`
	Limit  float64 `yaml:"limit,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator:  "rk4",
		Controller:  "none",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Renormalize: true,
		Body: BodyConfig{
			Mass: DefaultMass,
			Inertia: InertiaConfig{
				Shape:  ShapeCylinderZ,
				Height: DefaultHeight,
				Radius: DefaultRadius,
			},
		},
		ControllerParams: ControllerConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scenario over DefaultConfig and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be modified safely.
func (c *Config) Clone() *Config {
	out := *c
	if c.Momentum != nil {
		m := *c.Momentum
		out.Momentum = &m
	}
	if c.Velocity != nil {
		v := *c.Velocity
		out.Velocity = &v
	}
	if c.BoxPanels != nil {
		b := *c.BoxPanels
		out.BoxPanels = &b
	}
	if c.Medium != nil {
		m := *c.Medium
		out.Medium = &m
	}
	out.Panels = append([]PanelConfig(nil), c.Panels...)
	out.Body.Inertia.Matrix = append([]float64(nil), c.Body.Inertia.Matrix...)
	return &out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return invalid("dt must be positive, got %f", c.Dt)
	}
	if !(c.Duration > 0) {
		return invalid("duration must be positive, got %f", c.Duration)
	}
	if !(c.Body.Mass > 0) || math.IsInf(c.Body.Mass, 0) {
		return invalid("body mass must be positive, got %f", c.Body.Mass)
	}
	if c.Momentum != nil && c.Velocity != nil {
		return invalid("set either momentum or velocity, not both")
	}
	switch c.Body.Inertia.Shape {
	case ShapeCylinderX, ShapeCylinderY, ShapeCylinderZ:
		if c.Body.Inertia.Radius <= 0 || c.Body.Inertia.Height < 0 {
			return invalid("cylinder needs positive radius and non-negative height")
		}
	case ShapeSphere:
		if c.Body.Inertia.Radius <= 0 {
			return invalid("sphere needs a positive radius")
		}
	case ShapeBox:
		if c.Body.Inertia.Size == (Vec3{}) {
			return invalid("box needs a size")
		}
	case ShapeMatrix:
		if len(c.Body.Inertia.Matrix) != 9 {
			return invalid("inertia matrix needs 9 values, got %d", len(c.Body.Inertia.Matrix))
		}
	default:
		return invalid("unknown inertia shape %q", c.Body.Inertia.Shape)
	}
	for i, p := range c.Panels {
		if p.Area < 0 {
			return invalid("panel %d has negative area", i)
		}
		if p.Normal == (Vec3{}) {
			return invalid("panel %d has no normal", i)
		}
	}
	if c.Medium != nil && (c.Medium.Density < 0 || c.Medium.HalfDrag < 0) {
		return invalid("medium density and drag must be non-negative")
	}
	return nil
}

// InertiaMass builds the body's mass distribution.
func (c *Config) InertiaMass() (dynamo.InertiaMass, error) {
	in := c.Body.Inertia
	m := c.Body.Mass
	switch in.Shape {
	case ShapeCylinderX:
		return dynamo.CylinderX(in.Height, in.Radius, m)
	case ShapeCylinderY:
		return dynamo.CylinderY(in.Height, in.Radius, m)
	case ShapeCylinderZ:
		return dynamo.CylinderZ(in.Height, in.Radius, m)
	case ShapeSphere:
		return dynamo.SolidSphere(in.Radius, m)
	case ShapeBox:
		return dynamo.SolidBox(in.Size[0], in.Size[1], in.Size[2], m)
	case ShapeMatrix:
		if len(in.Matrix) != 9 {
			return dynamo.InertiaMass{}, invalid("inertia matrix needs 9 values, got %d", len(in.Matrix))
		}
		return dynamo.NewInertiaMass(m, mgl64.Mat3FromRows(
			mgl64.Vec3{in.Matrix[0], in.Matrix[1], in.Matrix[2]},
			mgl64.Vec3{in.Matrix[3], in.Matrix[4], in.Matrix[5]},
			mgl64.Vec3{in.Matrix[6], in.Matrix[7], in.Matrix[8]},
		))
	}
	return dynamo.InertiaMass{}, invalid("unknown inertia shape %q", in.Shape)
}

// FluidMedium is the configured fluid, StandardAir when unset.
func (c *Config) FluidMedium() dynamo.Medium {
	if c.Medium == nil {
		return dynamo.StandardAir
	}
	return dynamo.Medium{Density: c.Medium.Density, HalfDrag: c.Medium.HalfDrag}
}

// BuildState assembles the initial State described by the scenario.
func (c *Config) BuildState() (*dynamo.State, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mass, err := c.InertiaMass()
	if err != nil {
		return nil, fmt.Errorf("body inertia: %w", err)
	}

	b := dynamo.NewBuilder().
		Mass(mass).
		Medium(c.FluidMedium()).
		Transform(dynamo.Transform{
			Translation: quantity.Translation(c.Transform.Translation),
			Rotation:    quantity.FromAxisAngle(c.Transform.Axis.mgl(), c.Transform.Angle),
		})

	switch {
	case c.Momentum != nil:
		b.Momentum(dynamo.Momentum{
			Linear:  quantity.LinMom(c.Momentum.Linear),
			Angular: quantity.AngMom(c.Momentum.Angular),
		})
	case c.Velocity != nil:
		b.Velocity(dynamo.Velocity{
			Linear:  quantity.LinVel(c.Velocity.Linear),
			Angular: quantity.AngVel(c.Velocity.Angular),
		})
	}

	if c.BoxPanels != nil {
		b.AddPanels(dynamo.BoxPanels(c.BoxPanels[0], c.BoxPanels[1], c.BoxPanels[2])...)
	}
	for _, p := range c.Panels {
		b.AddPanel(dynamo.NewPanel(p.Offset.mgl(), quantity.NormalizeOrZero(p.Normal.mgl()), p.Area))
	}

	return b.Build()
}

// ExternalMoment is the constant moment from the external block plus
// gravity along -z.
func (c *Config) ExternalMoment() dynamo.Moment {
	m := dynamo.Moment{
		Force:  quantity.Force(c.External.Force),
		Torque: quantity.Torque(c.External.Torque),
	}
	if c.Gravity != 0 {
		m.Force[2] -= c.Body.Mass * c.Gravity
	}
	return m
}

func (c *Config) GetControllerParams() map[string]float64 {
	return map[string]float64{
		"kp":       c.ControllerParams.Kp,
		"ki":       c.ControllerParams.Ki,
		"kd":       c.ControllerParams.Kd,
		"target_x": c.ControllerParams.Target[0],
		"target_y": c.ControllerParams.Target[1],
		"target_z": c.ControllerParams.Target[2],
		"limit":    c.ControllerParams.Limit,
	}
}
