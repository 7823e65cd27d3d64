package config

import "sort"

// Presets are the built-in scenarios, keyed by name.
var Presets = map[string]*Config{
	// A flywheel with one vane, the drag-damped spin-down case.
	"spinner": {
		Name: "spinner", Integrator: "rk4", Controller: "none", Dt: 0.01, Duration: 20.0, Renormalize: true,
		Body:     BodyConfig{Mass: 2, Inertia: InertiaConfig{Shape: ShapeCylinderZ, Height: 0.2, Radius: 0.5}},
		Velocity: &MotionConfig{Angular: Vec3{0, 0, 10}},
		Panels:   []PanelConfig{{Offset: Vec3{0.5, 0, 0}, Normal: Vec3{0, 1, 0}, Area: 0.05}},
	},
	// The unit cylinder with a single panel on its rim.
	"vane": {
		Name: "vane", Integrator: "rk4", Controller: "none", Dt: 0.01, Duration: 10.0, Renormalize: true,
		Body:     BodyConfig{Mass: 1, Inertia: InertiaConfig{Shape: ShapeCylinderZ, Height: 1, Radius: 1}},
		Momentum: &MotionConfig{Angular: Vec3{0, 0, 0.5}},
		Panels:   []PanelConfig{{Offset: Vec3{1, 0, 0}, Normal: Vec3{0, 1, 0}, Area: 1}},
	},
	// Spin near the intermediate axis of a brick in vacuum flips periodically.
	"tumbler": {
		Name: "tumbler", Integrator: "rk4", Controller: "none", Dt: 0.001, Duration: 20.0, Renormalize: true,
		Body:     BodyConfig{Mass: 1, Inertia: InertiaConfig{Shape: ShapeBox, Size: Vec3{0.3, 0.2, 0.1}}},
		Velocity: &MotionConfig{Angular: Vec3{0.05, 4, 0.05}},
		Medium:   &MediumConfig{},
	},
	// A finned rod launched off-axis turns into the wind.
	"dart": {
		Name: "dart", Integrator: "rk4", Controller: "none", Dt: 0.001, Duration: 3.0, Renormalize: true,
		Body:      BodyConfig{Mass: 0.5, Inertia: InertiaConfig{Shape: ShapeCylinderX, Height: 1, Radius: 0.05}},
		Transform: TransformConfig{Axis: Vec3{0, 0, 1}, Angle: 0.3},
		Velocity:  &MotionConfig{Linear: Vec3{20, 0, 0}},
		Panels: []PanelConfig{
			{Offset: Vec3{-0.45, 0, 0}, Normal: Vec3{0, 1, 0}, Area: 0.01},
			{Offset: Vec3{-0.45, 0, 0}, Normal: Vec3{0, 0, 1}, Area: 0.01},
		},
		Gravity: 9.81,
	},
	// A thin square plate dropped flat reaches terminal velocity.
	"flatplate": {
		Name: "flatplate", Integrator: "rk4", Controller: "none", Dt: 0.005, Duration: 5.0, Renormalize: true,
		Body:      BodyConfig{Mass: 0.5, Inertia: InertiaConfig{Shape: ShapeBox, Size: Vec3{1, 1, 0.02}}},
		Transform: TransformConfig{Translation: Vec3{0, 0, 50}},
		BoxPanels: &Vec3{1, 1, 0.02},
		Gravity:   9.81,
	},
	// Ballistic drop in vacuum.
	"freefall": {
		Name: "freefall", Integrator: "rk4", Controller: "none", Dt: 0.01, Duration: 4.0, Renormalize: true,
		Body:      BodyConfig{Mass: 1, Inertia: InertiaConfig{Shape: ShapeSphere, Radius: 0.1}},
		Transform: TransformConfig{Translation: Vec3{0, 0, 100}},
		Medium:    &MediumConfig{},
		Gravity:   9.81,
	},
	// Rate controller stopping a tumbling box.
	"detumble": {
		Name: "detumble", Integrator: "rk4", Controller: "pid", Dt: 0.01, Duration: 15.0, Renormalize: true,
		Body:             BodyConfig{Mass: 4, Inertia: InertiaConfig{Shape: ShapeBox, Size: Vec3{0.4, 0.3, 0.2}}},
		Velocity:         &MotionConfig{Angular: Vec3{1.5, -0.7, 2}},
		Medium:           &MediumConfig{},
		ControllerParams: ControllerConfig{Kp: 0.5, Ki: 0.01, Limit: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
