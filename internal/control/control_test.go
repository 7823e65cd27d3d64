package control

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
)

// spinning is a unit-inertia body rotating at (0, 0, 2) rad/s.
func spinning(t *testing.T) *dynamo.State {
	t.Helper()
	s, err := dynamo.NewBuilder().
		Mass(dynamo.MustInertiaMass(1, mgl64.Ident3())).
		Momentum(dynamo.Momentum{Angular: quantity.AngMom{0, 0, 2}}).
		Medium(dynamo.Vacuum).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNone(t *testing.T) {
	if m := NewNone().Moment(spinning(t), 0); m != (dynamo.Moment{}) {
		t.Errorf("None produced %+v", m)
	}
}

func TestConstant(t *testing.T) {
	g := Gravity(2, 9.81)
	m := g.Moment(spinning(t), 3)
	if m.Force != (quantity.Force{0, 0, -19.62}) || m.Torque != (quantity.Torque{}) {
		t.Errorf("Gravity moment = %+v", m)
	}
}

func TestManual(t *testing.T) {
	c := NewManual(0)
	s := spinning(t)
	kick := dynamo.Moment{Torque: quantity.Torque{1, 0, 0}}

	c.Add(kick)
	c.Add(kick)
	if m := c.Moment(s, 0); m.Torque != (quantity.Torque{2, 0, 0}) {
		t.Errorf("first call = %+v, want accumulated kicks", m)
	}
	if m := c.Moment(s, 0.01); m != (dynamo.Moment{}) {
		t.Errorf("second call = %+v, want zero after one-shot decay", m)
	}

	hold := NewManual(1)
	hold.Set(kick)
	for i := 0; i < 3; i++ {
		if m := hold.Moment(s, 0); m != kick {
			t.Errorf("call %d = %+v, want held moment", i, m)
		}
	}
	hold.Reset()
	if m := hold.Moment(s, 0); m != (dynamo.Moment{}) {
		t.Errorf("after Reset = %+v", m)
	}
}

func TestPIDOpposesRateError(t *testing.T) {
	ctrl := NewPID(10.0, 0.1, 5.0, mgl64.Vec3{})
	m := ctrl.Moment(spinning(t), 0)
	if m.Torque[2] >= 0 {
		t.Errorf("torque z = %v, want negative for positive spin", m.Torque[2])
	}
	if m.Force != (quantity.Force{}) {
		t.Errorf("PID should not apply force, got %v", m.Force)
	}
}

func TestPIDLimit(t *testing.T) {
	ctrl := NewPID(100, 0, 0, mgl64.Vec3{})
	ctrl.Limit = 0.5
	m := ctrl.Moment(spinning(t), 0)
	if got := m.Torque.Len(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("|torque| = %v, want clamp at 0.5", got)
	}
}

func TestPIDSpinsUpToTarget(t *testing.T) {
	s := spinning(t)
	target := mgl64.Vec3{0, 0, 5}
	ctrl := NewPID(4, 0.05, 0, target)

	dt := 0.01
	for i := 0; i < 1000; i++ {
		tm := float64(i) * dt
		if err := s.Step(dt, ctrl.Moment(s, tm)); err != nil {
			t.Fatal(err)
		}
	}

	w := s.Velocity().Angular.Vec3()
	if w.Sub(target).Len() > 0.05 {
		t.Errorf("ω = %v, want close to %v", w, target)
	}
}

func TestPIDParams(t *testing.T) {
	ctrl := NewPID(1, 2, 3, mgl64.Vec3{})
	if err := ctrl.SetParam("TargetZ", 4); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.SetParam("Kp", 7); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}

	params := ctrl.GetParams()
	if params["Kp"] != 7 || params["TargetZ"] != 4 || params["Kd"] != 3 {
		t.Errorf("params = %v", params)
	}

	ctrl.Moment(spinning(t), 0)
	ctrl.Reset()
	if !ctrl.first || ctrl.integral != (mgl64.Vec3{}) {
		t.Error("Reset did not clear controller memory")
	}
}

func TestLQR(t *testing.T) {
	ctrl := NewRateDamper(3)
	s := spinning(t)

	m := ctrl.Moment(s, 0)
	if math.Abs(m.Torque[2]+6) > 1e-12 {
		t.Errorf("torque = %v, want (0,0,-6)", m.Torque)
	}

	ctrl.Target = mgl64.Vec3{0, 0, 2}
	if m := ctrl.Moment(s, 0); m.Torque.Len() > 1e-12 {
		t.Errorf("expected zero torque at target, got %v", m.Torque)
	}

	if err := ctrl.SetParam("Kzz", 1); err != nil {
		t.Fatal(err)
	}
	if got := ctrl.GetParams()["Kzz"]; got != 1 {
		t.Errorf("Kzz = %v, want 1", got)
	}
}

func TestSum(t *testing.T) {
	s := spinning(t)
	kick := NewManual(0)
	kick.Add(dynamo.Moment{Torque: quantity.Torque{1, 0, 0}})
	sum := Sum{Gravity(1, 10), kick, NewNone()}

	m := sum.Moment(s, 0)
	if m.Force != (quantity.Force{0, 0, -10}) || m.Torque != (quantity.Torque{1, 0, 0}) {
		t.Errorf("Sum moment = %+v", m)
	}

	kick.Add(dynamo.Moment{Torque: quantity.Torque{0, 1, 0}})
	sum.Reset()
	if m := sum.Moment(s, 0.01); m.Torque != (quantity.Torque{}) {
		t.Errorf("torque after Reset = %v, want zero", m.Torque)
	}
	if m := (Sum{}).Moment(s, 0); m != (dynamo.Moment{}) {
		t.Errorf("empty Sum = %+v", m)
	}
}

func TestActuatorsSatisfyInterfaces(t *testing.T) {
	var _ Actuator = NewNone()
	var _ Actuator = NewConstant(dynamo.Moment{})
	var _ Actuator = NewManual(0)
	var _ Actuator = NewPID(0, 0, 0, mgl64.Vec3{})
	var _ Actuator = NewRateDamper(1)
	var _ Configurable = NewPID(0, 0, 0, mgl64.Vec3{})
	var _ Configurable = NewRateDamper(1)
	var _ Resetter = NewPID(0, 0, 0, mgl64.Vec3{})
	var _ Resetter = NewManual(0)
	var _ Resetter = Sum{}
}
