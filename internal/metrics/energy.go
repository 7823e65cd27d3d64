package metrics

import "github.com/san-kum/sixdof/internal/dynamo"

// KineticEnergy is the mean kinetic energy over the run, in joules.
type KineticEnergy struct{ avg average }

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (*KineticEnergy) Name() string { return "kinetic_energy" }

func (e *KineticEnergy) Observe(s *dynamo.State, _ dynamo.Moment, _ float64) {
	e.avg.add(s.KineticEnergy())
}

func (e *KineticEnergy) Value() float64 { return e.avg.value(0) }
func (e *KineticEnergy) Reset()         { e.avg = average{} }

// EnergyDrift is the largest relative change of kinetic energy from the
// first observed sample. Torque-free runs measure integrator error with it.
type EnergyDrift struct{ d drift }

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (*EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *dynamo.State, _ dynamo.Moment, _ float64) {
	e.d.add(s.KineticEnergy())
}

func (e *EnergyDrift) Value() float64 { return e.d.worst }
func (e *EnergyDrift) Reset()         { e.d = drift{} }
