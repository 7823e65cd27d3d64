package dynamo

import "errors"

// Domain errors for the kinetic core.
var (
	// ErrNonPositiveMass indicates a mass that is zero, negative or not finite.
	ErrNonPositiveMass = errors.New("dynamo: mass must be positive and finite")

	// ErrSingularInertia indicates an inertia tensor that cannot be inverted.
	ErrSingularInertia = errors.New("dynamo: singular inertia tensor")

	// ErrNegativeTimestep indicates a step was requested with dt < 0.
	ErrNegativeTimestep = errors.New("dynamo: timestep must be non-negative")

	// ErrMissingMass indicates a Builder was asked to build without a mass.
	ErrMissingMass = errors.New("dynamo: builder requires a mass")

	// ErrInvalidState indicates a state holding NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidPanel indicates a panel with a negative or non-finite area.
	ErrInvalidPanel = errors.New("dynamo: invalid panel")
)
