package store

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/sixdof/internal/dynamo"
)

// EncodeState serializes the persisted fields of s. Floats are written in
// shortest round-trip form, so DecodeState restores them bit for bit.
func EncodeState(s *dynamo.State) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeState parses a state written by EncodeState. The inverse inertia is
// recomputed from the tensor rather than trusted, and the result is
// validated like a freshly built state. A missing medium means StandardAir.
func DecodeState(data []byte) (*dynamo.State, error) {
	s := dynamo.State{Medium: dynamo.StandardAir}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	mass, err := dynamo.NewInertiaMass(s.Mass.Mass, s.Mass.Inertia)
	if err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	st, err := dynamo.NewBuilder().
		Mass(mass).
		Transform(s.Transform).
		Momentum(s.Momentum).
		Panels(s.Panels).
		Medium(s.Medium).
		Build()
	if err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}
