package dynamo

// Builder assembles an initial State. Mass is required; the pose defaults to
// the identity, momentum to zero and the medium to StandardAir.
type Builder struct {
	mass      *InertiaMass
	transform Transform
	momentum  Momentum
	velocity  *Velocity
	panels    []Panel
	medium    Medium
}

func NewBuilder() *Builder {
	return &Builder{
		transform: IdentityTransform(),
		medium:    StandardAir,
	}
}

func (b *Builder) Mass(m InertiaMass) *Builder {
	b.mass = &m
	return b
}

func (b *Builder) Transform(t Transform) *Builder {
	b.transform = t
	return b
}

// Momentum sets the initial momentum and clears any velocity set earlier.
func (b *Builder) Momentum(p Momentum) *Builder {
	b.momentum = p
	b.velocity = nil
	return b
}

// Velocity sets the initial velocity. It is converted to momentum at Build
// time using the final mass and pose.
func (b *Builder) Velocity(v Velocity) *Builder {
	b.velocity = &v
	return b
}

func (b *Builder) AddPanel(p Panel) *Builder {
	b.panels = append(b.panels, p)
	return b
}

func (b *Builder) AddPanels(ps ...Panel) *Builder {
	b.panels = append(b.panels, ps...)
	return b
}

// Panels replaces the panel list.
func (b *Builder) Panels(ps []Panel) *Builder {
	b.panels = append([]Panel(nil), ps...)
	return b
}

func (b *Builder) Medium(m Medium) *Builder {
	b.medium = m
	return b
}

func (b *Builder) Build() (*State, error) {
	if b.mass == nil {
		return nil, ErrMissingMass
	}
	mass, err := NewInertiaMass(b.mass.Mass, b.mass.Inertia)
	if err != nil {
		return nil, err
	}
	for _, p := range b.panels {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	s := &State{
		Mass:      mass,
		Transform: b.transform,
		Momentum:  b.momentum,
		Panels:    append([]Panel(nil), b.panels...),
		Medium:    b.medium,
	}
	if b.velocity != nil {
		s.Momentum = MomentumOf(s.Mass, s.Transform, *b.velocity)
	}
	if !s.IsValid() {
		return nil, ErrInvalidState
	}
	return s, nil
}
