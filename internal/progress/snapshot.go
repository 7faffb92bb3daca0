package progress

import (
	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/viz"
)

// Snapshot is the minimal numeric state needed to rebuild a Bar.
type Snapshot struct {
	Position  float64 `json:"position" yaml:"position"`
	Velocity  float64 `json:"velocity" yaml:"velocity"`
	Target    float64 `json:"target" yaml:"target"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Damping   float64 `json:"damping" yaml:"damping"`
	State     State   `json:"state" yaml:"state"`
}

// Save captures b.
func Save(b *Bar) Snapshot {
	return Snapshot{
		Position:  b.spring.Position(),
		Velocity:  b.spring.Velocity(),
		Target:    b.spring.Target(),
		Frequency: b.spring.Frequency(),
		Damping:   b.spring.Damping(),
		State:     b.state,
	}
}

// Validate rejects snapshots no Bar could have produced.
func (s Snapshot) Validate() error {
	const op = "progress.Snapshot"
	if !dynamo.IsFinite(s.Position, s.Velocity, s.Target) {
		return dynamo.InvalidArgument(op, "kinematics", []float64{s.Position, s.Velocity, s.Target}, "must be finite")
	}
	if !dynamo.IsFinite(s.Frequency) || s.Frequency <= 0 {
		return dynamo.InvalidArgument(op, "frequency", s.Frequency, "must be > 0")
	}
	if !dynamo.IsFinite(s.Damping) || s.Damping < 0 {
		return dynamo.InvalidArgument(op, "damping", s.Damping, "must be >= 0")
	}
	if !s.State.valid() {
		return dynamo.InvalidArgument(op, "state", int(s.State), "unknown state")
	}
	return nil
}

// Restore rebuilds a bar from s, drawn with style. Options apply first and
// the snapshot's spring parameters win over WithSpring. A restored
// Completed bar does not run its OnComplete callback. An Idle or Completed
// snapshot that is not at equilibrium restores as Animating so Tick can
// finish the motion.
func Restore(s Snapshot, style viz.Style, opts ...Option) (*Bar, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b, err := New(style, opts...)
	if err != nil {
		return nil, err
	}
	if err := b.spring.Configure(s.Frequency, s.Damping); err != nil {
		return nil, err
	}
	if err := b.spring.SetState(s.Position, s.Velocity, s.Target); err != nil {
		return nil, err
	}
	b.state = s.State
	if (b.state == Idle || b.state == Completed) && !b.spring.AtEquilibrium() {
		b.state = Animating
	}
	return b, nil
}

// NamedSnapshot is one member of a saved group.
type NamedSnapshot struct {
	Name     string `json:"name" yaml:"name"`
	Snapshot `yaml:",inline"`
}

// GroupSnapshot keeps group members in insertion order.
type GroupSnapshot struct {
	Bars []NamedSnapshot `json:"bars" yaml:"bars"`
}
