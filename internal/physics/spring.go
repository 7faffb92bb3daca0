package physics

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/springbar/internal/dynamo"
)

const (
	DefaultFrequency = 18.0
	DefaultDamping   = 1.0
	DefaultEpsilon   = 1e-3
)

// Method selects how a Spring advances.
type Method int

const (
	// Analytic uses the closed-form damped oscillator update.
	Analytic Method = iota
	// RK4 integrates numerically in fixed sub-steps.
	RK4
)

func (m Method) String() string {
	switch m {
	case Analytic:
		return "analytic"
	case RK4:
		return "rk4"
	default:
		return "unknown"
	}
}

// ParseMethod maps a config name to a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "", "analytic":
		return Analytic, nil
	case "rk4":
		return RK4, nil
	default:
		return Analytic, dynamo.InvalidArgument("physics.ParseMethod", "method", name, "want analytic or rk4")
	}
}

// Spring drives a position toward a target. Position and target always lie
// in [0, 1].
type Spring struct {
	position  float64
	velocity  float64
	target    float64
	frequency float64
	damping   float64

	Epsilon float64
	Method  Method
}

// NewSpring creates a spring at rest at 0.
func NewSpring(frequency, damping float64) (*Spring, error) {
	if err := checkParams("physics.NewSpring", frequency, damping); err != nil {
		return nil, err
	}
	return &Spring{
		frequency: frequency,
		damping:   damping,
		Epsilon:   DefaultEpsilon,
	}, nil
}

func checkParams(op string, frequency, damping float64) error {
	if !dynamo.IsFinite(frequency) || frequency <= 0 {
		return dynamo.InvalidArgument(op, "frequency", frequency, "must be > 0")
	}
	if !dynamo.IsFinite(damping) || damping < 0 {
		return dynamo.InvalidArgument(op, "damping", damping, "must be >= 0")
	}
	return nil
}

func (s *Spring) Position() float64  { return s.position }
func (s *Spring) Velocity() float64  { return s.velocity }
func (s *Spring) Target() float64    { return s.target }
func (s *Spring) Frequency() float64 { return s.frequency }
func (s *Spring) Damping() float64   { return s.damping }

// AngularFrequency returns ω = 2π·frequency.
func (s *Spring) AngularFrequency() float64 {
	return 2 * math.Pi * s.frequency
}

// Configure replaces frequency and damping without touching position or
// velocity.
func (s *Spring) Configure(frequency, damping float64) error {
	if err := checkParams("physics.Configure", frequency, damping); err != nil {
		return err
	}
	s.frequency = frequency
	s.damping = damping
	return nil
}

// SetTarget moves the equilibrium point. Out of range values are clamped.
func (s *Spring) SetTarget(target float64) {
	s.target = dynamo.Clamp01(target)
}

// Reset puts the spring at rest at position, with target equal to position.
func (s *Spring) Reset(position float64) {
	s.position = dynamo.Clamp01(position)
	s.target = s.position
	s.velocity = 0
}

// SetState overwrites the full kinematic state, as when restoring a snapshot.
// Velocity is kept as given.
func (s *Spring) SetState(position, velocity, target float64) error {
	if !dynamo.IsFinite(position, velocity, target) {
		return dynamo.InvalidArgument("physics.SetState", "state", []float64{position, velocity, target}, "must be finite")
	}
	s.position = dynamo.Clamp01(position)
	s.velocity = velocity
	s.target = dynamo.Clamp01(target)
	return nil
}

// Advance computes the state dt seconds ahead without applying it.
func (s *Spring) Advance(dt float64) (float64, float64, error) {
	if err := dynamo.CheckDt("physics.Advance", dt); err != nil {
		return s.position, s.velocity, err
	}
	if dt == 0 {
		return s.position, s.velocity, nil
	}

	var pos, vel float64
	switch s.Method {
	case RK4:
		pos, vel = s.integrate(dt)
	default:
		coeffs := harmonica.NewSpring(dt, s.AngularFrequency(), s.damping)
		pos, vel = coeffs.Update(s.position, s.velocity, s.target)
	}
	if !dynamo.IsFinite(pos, vel) {
		return s.position, s.velocity, dynamo.InvalidArgument("physics.Advance", "state", []float64{pos, vel}, "diverged")
	}

	return dynamo.Clamp01(pos), vel, nil
}

// Step advances the spring by dt in place.
func (s *Spring) Step(dt float64) error {
	pos, vel, err := s.Advance(dt)
	if err != nil {
		return err
	}
	s.position, s.velocity = pos, vel
	return nil
}

// AtEquilibrium reports whether both the position error and the velocity are
// below Epsilon.
func (s *Spring) AtEquilibrium() bool {
	eps := s.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return math.Abs(s.target-s.position) < eps && math.Abs(s.velocity) < eps
}

// Settle snaps the position onto the target and stops motion.
func (s *Spring) Settle() {
	s.position = s.target
	s.velocity = 0
}
