package progress

import (
	"math"
	"time"

	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/metrics"
	"github.com/san-kum/springbar/internal/physics"
	"github.com/san-kum/springbar/internal/viz"
)

// DefaultStep is the increment used by Incr and Decr.
const DefaultStep = 0.25

// boundarySnap absorbs float rounding in summed steps, so ten steps of 0.1
// land exactly on 1.
const boundarySnap = 1e-9

// Bar animates a displayed value toward a target progress.
type Bar struct {
	spring   *physics.Spring
	renderer *viz.Renderer
	state    State

	onComplete func()
	frames     *metrics.Frames
	observers  metrics.Set

	step  float64
	timer timer
	tag   uint64
	clock float64
}

type timer struct {
	enabled  bool
	step     float64
	interval float64
	elapsed  float64
}

// Option configures a Bar at construction.
type Option func(*Bar) error

// WithSpring sets the spring frequency in Hz and the damping ratio.
func WithSpring(frequency, damping float64) Option {
	return func(b *Bar) error {
		return b.spring.Configure(frequency, damping)
	}
}

func WithMethod(m physics.Method) Option {
	return func(b *Bar) error {
		b.spring.Method = m
		return nil
	}
}

// WithEpsilon sets the equilibrium threshold for position error and
// velocity.
func WithEpsilon(eps float64) Option {
	return func(b *Bar) error {
		if !dynamo.IsFinite(eps) || eps <= 0 {
			return dynamo.InvalidArgument("progress.WithEpsilon", "epsilon", eps, "must be > 0")
		}
		b.spring.Epsilon = eps
		return nil
	}
}

// WithStep sets the default delta for Incr and Decr.
func WithStep(step float64) Option {
	return func(b *Bar) error {
		if !dynamo.IsFinite(step) || step <= 0 {
			return dynamo.InvalidArgument("progress.WithStep", "step", step, "must be > 0")
		}
		b.step = step
		return nil
	}
}

// WithTimer raises the target by step every interval seconds of ticked
// time until it reaches 1.
func WithTimer(step, interval float64) Option {
	return func(b *Bar) error {
		if !dynamo.IsFinite(step) || step <= 0 {
			return dynamo.InvalidArgument("progress.WithTimer", "step", step, "must be > 0")
		}
		if !dynamo.IsFinite(interval) || interval <= 0 {
			return dynamo.InvalidArgument("progress.WithTimer", "interval", interval, "must be > 0")
		}
		b.timer = timer{enabled: true, step: step, interval: interval}
		return nil
	}
}

// OnComplete registers fn to run each time the bar enters Completed.
func OnComplete(fn func()) Option {
	return func(b *Bar) error {
		b.onComplete = fn
		return nil
	}
}

// WithMetrics attaches a render timing accumulator.
func WithMetrics() Option {
	return func(b *Bar) error {
		b.frames = metrics.NewFrames()
		return nil
	}
}

// WithObserver feeds every animated tick to m.
func WithObserver(m metrics.Metric) Option {
	return func(b *Bar) error {
		b.observers = append(b.observers, m)
		return nil
	}
}

// New creates an idle bar at 0 using a copy of style.
func New(style viz.Style, opts ...Option) (*Bar, error) {
	renderer, err := viz.NewRenderer(style)
	if err != nil {
		return nil, err
	}
	spring, err := physics.NewSpring(physics.DefaultFrequency, physics.DefaultDamping)
	if err != nil {
		return nil, err
	}

	b := &Bar{
		spring:   spring,
		renderer: renderer,
		step:     DefaultStep,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Bar) State() State        { return b.state }
func (b *Bar) Position() float64   { return b.spring.Position() }
func (b *Bar) Velocity() float64   { return b.spring.Velocity() }
func (b *Bar) Target() float64     { return b.spring.Target() }
func (b *Bar) Frequency() float64  { return b.spring.Frequency() }
func (b *Bar) Damping() float64    { return b.spring.Damping() }
func (b *Bar) Style() viz.Style    { return b.renderer.Style() }
func (b *Bar) Tag() uint64         { return b.tag }
func (b *Bar) Elapsed() float64    { return b.clock }
func (b *Bar) IsAnimating() bool   { return b.state == Animating }
func (b *Bar) IsComplete() bool    { return b.state == Completed }
func (b *Bar) IsCancelled() bool   { return b.state == Cancelled }
func (b *Bar) AtEquilibrium() bool { return b.spring.AtEquilibrium() }

// Update sets the target. Values outside [0, 1] are clamped. It does
// nothing once the bar is cancelled.
func (b *Bar) Update(v float64) {
	if b.state == Cancelled {
		return
	}
	b.retarget(v)
}

// UpdateFromFrame applies v only when tag matches the current frame tag.
// A mismatch means the value was computed before a newer target change.
func (b *Bar) UpdateFromFrame(v float64, tag uint64) bool {
	if b.state == Cancelled || tag != b.tag {
		return false
	}
	b.retarget(v)
	return true
}

func (b *Bar) Incr()            { b.IncrBy(b.step) }
func (b *Bar) Decr()            { b.DecrBy(b.step) }
func (b *Bar) IncrBy(d float64) { b.Update(b.spring.Target() + d) }
func (b *Bar) DecrBy(d float64) { b.Update(b.spring.Target() - d) }

func (b *Bar) retarget(v float64) {
	b.spring.SetTarget(snapBoundary(v))
	b.tag++

	switch b.state {
	case Animating:
	case Completed:
		if b.spring.Target() < 1 || !b.spring.AtEquilibrium() {
			b.state = Animating
		}
	default:
		if !b.spring.AtEquilibrium() {
			b.state = Animating
			b.observe()
			return
		}
		b.spring.Settle()
		if b.spring.Target() >= 1 {
			b.complete()
		}
	}
}

func snapBoundary(v float64) float64 {
	switch {
	case math.Abs(v-1) < boundarySnap:
		return 1
	case math.Abs(v) < boundarySnap:
		return 0
	}
	return v
}

func (b *Bar) complete() {
	b.state = Completed
	if b.onComplete != nil {
		b.onComplete()
	}
}

func (b *Bar) observe() {
	b.observers.Observe(metrics.Sample{
		Position: b.spring.Position(),
		Velocity: b.spring.Velocity(),
		Target:   b.spring.Target(),
		T:        b.clock,
	})
}

// Tick advances the bar by dt seconds. dt must be finite and >= 0; the
// check happens before anything else, including on cancelled bars.
func (b *Bar) Tick(dt float64) error {
	if err := dynamo.CheckDt("progress.Tick", dt); err != nil {
		return err
	}
	if b.state == Cancelled {
		return nil
	}

	b.advanceTimer(dt)
	if b.state != Animating {
		return nil
	}

	if err := b.spring.Step(dt); err != nil {
		return err
	}
	b.clock += dt
	b.observe()

	if !b.spring.AtEquilibrium() {
		return nil
	}
	b.spring.Settle()
	if b.spring.Target() < 1 {
		b.state = Idle
		return nil
	}
	b.complete()
	return nil
}

func (b *Bar) advanceTimer(dt float64) {
	t := &b.timer
	if !t.enabled || b.spring.Target() >= 1 {
		return
	}
	t.elapsed += dt
	for t.elapsed >= t.interval && b.spring.Target() < 1 {
		t.elapsed -= t.interval
		b.retarget(b.spring.Target() + t.step)
	}
}

// Cancel freezes the bar. Position and velocity stay as they are.
func (b *Bar) Cancel() {
	b.state = Cancelled
}

// Reset puts the bar back at 0 in Idle. Cancelled bars stay cancelled.
func (b *Bar) Reset() {
	if b.state == Cancelled {
		return
	}
	b.spring.Reset(0)
	b.timer.elapsed = 0
	b.clock = 0
	b.tag++
	b.state = Idle
	b.observers.Reset()
}

// SetSpring replaces frequency and damping mid-flight.
func (b *Bar) SetSpring(frequency, damping float64) error {
	if b.state == Cancelled {
		return nil
	}
	return b.spring.Configure(frequency, damping)
}

// Render draws the displayed position. It never changes the simulation.
func (b *Bar) Render() viz.Line {
	if b.frames == nil {
		return b.renderer.Render(b.spring.Position())
	}
	start := time.Now()
	line := b.renderer.Render(b.spring.Position())
	b.frames.Record(time.Since(start))
	return line
}

func (b *Bar) EnableMetrics() {
	if b.frames == nil {
		b.frames = metrics.NewFrames()
	}
}

func (b *Bar) DisableMetrics() {
	b.frames = nil
}

// Metrics returns the render timing accumulator, or nil when disabled.
func (b *Bar) Metrics() *metrics.Frames {
	return b.frames
}
