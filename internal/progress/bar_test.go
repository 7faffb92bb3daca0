package progress

import (
	"math"
	"testing"

	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/metrics"
	"github.com/san-kum/springbar/internal/physics"
	"github.com/san-kum/springbar/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func testStyle(t *testing.T) viz.Style {
	t.Helper()
	s, err := viz.NewStyle(viz.WithWidth(20))
	require.NoError(t, err)
	return s
}

func newBar(t *testing.T, opts ...Option) *Bar {
	t.Helper()
	b, err := New(testStyle(t), opts...)
	require.NoError(t, err)
	return b
}

// tickUntil ticks b until it leaves Animating or max ticks pass.
func tickUntil(t *testing.T, b *Bar, max int) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		require.NoError(t, b.Tick(frame))
		if b.State() != Animating {
			return i
		}
	}
	return max + 1
}

func TestNew_Defaults(t *testing.T) {
	b := newBar(t)

	assert.Equal(t, Idle, b.State())
	assert.Zero(t, b.Position())
	assert.Zero(t, b.Target())
	assert.Equal(t, physics.DefaultFrequency, b.Frequency())
	assert.Equal(t, physics.DefaultDamping, b.Damping())
	assert.Nil(t, b.Metrics())
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero frequency", WithSpring(0, 1)},
		{"negative damping", WithSpring(18, -0.5)},
		{"zero step", WithStep(0)},
		{"negative epsilon", WithEpsilon(-1)},
		{"zero timer step", WithTimer(0, 1)},
		{"NaN timer interval", WithTimer(0.1, math.NaN())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testStyle(t), tt.opt)
			assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
		})
	}

	_, err := New(viz.Style{})
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestBar_CompletesOnce(t *testing.T) {
	calls := 0
	b := newBar(t, WithSpring(18, 1), OnComplete(func() { calls++ }))

	b.Update(1)
	require.Equal(t, Animating, b.State())

	ticks := tickUntil(t, b, 120)
	assert.Less(t, ticks, 120)
	assert.Equal(t, Completed, b.State())
	assert.Equal(t, 1.0, b.Position())
	assert.Equal(t, 1, calls)

	for i := 0; i < 30; i++ {
		require.NoError(t, b.Tick(frame))
	}
	b.Update(1)
	assert.Equal(t, Completed, b.State())
	assert.Equal(t, 1, calls)
}

func TestBar_ConvergesAcrossParameters(t *testing.T) {
	tests := []struct {
		frequency float64
		damping   float64
	}{
		{18, 1},
		{6, 0.4},
		{2, 1},
		{10, 2.5},
		{30, 0.2},
	}
	for _, tt := range tests {
		b := newBar(t, WithSpring(tt.frequency, tt.damping))
		b.Update(0.7)

		ticks := tickUntil(t, b, 60*20)
		assert.LessOrEqual(t, ticks, 60*20, "f=%v z=%v", tt.frequency, tt.damping)
		assert.Equal(t, Idle, b.State())
		assert.InDelta(t, 0.7, b.Position(), 1e-9)
	}
}

func TestBar_PausesBelowOne(t *testing.T) {
	calls := 0
	b := newBar(t, OnComplete(func() { calls++ }))

	b.Update(0.5)
	tickUntil(t, b, 120)

	assert.Equal(t, Idle, b.State())
	assert.Equal(t, 0.5, b.Position())
	assert.Zero(t, calls)
}

func TestBar_CompletesFromIdleNearOne(t *testing.T) {
	calls := 0
	b := newBar(t, OnComplete(func() { calls++ }))

	b.Update(0.9995)
	tickUntil(t, b, 240)
	require.Equal(t, Idle, b.State())

	b.Update(1)
	assert.Equal(t, Completed, b.State())
	assert.Equal(t, 1.0, b.Position())
	assert.Equal(t, 1, calls)

	for i := 0; i < 30; i++ {
		require.NoError(t, b.Tick(frame))
	}
	assert.Equal(t, 1, calls)
}

func TestBar_SummedStepsReachOne(t *testing.T) {
	calls := 0
	b := newBar(t, WithStep(0.1), OnComplete(func() { calls++ }))

	for i := 0; i < 10; i++ {
		b.Incr()
	}
	assert.Equal(t, 1.0, b.Target())

	tickUntil(t, b, 240)
	assert.Equal(t, Completed, b.State())
	assert.Equal(t, 1, calls)

	for i := 0; i < 10; i++ {
		b.Decr()
	}
	assert.Zero(t, b.Target())
}

func TestBar_ReopensAfterCompletion(t *testing.T) {
	calls := 0
	b := newBar(t, OnComplete(func() { calls++ }))

	b.Update(1)
	tickUntil(t, b, 120)
	require.Equal(t, Completed, b.State())

	b.Update(0.4)
	assert.Equal(t, Animating, b.State())
	tickUntil(t, b, 120)
	assert.Equal(t, Idle, b.State())

	b.Update(1)
	tickUntil(t, b, 120)
	assert.Equal(t, Completed, b.State())
	assert.Equal(t, 2, calls)
}

func TestBar_UpdateToCurrentValueStaysIdle(t *testing.T) {
	b := newBar(t)
	b.Update(0)
	assert.Equal(t, Idle, b.State())
}

func TestBar_Clamping(t *testing.T) {
	over, one := newBar(t), newBar(t)
	over.Update(1.5)
	one.Update(1.0)
	assert.Equal(t, 1.0, over.Target())

	for i := 0; i < 10; i++ {
		require.NoError(t, over.Tick(frame))
		require.NoError(t, one.Tick(frame))
		assert.Equal(t, one.Position(), over.Position())
	}

	under := newBar(t)
	under.Update(0.5)
	under.Update(-0.3)
	assert.Equal(t, 0.0, under.Target())
}

func TestBar_IncrDecr(t *testing.T) {
	b := newBar(t)
	b.Incr()
	b.Incr()
	assert.InDelta(t, 0.5, b.Target(), 1e-12)
	b.Decr()
	assert.InDelta(t, 0.25, b.Target(), 1e-12)
	b.DecrBy(1)
	assert.Equal(t, 0.0, b.Target())
	b.IncrBy(3)
	assert.Equal(t, 1.0, b.Target())

	stepped := newBar(t, WithStep(0.1))
	stepped.Incr()
	assert.InDelta(t, 0.1, stepped.Target(), 1e-12)
}

func TestBar_TickValidation(t *testing.T) {
	b := newBar(t)
	b.Update(0.5)

	assert.ErrorIs(t, b.Tick(-frame), dynamo.ErrInvalidArgument)
	assert.ErrorIs(t, b.Tick(math.NaN()), dynamo.ErrInvalidArgument)
	assert.Zero(t, b.Position())

	require.NoError(t, b.Tick(0))
	assert.Zero(t, b.Position())
	assert.Equal(t, Animating, b.State())
}

func TestBar_Cancel(t *testing.T) {
	b := newBar(t)
	b.Update(1)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Tick(frame))
	}
	pos, vel := b.Position(), b.Velocity()
	require.NotZero(t, vel)

	b.Cancel()
	assert.Equal(t, Cancelled, b.State())

	require.NoError(t, b.Tick(frame))
	b.Update(0.1)
	b.Incr()
	b.Reset()
	assert.NoError(t, b.SetSpring(1, 1))

	assert.Equal(t, Cancelled, b.State())
	assert.Equal(t, pos, b.Position())
	assert.Equal(t, vel, b.Velocity())
	assert.Equal(t, 1.0, b.Target())
	assert.Equal(t, physics.DefaultFrequency, b.Frequency())
	assert.ErrorIs(t, b.Tick(-1), dynamo.ErrInvalidArgument)
}

func TestBar_Reset(t *testing.T) {
	b := newBar(t)
	b.Update(0.8)
	tickUntil(t, b, 120)
	tag := b.Tag()

	b.Reset()
	assert.Equal(t, Idle, b.State())
	assert.Zero(t, b.Position())
	assert.Zero(t, b.Target())
	assert.Zero(t, b.Elapsed())
	assert.Greater(t, b.Tag(), tag)
}

func TestBar_Timer(t *testing.T) {
	b := newBar(t, WithTimer(0.1, 0.5))

	require.NoError(t, b.Tick(0.25))
	assert.Zero(t, b.Target())
	assert.Equal(t, Idle, b.State())

	require.NoError(t, b.Tick(0.25))
	assert.InDelta(t, 0.1, b.Target(), 1e-12)
	assert.Equal(t, Animating, b.State())

	require.NoError(t, b.Tick(2))
	assert.InDelta(t, 0.5, b.Target(), 1e-12)

	for i := 0; i < 600 && !b.IsComplete(); i++ {
		require.NoError(t, b.Tick(frame))
	}
	assert.True(t, b.IsComplete())
	assert.Equal(t, 1.0, b.Target())
}

func TestBar_UpdateFromFrame(t *testing.T) {
	b := newBar(t)
	stale := b.Tag()
	b.Update(0.3)

	assert.False(t, b.UpdateFromFrame(0.9, stale))
	assert.Equal(t, 0.3, b.Target())

	assert.True(t, b.UpdateFromFrame(0.9, b.Tag()))
	assert.Equal(t, 0.9, b.Target())

	b.Cancel()
	assert.False(t, b.UpdateFromFrame(0.1, b.Tag()))
}

func TestBar_SetSpring(t *testing.T) {
	b := newBar(t)
	b.Update(1)
	require.NoError(t, b.Tick(frame))
	pos := b.Position()

	require.NoError(t, b.SetSpring(4, 0.5))
	assert.Equal(t, 4.0, b.Frequency())
	assert.Equal(t, pos, b.Position())
	assert.ErrorIs(t, b.SetSpring(-1, 1), dynamo.ErrInvalidArgument)
}

func TestBar_RenderIsPure(t *testing.T) {
	b := newBar(t)
	b.Update(0.65)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Tick(frame))
	}
	pos, vel := b.Position(), b.Velocity()

	first, second := b.Render(), b.Render()
	assert.Equal(t, first, second)
	assert.Equal(t, pos, b.Position())
	assert.Equal(t, vel, b.Velocity())
	assert.Equal(t, Animating, b.State())
}

func TestBar_RenderWhileIdle(t *testing.T) {
	b := newBar(t)
	line := b.Render()
	assert.Equal(t, 20, line.Count(viz.RoleEmpty))
}

func TestBar_Metrics(t *testing.T) {
	b := newBar(t, WithMetrics())
	b.Render()
	b.Render()
	require.NotNil(t, b.Metrics())
	assert.Equal(t, 2, b.Metrics().FramesRendered())

	b.DisableMetrics()
	b.Render()
	assert.Nil(t, b.Metrics())

	b.EnableMetrics()
	b.Render()
	assert.Equal(t, 1, b.Metrics().FramesRendered())
}

func TestBar_Observers(t *testing.T) {
	travel := metrics.NewTravel()
	overshoot := metrics.NewOvershoot()
	b := newBar(t, WithObserver(travel), WithObserver(overshoot))

	b.Update(1)
	tickUntil(t, b, 120)

	assert.InDelta(t, 1, travel.Value(), 2e-3)
	assert.Zero(t, overshoot.Value())
	assert.Greater(t, b.Elapsed(), 0.0)
}

func TestBar_RK4MatchesAnalytic(t *testing.T) {
	analytic := newBar(t)
	rk4 := newBar(t, WithMethod(physics.RK4))
	analytic.Update(1)
	rk4.Update(1)

	for i := 0; i < 5; i++ {
		require.NoError(t, analytic.Tick(frame))
		require.NoError(t, rk4.Tick(frame))
		assert.InDelta(t, analytic.Position(), rk4.Position(), 1e-6)
	}
}

func TestState_Text(t *testing.T) {
	for _, s := range []State{Idle, Animating, Completed, Cancelled} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	_, err := ParseState("paused")
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = State(7).MarshalText()
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	assert.Equal(t, "state(7)", State(7).String())
}
