package metrics

import "math"

// Overshoot is the largest distance the position travelled past its target,
// measured in the direction of travel from the first sample.
type Overshoot struct {
	name      string
	direction float64
	max       float64
	samples   int
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoot"}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(s Sample) {
	if o.samples == 0 {
		o.direction = math.Copysign(1, s.Target-s.Position)
	}
	o.samples++
	past := (s.Position - s.Target) * o.direction
	o.max = math.Max(o.max, past)
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() {
	o.direction = 0
	o.max = 0
	o.samples = 0
}

// SettleTime is the time of the last sample outside tolerance of the
// target. After it the trajectory stayed within tolerance.
type SettleTime struct {
	name        string
	tolerance   float64
	lastOutside float64
	settled     bool
}

func NewSettleTime(tolerance float64) *SettleTime {
	return &SettleTime{
		name:      "settle_time",
		tolerance: tolerance,
	}
}

func (st *SettleTime) Name() string { return st.name }

func (st *SettleTime) Observe(s Sample) {
	if math.Abs(s.Target-s.Position) > st.tolerance {
		st.lastOutside = s.T
		st.settled = false
		return
	}
	st.settled = true
}

// Value returns the settle time, or +Inf while the last sample is still
// outside tolerance.
func (st *SettleTime) Value() float64 {
	if !st.settled {
		return math.Inf(1)
	}
	return st.lastOutside
}

func (st *SettleTime) Settled() bool { return st.settled }

func (st *SettleTime) Reset() {
	st.lastOutside = 0
	st.settled = false
}
