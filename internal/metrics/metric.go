// Package metrics observes spring trajectories and render timing. Metrics
// are purely observational and never feed back into a simulation.
package metrics

import (
	"math"
	"sort"
)

// Sample is one observed spring state at time T seconds.
type Sample struct {
	Position float64
	Velocity float64
	Target   float64
	T        float64
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Set fans samples out to several metrics.
type Set []Metric

// Standard returns the settling metrics the CLI reports.
func Standard(tolerance float64) Set {
	return Set{NewOvershoot(), NewSettleTime(tolerance), NewTravel()}
}

func (s Set) Observe(sample Sample) {
	for _, m := range s {
		m.Observe(sample)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Values returns name to value for every metric.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Finite is Values without NaN or infinite entries, for encoders that
// cannot represent them.
func (s Set) Finite() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		if v := m.Value(); !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[m.Name()] = v
		}
	}
	return out
}

// Names lists metric names alphabetically.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Name()
	}
	sort.Strings(names)
	return names
}
