// Package physics provides the spring simulator that animates progress.
//
// A [Spring] is a damped harmonic oscillator pulling a scalar position toward
// a target in [0, 1]:
//
//	x'' = ω²(target - x) - 2ζω x'
//
// where ω = 2π·frequency and ζ is the damping ratio. Three regimes exist:
//
//   - ζ < 1: under-damped, overshoots and rings down
//   - ζ = 1: critically damped, fastest approach without overshoot
//   - ζ > 1: over-damped, slow exponential approach
//
// The default [Analytic] method uses the closed-form solution for each
// regime, so any dt is stable. [RK4] integrates the same equation in small
// fixed sub-steps and exists mostly to cross-check the closed form.
//
// # Equilibrium
//
// The simulator never stops itself. Callers ask [Spring.AtEquilibrium] and
// decide what to do:
//
//	s, _ := physics.NewSpring(physics.DefaultFrequency, physics.DefaultDamping)
//	s.SetTarget(1)
//	for !s.AtEquilibrium() {
//	    _ = s.Step(1.0 / 60)
//	}
package physics
