package physics

import "math"

// maxSubstep is the coarsest RK4 step. Stiff springs shrink it further so
// that h times the fastest decay rate stays inside the stability region.
const maxSubstep = 1.0 / 960

// substep returns h with h·|λ| <= 0.5 for the fastest eigenvalue λ of the
// oscillator. Underdamped springs have |λ| = ω; overdamped ones grow to
// ω(ζ + sqrt(ζ²-1)).
func (s *Spring) substep() float64 {
	rate := s.AngularFrequency()
	if z := s.damping; z > 1 {
		rate *= z + math.Sqrt(z*z-1)
	}
	return math.Min(maxSubstep, 0.5/rate)
}

func (s *Spring) derive(x, v float64) (dx, dv float64) {
	w := s.AngularFrequency()
	return v, w*w*(s.target-x) - 2*s.damping*w*v
}

func (s *Spring) integrate(dt float64) (float64, float64) {
	n := int(math.Ceil(dt / s.substep()))
	if n < 1 {
		n = 1
	}
	h := dt / float64(n)

	x, v := s.position, s.velocity
	for i := 0; i < n; i++ {
		k1x, k1v := s.derive(x, v)
		k2x, k2v := s.derive(x+0.5*h*k1x, v+0.5*h*k1v)
		k3x, k3v := s.derive(x+0.5*h*k2x, v+0.5*h*k2v)
		k4x, k4v := s.derive(x+h*k3x, v+h*k3v)

		h6 := h / 6.0
		x += h6 * (k1x + 2*k2x + 2*k3x + k4x)
		v += h6 * (k1v + 2*k2v + 2*k3v + k4v)
	}
	return x, v
}
