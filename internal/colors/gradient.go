package colors

import (
	"fmt"

	"github.com/san-kum/springbar/internal/dynamo"
)

// Stop anchors a color at a position in [0, 1].
type Stop struct {
	Position float64
	Color    Color
}

// Gradient is an ordered list of stops.
type Gradient []Stop

// NewGradient spreads the given colors evenly over [0, 1]. A single color
// gives a one-stop gradient at position 0.
func NewGradient(hexes ...string) (Gradient, error) {
	if len(hexes) == 0 {
		return nil, dynamo.InvalidArgument("colors.NewGradient", "stops", 0, "need at least one color")
	}
	g := make(Gradient, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		pos := 0.0
		if len(hexes) > 1 {
			pos = float64(i) / float64(len(hexes)-1)
		}
		g[i] = Stop{Position: pos, Color: c}
	}
	return g, nil
}

// MustGradient is NewGradient for package level tables.
func MustGradient(hexes ...string) Gradient {
	g, err := NewGradient(hexes...)
	if err != nil {
		panic(err)
	}
	return g
}

// Validate checks that stops exist, lie in [0, 1] and are sorted.
func (g Gradient) Validate() error {
	if len(g) == 0 {
		return dynamo.InvalidArgument("colors.Gradient", "stops", 0, "need at least one stop")
	}
	prev := 0.0
	for i, s := range g {
		if !dynamo.IsFinite(s.Position) || s.Position < 0 || s.Position > 1 {
			return dynamo.InvalidArgument("colors.Gradient", fmt.Sprintf("stop[%d].position", i), s.Position, "must lie in [0, 1]")
		}
		if s.Position < prev {
			return dynamo.InvalidArgument("colors.Gradient", fmt.Sprintf("stop[%d].position", i), s.Position, "stops must be sorted")
		}
		prev = s.Position
	}
	return nil
}

// Clone returns an independent copy.
func (g Gradient) Clone() Gradient {
	if g == nil {
		return nil
	}
	c := make(Gradient, len(g))
	copy(c, g)
	return c
}

// End returns the color of the final stop.
func (g Gradient) End() Color {
	if len(g) == 0 {
		return Color{}
	}
	return g[len(g)-1].Color
}

// Interpolate returns the color at t. Outside the stop range the nearest
// boundary color is returned.
func Interpolate(g Gradient, t float64) Color {
	if len(g) == 0 {
		return Color{}
	}
	t = dynamo.Clamp01(t)

	first, last := g[0], g[len(g)-1]
	if t <= first.Position {
		return first.Color
	}
	if t >= last.Position {
		return last.Color
	}

	for i := 0; i < len(g)-1; i++ {
		a, b := g[i], g[i+1]
		if t < a.Position || t > b.Position {
			continue
		}
		span := b.Position - a.Position
		if span == 0 || t == b.Position {
			return b.Color
		}
		if t == a.Position {
			return a.Color
		}
		return a.Color.BlendLuv(b.Color, (t-a.Position)/span).Clamped()
	}
	return last.Color
}

// Fill is either a gradient or a single solid color.
type Fill struct {
	gradient Gradient
	solid    Color
	isSolid  bool
}

// Solid fills every cell with c.
func Solid(c Color) Fill {
	return Fill{solid: c, isSolid: true}
}

// FromGradient fills cells along g. The gradient is copied.
func FromGradient(g Gradient) Fill {
	return Fill{gradient: g.Clone()}
}

func (f Fill) IsSolid() bool { return f.isSolid }

// Gradient returns a copy of the stops, nil for solid fills.
func (f Fill) Gradient() Gradient { return f.gradient.Clone() }

// At returns the fill color at t.
func (f Fill) At(t float64) Color {
	if f.isSolid {
		return f.solid
	}
	return Interpolate(f.gradient, t)
}

// End returns the color shown at t = 1.
func (f Fill) End() Color {
	return f.At(1)
}

// Validate checks the gradient invariants for non-solid fills.
func (f Fill) Validate() error {
	if f.isSolid {
		return nil
	}
	return f.gradient.Validate()
}

// Clone returns a fill that shares no memory with f.
func (f Fill) Clone() Fill {
	f.gradient = f.gradient.Clone()
	return f
}
