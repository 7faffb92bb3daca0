package viz

import (
	"math"
	"strings"

	"github.com/muesli/termenv"
	"github.com/san-kum/springbar/internal/colors"
	"github.com/san-kum/springbar/internal/dynamo"
)

// Renderer draws bars for one validated style. Full-width colors are
// computed once since they do not depend on progress.
type Renderer struct {
	style Style
	ramp  []termenv.Color
}

// NewRenderer validates style and prepares a Renderer for it. Under the
// ASCII profile the renderer draws with the ascii glyphs and no partial
// cells, whatever glyphs style names.
func NewRenderer(style Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{style: style.Clone()}
	if style.Profile == colors.ASCII {
		ascii := characterStyles["ascii"]
		r.style.Full, r.style.Empty, r.style.Partial = ascii.Full, ascii.Empty, false
	}
	if style.Mode == FullWidth {
		r.ramp = make([]termenv.Color, style.Width)
		for i := range r.ramp {
			r.ramp[i] = r.colorAt(cellPosition(i, style.Width))
		}
	}
	return r, nil
}

// Render draws progress with style. It fails only for an invalid style.
func Render(progress float64, style Style) (Line, error) {
	r, err := NewRenderer(style)
	if err != nil {
		return nil, err
	}
	return r.Render(progress), nil
}

// Style returns a copy of the style the renderer draws with.
func (r *Renderer) Style() Style { return r.style.Clone() }

// Render draws progress, clamped to [0, 1].
func (r *Renderer) Render(progress float64) Line {
	s := r.style
	p := dynamo.Clamp01(progress)

	exact := p * float64(s.Width)
	full := int(math.Floor(exact + 1e-9))
	if full > s.Width {
		full = s.Width
	}
	var partial rune
	if s.Partial && full < s.Width {
		partial = partialGlyph(exact - float64(full))
	}
	colored := full
	if partial != 0 {
		colored++
	}

	line := make(Line, 0, colored+5)
	for i := 0; i < colored; i++ {
		glyph, role := s.Full, RoleFill
		if i == full {
			glyph, role = partial, RolePartial
		}
		line = append(line, Span{Text: string(glyph), Color: r.cellColor(i, colored), Role: role})
	}
	if empty := s.Width - colored; empty > 0 {
		line = append(line, Span{
			Text:  strings.Repeat(string(s.Empty), empty),
			Color: r.tint(s.EmptyColor),
			Role:  RoleEmpty,
		})
	}

	if s.ShowPercentage {
		f := s.Formatter
		if f == nil {
			f = Percentage
		}
		line = append(line,
			Span{Text: " ", Role: RoleSpace},
			Span{Text: f(p), Color: r.tint(s.LabelColor), Role: RoleLabel},
		)
	}
	if s.Hint != "" {
		line = append(line,
			Span{Text: "  ", Role: RoleSpace},
			Span{Text: s.Hint, Color: r.tint(s.HintColor), Role: RoleHint},
		)
	}
	return line
}

func (r *Renderer) cellColor(i, colored int) termenv.Color {
	if r.style.Mode == Scaled {
		return r.colorAt(cellPosition(i, colored))
	}
	return r.ramp[i]
}

func (r *Renderer) colorAt(t float64) termenv.Color {
	return colors.Degrade(r.style.Fill.At(t), r.style.Profile)
}

func (r *Renderer) tint(t Tint) termenv.Color {
	if !t.Set {
		return nil
	}
	return colors.Degrade(t.Color, r.style.Profile)
}

// cellPosition maps cell i of n onto [0, 1]; a lone cell sits at the end.
func cellPosition(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(i) / float64(n-1)
}
