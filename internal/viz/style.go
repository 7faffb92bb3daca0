package viz

import (
	"github.com/san-kum/springbar/internal/colors"
	"github.com/san-kum/springbar/internal/dynamo"
)

// DefaultWidth is the bar width in cells when none is given.
const DefaultWidth = 40

// GradientMode selects how gradient positions map onto cells.
type GradientMode int

const (
	// FullWidth spreads the gradient over every cell so colors stay put
	// as the bar fills.
	FullWidth GradientMode = iota
	// Scaled spreads the gradient over the filled cells only, so the
	// leading cell always shows the end color.
	Scaled
)

func (m GradientMode) String() string {
	switch m {
	case FullWidth:
		return "full-width"
	case Scaled:
		return "scaled"
	default:
		return "unknown"
	}
}

// Tint is an optional color.
type Tint struct {
	Color colors.Color
	Set   bool
}

// TintOf returns a set Tint.
func TintOf(c colors.Color) Tint { return Tint{Color: c, Set: true} }

// Style describes how a bar looks. Treat it as a value: use With to derive
// a changed copy.
type Style struct {
	Width          int
	Full           rune
	Empty          rune
	Partial        bool
	Fill           colors.Fill
	Mode           GradientMode
	Profile        colors.Profile
	ShowPercentage bool
	Formatter      Formatter
	Hint           string
	EmptyColor     Tint
	LabelColor     Tint
	HintColor      Tint
}

// Option changes a Style under construction.
type Option func(*Style) error

// DefaultStyle is a 40 cell block bar with the purple_pink gradient and a
// percentage label.
func DefaultStyle() Style {
	g, _ := colors.Preset(colors.DefaultPreset)
	blocks := characterStyles["blocks"]
	return Style{
		Width:          DefaultWidth,
		Full:           blocks.Full,
		Empty:          blocks.Empty,
		Partial:        blocks.Partial,
		Fill:           colors.FromGradient(g),
		Mode:           FullWidth,
		Profile:        colors.TrueColor,
		ShowPercentage: true,
		Formatter:      Percentage,
	}
}

// NewStyle applies opts to DefaultStyle and validates the result.
func NewStyle(opts ...Option) (Style, error) {
	return DefaultStyle().With(opts...)
}

// With returns a validated copy of s with opts applied. s is not changed.
func (s Style) With(opts ...Option) (Style, error) {
	out := s.Clone()
	for _, opt := range opts {
		if err := opt(&out); err != nil {
			return Style{}, err
		}
	}
	if err := out.Validate(); err != nil {
		return Style{}, err
	}
	return out, nil
}

// Clone deep copies the gradient so the result shares nothing mutable
// with s.
func (s Style) Clone() Style {
	s.Fill = s.Fill.Clone()
	return s
}

// Validate checks the width, glyphs, fill and enums.
func (s Style) Validate() error {
	const op = "viz.Style"
	if s.Width <= 0 {
		return dynamo.InvalidArgument(op, "width", s.Width, "must be positive")
	}
	if s.Full == 0 {
		return dynamo.InvalidArgument(op, "full glyph", s.Full, "must be set")
	}
	if s.Empty == 0 {
		return dynamo.InvalidArgument(op, "empty glyph", s.Empty, "must be set")
	}
	if err := s.Fill.Validate(); err != nil {
		return err
	}
	if s.Mode != FullWidth && s.Mode != Scaled {
		return dynamo.InvalidArgument(op, "gradient mode", int(s.Mode), "unknown mode")
	}
	if s.Profile < colors.TrueColor || s.Profile > colors.ASCII {
		return dynamo.InvalidArgument(op, "profile", int(s.Profile), "unknown profile")
	}
	return nil
}

func WithWidth(w int) Option {
	return func(s *Style) error {
		if w <= 0 {
			return dynamo.InvalidArgument("viz.WithWidth", "width", w, "must be positive")
		}
		s.Width = w
		return nil
	}
}

// WithGlyphs sets custom glyphs. Partial cells are disabled since the
// block ramp only matches block glyphs.
func WithGlyphs(full, empty rune) Option {
	return func(s *Style) error {
		s.Full, s.Empty, s.Partial = full, empty, false
		return nil
	}
}

func WithCharacterStyle(name string) Option {
	return func(s *Style) error {
		cs, err := LookupCharacterStyle(name)
		if err != nil {
			return err
		}
		s.Full, s.Empty, s.Partial = cs.Full, cs.Empty, cs.Partial
		return nil
	}
}

// WithGradient sets explicit stops. The slice is copied.
func WithGradient(g colors.Gradient) Option {
	return func(s *Style) error {
		if err := g.Validate(); err != nil {
			return err
		}
		s.Fill = colors.FromGradient(g)
		return nil
	}
}

// WithScaledGradient maps the gradient onto the filled cells only.
func WithScaledGradient() Option {
	return func(s *Style) error {
		s.Mode = Scaled
		return nil
	}
}

func WithPresetGradient(name string) Option {
	return func(s *Style) error {
		g, ok := colors.Preset(name)
		if !ok {
			return dynamo.InvalidArgument("viz.WithPresetGradient", "preset", name, "unknown gradient preset")
		}
		s.Fill = colors.FromGradient(g)
		return nil
	}
}

func WithSolidFill(c colors.Color) Option {
	return func(s *Style) error {
		s.Fill = colors.Solid(c)
		return nil
	}
}

func WithProfile(p colors.Profile) Option {
	return func(s *Style) error {
		s.Profile = p
		return nil
	}
}

func WithoutPercentage() Option {
	return func(s *Style) error {
		s.ShowPercentage = false
		return nil
	}
}

// WithFormatter replaces the label formatter and turns the label on.
func WithFormatter(f Formatter) Option {
	return func(s *Style) error {
		if f == nil {
			return dynamo.InvalidArgument("viz.WithFormatter", "formatter", nil, "must not be nil")
		}
		s.Formatter = f
		s.ShowPercentage = true
		return nil
	}
}

func WithHint(hint string) Option {
	return func(s *Style) error {
		s.Hint = hint
		return nil
	}
}

func WithEmptyColor(c colors.Color) Option {
	return func(s *Style) error {
		s.EmptyColor = TintOf(c)
		return nil
	}
}

func WithLabelColor(c colors.Color) Option {
	return func(s *Style) error {
		s.LabelColor = TintOf(c)
		return nil
	}
}

func WithHintColor(c colors.Color) Option {
	return func(s *Style) error {
		s.HintColor = TintOf(c)
		return nil
	}
}

// WithTheme applies a named theme's fill, mode, background and label
// settings.
func WithTheme(name string) Option {
	return func(s *Style) error {
		th, ok := LookupTheme(name)
		if !ok {
			return dynamo.InvalidArgument("viz.WithTheme", "theme", name, "unknown theme")
		}
		th.apply(s)
		return nil
	}
}
