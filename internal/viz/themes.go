package viz

import "github.com/san-kum/springbar/internal/colors"

// Theme bundles a fill, gradient mode and muted background for the empty
// cells.
type Theme struct {
	Name           string
	Gradient       colors.Gradient
	Solid          bool
	Scaled         bool
	Background     colors.Color
	ShowPercentage bool
}

// Available themes
var (
	ThemeDefault = Theme{
		Name:           "default",
		Gradient:       colors.MustGradient("#ff3333", "#ffffff"),
		Background:     colors.MustHex("#1a1a1a"),
		ShowPercentage: true,
	}

	ThemeMatrix = Theme{
		Name:           "matrix",
		Gradient:       colors.MustGradient("#003300", "#00ff00"), // Green phosphor
		Background:     colors.MustHex("#000000"),
		ShowPercentage: true,
	}

	ThemeNeon = Theme{
		Name:           "neon",
		Gradient:       colors.MustGradient("#ff00ff", "#00ffff"), // Magenta to cyan
		Scaled:         true,
		Background:     colors.MustHex("#0a0a0a"),
		ShowPercentage: true,
	}

	ThemeFire = Theme{
		Name:           "fire",
		Gradient:       colors.MustGradient("#8b0000", "#ffd700"),
		Scaled:         true,
		Background:     colors.MustHex("#1a0000"),
		ShowPercentage: true,
	}

	ThemeOcean = Theme{
		Name:           "ocean",
		Gradient:       colors.MustGradient("#0066cc", "#00ffff"),
		Background:     colors.MustHex("#001a33"),
		ShowPercentage: true,
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Gradient:   colors.MustGradient("#ffffff"),
		Solid:      true,
		Background: colors.MustHex("#333333"),
	}

	// All available themes
	Themes = []Theme{
		ThemeDefault,
		ThemeMatrix,
		ThemeNeon,
		ThemeFire,
		ThemeOcean,
		ThemeMinimal,
	}
)

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// GetTheme returns a theme by name, falling back to the default theme.
func GetTheme(name string) Theme {
	if t, ok := LookupTheme(name); ok {
		return t
	}
	return ThemeDefault
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) apply(s *Style) {
	if t.Solid {
		s.Fill = colors.Solid(t.Gradient.End())
	} else {
		s.Fill = colors.FromGradient(t.Gradient)
	}
	s.Mode = FullWidth
	if t.Scaled {
		s.Mode = Scaled
	}
	s.EmptyColor = TintOf(t.Background)
	s.ShowPercentage = t.ShowPercentage
}
