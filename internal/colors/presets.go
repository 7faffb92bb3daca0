package colors

import "sort"

// DefaultPreset matches the classic purple to pink progress gradient.
const DefaultPreset = "purple_pink"

var gradientPresets = map[string]Gradient{
	"purple_pink": MustGradient("#5A56E0", "#EE6FF8"),
	"fire":        MustGradient("#ff0000", "#ffff00"),
	"ocean":       MustGradient("#0066cc", "#00cccc"),
	"forest":      MustGradient("#228b22", "#90ee90"),
	"sunset":      MustGradient("#ff4500", "#ffd700"),
	"monochrome":  MustGradient("#000000", "#ffffff"),
	"matrix":      MustGradient("#003300", "#00ff00"),
	"neon":        MustGradient("#ff00ff", "#00ffff"),
	"ice":         MustGradient("#00ffff", "#ffffff"),
	"lava":        MustGradient("#8B0000", "#FF4500"),
	"rainbow":     MustGradient("#ff0000", "#ffff00", "#00ff00", "#00ffff", "#0000ff"),
}

// Preset returns a copy of the named gradient.
func Preset(name string) (Gradient, bool) {
	g, ok := gradientPresets[name]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// PresetNames lists the gradient presets alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(gradientPresets))
	for name := range gradientPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
