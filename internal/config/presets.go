package config

import "sort"

// SpringPreset is a named frequency and damping pair.
type SpringPreset struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

var Presets = map[string]SpringPreset{
	"default":  {Frequency: 18, Damping: 1},
	"gentle":   {Frequency: 6, Damping: 1},
	"snappy":   {Frequency: 30, Damping: 1},
	"bouncy":   {Frequency: 10, Damping: 0.35},
	"sluggish": {Frequency: 2.5, Damping: 1.5},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *SpringPreset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
