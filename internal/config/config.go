package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/san-kum/springbar/internal/colors"
	"github.com/san-kum/springbar/internal/physics"
	"github.com/san-kum/springbar/internal/progress"
	"github.com/san-kum/springbar/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 5.0
	DefaultStoreDir = ".springbar"

	// EnvPrefix marks environment variables that override file settings,
	// e.g. SPRINGBAR_DT or SPRINGBAR_PROFILE.
	EnvPrefix = "SPRINGBAR_"
)

type Config struct {
	Dt       float64     `yaml:"dt" validate:"gt=0,lte=1"`
	Duration float64     `yaml:"duration" validate:"gt=0"`
	Profile  string      `yaml:"profile" validate:"oneof=truecolor ansi256 ansi16 ascii"`
	Method   string      `yaml:"method" validate:"oneof=analytic rk4"`
	StoreDir string      `yaml:"store_dir" validate:"required"`
	Encoding string      `yaml:"encoding" validate:"oneof=json yaml"`
	Bars     []BarConfig `yaml:"bars" validate:"min=1,unique=Name,dive"`
}

type BarConfig struct {
	Name      string       `yaml:"name" validate:"required"`
	Target    float64      `yaml:"target" validate:"gte=0,lte=1"`
	Width     int          `yaml:"width" validate:"gt=0,lte=500"`
	Theme     string       `yaml:"theme,omitempty"`
	Gradient  string       `yaml:"gradient,omitempty"`
	Colors    []string     `yaml:"colors,omitempty" validate:"omitempty,dive,hexcolor"`
	Solid     string       `yaml:"solid,omitempty" validate:"omitempty,hexcolor"`
	Scaled    bool         `yaml:"scaled,omitempty"`
	Glyphs    string       `yaml:"glyphs,omitempty"`
	Spring    string       `yaml:"spring,omitempty"`
	Frequency float64      `yaml:"frequency,omitempty" validate:"gte=0"`
	Damping   *float64     `yaml:"damping,omitempty" validate:"omitempty,gte=0"`
	Formatter string       `yaml:"formatter,omitempty" validate:"omitempty,oneof=percentage fraction engineering eta none"`
	Total     int          `yaml:"total,omitempty" validate:"required_if=Formatter fraction"`
	Hint      string       `yaml:"hint,omitempty"`
	Timer     *TimerConfig `yaml:"timer,omitempty"`
}

type TimerConfig struct {
	Step     float64 `yaml:"step" validate:"gt=0,lte=1"`
	Interval float64 `yaml:"interval" validate:"gt=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Profile:  colors.TrueColor.String(),
		Method:   physics.Analytic.String(),
		StoreDir: DefaultStoreDir,
		Encoding: "json",
		Bars: []BarConfig{
			{Name: "download", Target: 1, Width: 40, Gradient: colors.DefaultPreset},
			{Name: "extract", Target: 0.75, Width: 40, Theme: "neon", Spring: "bouncy"},
			{Name: "verify", Width: 40, Glyphs: "dots", Spring: "gentle", Formatter: "fraction", Total: 20,
				Timer: &TimerConfig{Step: 0.1, Interval: 0.25}},
		},
	}
}

// Load reads a yaml file over the defaults, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides top level settings from SPRINGBAR_* variables.
func (c *Config) ApplyEnv() error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if k.Exists("dt") {
		c.Dt = k.Float64("dt")
		if c.Dt == 0 {
			return fmt.Errorf("invalid %sDT %q", EnvPrefix, k.String("dt"))
		}
	}
	if k.Exists("duration") {
		c.Duration = k.Float64("duration")
	}
	for key, dst := range map[string]*string{
		"profile":   &c.Profile,
		"method":    &c.Method,
		"store_dir": &c.StoreDir,
		"encoding":  &c.Encoding,
	} {
		if k.Exists(key) {
			*dst = k.String(key)
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and that every named theme, preset and
// glyph set exists.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	for _, bc := range c.Bars {
		if _, err := c.StyleFor(bc, func() time.Duration { return 0 }); err != nil {
			return fmt.Errorf("bar %q: %w", bc.Name, err)
		}
		if _, err := c.BarOptions(bc); err != nil {
			return fmt.Errorf("bar %q: %w", bc.Name, err)
		}
	}
	return nil
}

// ColorProfile parses Profile.
func (c *Config) ColorProfile() (colors.Profile, error) {
	return colors.ParseProfile(c.Profile)
}

// StyleFor builds the style for one bar. elapsed feeds the eta formatter.
func (c *Config) StyleFor(bc BarConfig, elapsed func() time.Duration) (viz.Style, error) {
	profile, err := c.ColorProfile()
	if err != nil {
		return viz.Style{}, err
	}

	opts := []viz.Option{viz.WithWidth(bc.Width), viz.WithProfile(profile)}
	if bc.Theme != "" {
		opts = append(opts, viz.WithTheme(bc.Theme))
	}
	if bc.Glyphs != "" {
		opts = append(opts, viz.WithCharacterStyle(bc.Glyphs))
	}

	switch {
	case bc.Solid != "":
		col, err := colors.ParseHex(bc.Solid)
		if err != nil {
			return viz.Style{}, err
		}
		opts = append(opts, viz.WithSolidFill(col))
	case len(bc.Colors) > 0:
		g, err := colors.NewGradient(bc.Colors...)
		if err != nil {
			return viz.Style{}, err
		}
		opts = append(opts, viz.WithGradient(g))
	case bc.Gradient != "":
		opts = append(opts, viz.WithPresetGradient(bc.Gradient))
	}
	if bc.Scaled {
		opts = append(opts, viz.WithScaledGradient())
	}

	switch bc.Formatter {
	case "", "percentage":
	case "fraction":
		opts = append(opts, viz.WithFormatter(viz.Fraction(bc.Total)))
	case "engineering":
		opts = append(opts, viz.WithFormatter(viz.Engineering))
	case "eta":
		opts = append(opts, viz.WithFormatter(func(p float64) string {
			return viz.TimeRemaining(elapsed())(p)
		}))
	case "none":
		opts = append(opts, viz.WithoutPercentage())
	}
	if bc.Hint != "" {
		opts = append(opts, viz.WithHint(bc.Hint))
	}
	return viz.NewStyle(opts...)
}

// BarOptions turns spring and timer settings into bar options. An explicit
// frequency or damping overrides the named spring preset.
func (c *Config) BarOptions(bc BarConfig) ([]progress.Option, error) {
	spring := SpringPreset{Frequency: physics.DefaultFrequency, Damping: physics.DefaultDamping}
	if bc.Spring != "" {
		p := GetPreset(bc.Spring)
		if p == nil {
			return nil, fmt.Errorf("unknown spring preset %q", bc.Spring)
		}
		spring = *p
	}
	if bc.Frequency > 0 {
		spring.Frequency = bc.Frequency
	}
	if bc.Damping != nil {
		spring.Damping = *bc.Damping
	}

	method, err := physics.ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}

	opts := []progress.Option{
		progress.WithSpring(spring.Frequency, spring.Damping),
		progress.WithMethod(method),
	}
	if bc.Timer != nil {
		opts = append(opts, progress.WithTimer(bc.Timer.Step, bc.Timer.Interval))
	}
	return opts, nil
}

// BuildGroup creates one bar per entry in order and sets each target.
func (c *Config) BuildGroup(elapsed func() time.Duration, opts ...progress.GroupOption) (*progress.Group, error) {
	g := progress.NewGroup(opts...)
	for _, bc := range c.Bars {
		style, err := c.StyleFor(bc, elapsed)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", bc.Name, err)
		}
		barOpts, err := c.BarOptions(bc)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", bc.Name, err)
		}
		b, err := progress.New(style, barOpts...)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", bc.Name, err)
		}
		b.Update(bc.Target)
		if err := g.Add(bc.Name, b); err != nil {
			return nil, err
		}
	}
	return g, nil
}
