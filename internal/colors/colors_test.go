package colors

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"long form", "#5A56E0", "#5a56e0"},
		{"no hash", "ee6ff8", "#ee6ff8"},
		{"short form", "#f00", "#ff0000"},
		{"whitespace", "  #00ff00 ", "#00ff00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Hex())
		})
	}

	_, err := ParseHex("#zzzzzz")
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = ParseHex("#12345")
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestGradientValidate(t *testing.T) {
	red, blue := MustHex("#ff0000"), MustHex("#0000ff")

	tests := []struct {
		name    string
		g       Gradient
		wantErr bool
	}{
		{"empty", Gradient{}, true},
		{"single", Gradient{{0.5, red}}, false},
		{"sorted", Gradient{{0, red}, {1, blue}}, false},
		{"equal positions", Gradient{{0, red}, {0.5, red}, {0.5, blue}, {1, blue}}, false},
		{"unsorted", Gradient{{0.7, red}, {0.2, blue}}, true},
		{"below zero", Gradient{{-0.1, red}}, true},
		{"above one", Gradient{{0, red}, {1.2, blue}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewGradient(t *testing.T) {
	g, err := NewGradient("#000000", "#808080", "#ffffff")
	require.NoError(t, err)
	require.Len(t, g, 3)
	assert.Equal(t, 0.0, g[0].Position)
	assert.Equal(t, 0.5, g[1].Position)
	assert.Equal(t, 1.0, g[2].Position)

	_, err = NewGradient()
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = NewGradient("#000000", "nope")
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestInterpolate_Boundaries(t *testing.T) {
	g := MustGradient("#5A56E0", "#EE6FF8")

	assert.Equal(t, g[0].Color, Interpolate(g, 0))
	assert.Equal(t, g[1].Color, Interpolate(g, 1))
	assert.Equal(t, g[0].Color, Interpolate(g, -2))
	assert.Equal(t, g[1].Color, Interpolate(g, 3))
}

func TestInterpolate_OutsideStopRange(t *testing.T) {
	red, blue := MustHex("#ff0000"), MustHex("#0000ff")
	g := Gradient{{0.25, red}, {0.75, blue}}

	assert.Equal(t, red, Interpolate(g, 0.1))
	assert.Equal(t, blue, Interpolate(g, 0.9))
}

func TestInterpolate_PerceptualMidpoint(t *testing.T) {
	// A raw sRGB lerp between red and green lands on a dark olive
	// (#7f7f00); blending in Luv keeps the midpoint noticeably brighter.
	g := MustGradient("#ff0000", "#00ff00")
	mid := Interpolate(g, 0.5)

	_, _, rawL := MustHex("#7f7f00").Hcl()
	_, _, midL := mid.Hcl()
	assert.Greater(t, midL, rawL)
}

func TestInterpolate_MultiStop(t *testing.T) {
	g := MustGradient("#ff0000", "#00ff00", "#0000ff")
	assert.Equal(t, "#00ff00", Interpolate(g, 0.5).Hex())

	near := Interpolate(g, 0.49)
	assert.Less(t, near.DistanceLab(g[1].Color), near.DistanceLab(g[0].Color))
}

func TestDegrade(t *testing.T) {
	red := MustHex("#ff0000")

	assert.Equal(t, termenv.RGBColor("#ff0000"), Degrade(red, TrueColor))
	assert.Equal(t, termenv.ANSI256Color(196), Degrade(red, ANSI256))
	assert.Equal(t, termenv.ANSIColor(9), Degrade(red, ANSI16))
	assert.Equal(t, termenv.NoColor{}, Degrade(red, ASCII))

	assert.Equal(t, termenv.ANSI256Color(16), Degrade(MustHex("#000000"), ANSI256))
	assert.Equal(t, termenv.ANSI256Color(231), Degrade(MustHex("#ffffff"), ANSI256))
}

func TestDegrade_TruecolorPassThrough(t *testing.T) {
	for _, name := range PresetNames() {
		g, _ := Preset(name)
		for _, s := range g {
			assert.Equal(t, termenv.RGBColor(s.Color.Hex()), Degrade(s.Color, TrueColor), name)
		}
	}
}

func TestDegrade_QuantizedTypes(t *testing.T) {
	c := MustHex("#5A56E0")
	_, ok := Degrade(c, ANSI256).(termenv.ANSI256Color)
	assert.True(t, ok)
	_, ok = Degrade(c, ANSI16).(termenv.ANSIColor)
	assert.True(t, ok)
}

func TestParseProfile(t *testing.T) {
	for _, p := range []Profile{TrueColor, ANSI256, ANSI16, ASCII} {
		got, err := ParseProfile(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.Equal(t, p, FromTermenv(p.Termenv()))
	}

	_, err := ParseProfile("cga")
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestFill(t *testing.T) {
	red := MustHex("#ff0000")
	solid := Solid(red)
	assert.True(t, solid.IsSolid())
	assert.Equal(t, red, solid.At(0.3))
	assert.NoError(t, solid.Validate())

	g := MustGradient("#000000", "#ffffff")
	f := FromGradient(g)
	g[1].Color = red
	assert.Equal(t, "#ffffff", f.End().Hex(), "fill must not share stops with caller")

	assert.ErrorIs(t, FromGradient(nil).Validate(), dynamo.ErrInvalidArgument)
}

func TestPresets(t *testing.T) {
	names := PresetNames()
	assert.Contains(t, names, DefaultPreset)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		g, ok := Preset(name)
		require.True(t, ok)
		assert.NoError(t, g.Validate(), name)
	}

	g, _ := Preset("fire")
	g[0].Color = MustHex("#123456")
	again, _ := Preset("fire")
	assert.Equal(t, "#ff0000", again[0].Color.Hex())

	_, ok := Preset("plaid")
	assert.False(t, ok)
}
