package colors

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/san-kum/springbar/internal/dynamo"
)

// Color is a device independent RGB color.
type Color = colorful.Color

// ParseHex parses "#rgb", "#rrggbb" or the same without the leading '#'.
func ParseHex(s string) (Color, error) {
	h := strings.TrimSpace(s)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	if n := len(h) - 1; n != 3 && n != 6 {
		return Color{}, dynamo.InvalidArgument("colors.ParseHex", "color", s, "want 3 or 6 hex digits")
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return Color{}, dynamo.InvalidArgument("colors.ParseHex", "color", s, err.Error())
	}
	return c, nil
}

// MustHex is ParseHex for package level tables. It panics on bad input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Profile is the set of colors a terminal can show.
type Profile int

const (
	TrueColor Profile = iota
	ANSI256
	ANSI16
	ASCII
)

func (p Profile) String() string {
	switch p {
	case TrueColor:
		return "truecolor"
	case ANSI256:
		return "ansi256"
	case ANSI16:
		return "ansi16"
	case ASCII:
		return "ascii"
	default:
		return fmt.Sprintf("profile(%d)", int(p))
	}
}

// ParseProfile maps a config name to a Profile.
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(name) {
	case "truecolor", "24bit":
		return TrueColor, nil
	case "ansi256", "256":
		return ANSI256, nil
	case "ansi16", "ansi", "16":
		return ANSI16, nil
	case "ascii", "none":
		return ASCII, nil
	default:
		return ASCII, dynamo.InvalidArgument("colors.ParseProfile", "profile", name, "want truecolor, ansi256, ansi16 or ascii")
	}
}

// FromTermenv converts a detected termenv profile.
func FromTermenv(p termenv.Profile) Profile {
	switch p {
	case termenv.TrueColor:
		return TrueColor
	case termenv.ANSI256:
		return ANSI256
	case termenv.ANSI:
		return ANSI16
	default:
		return ASCII
	}
}

// Termenv returns the matching termenv profile.
func (p Profile) Termenv() termenv.Profile {
	switch p {
	case TrueColor:
		return termenv.TrueColor
	case ANSI256:
		return termenv.ANSI256
	case ANSI16:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

// Degrade quantizes c to the nearest color p can show. It never fails;
// ASCII yields termenv.NoColor.
func Degrade(c Color, p Profile) termenv.Color {
	rgb := termenv.RGBColor(c.Clamped().Hex())
	switch p {
	case TrueColor:
		return rgb
	case ANSI256:
		return termenv.ANSI256.Convert(rgb)
	case ANSI16:
		return termenv.ANSI.Convert(rgb)
	default:
		return termenv.NoColor{}
	}
}
