package viz

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Role tags what part of the bar a span belongs to.
type Role int

const (
	RoleFill Role = iota
	RolePartial
	RoleEmpty
	RoleSpace
	RoleLabel
	RoleHint
)

// Span is a run of text drawn in one color. A nil Color or
// termenv.NoColor means the terminal default.
type Span struct {
	Text  string
	Color termenv.Color
	Role  Role
}

// Line is one rendered bar.
type Line []Span

// String returns the text without any escape codes.
func (l Line) String() string {
	var b strings.Builder
	for _, sp := range l {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// ANSI returns the text with foreground escape codes for colored spans.
func (l Line) ANSI() string {
	var b strings.Builder
	for _, sp := range l {
		if !hasColor(sp.Color) {
			b.WriteString(sp.Text)
			continue
		}
		b.WriteString(termenv.String(sp.Text).Foreground(sp.Color).String())
	}
	return b.String()
}

// Width returns the number of terminal columns the line occupies.
func (l Line) Width() int {
	w := 0
	for _, sp := range l {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}

// Count returns the number of cells drawn with the given role.
func (l Line) Count(role Role) int {
	n := 0
	for _, sp := range l {
		if sp.Role == role {
			n += len([]rune(sp.Text))
		}
	}
	return n
}

// Find returns the first span with the given role.
func (l Line) Find(role Role) (Span, bool) {
	for _, sp := range l {
		if sp.Role == role {
			return sp, true
		}
	}
	return Span{}, false
}

func hasColor(c termenv.Color) bool {
	if c == nil {
		return false
	}
	_, none := c.(termenv.NoColor)
	return !none
}
