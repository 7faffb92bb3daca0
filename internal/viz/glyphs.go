package viz

import (
	"sort"

	"github.com/san-kum/springbar/internal/dynamo"
)

// PartialBlocks holds the sub-cell fill levels from 1/8 to 8/8.
var PartialBlocks = []rune("▏▎▍▌▋▊▉█")

// CharacterStyle is a pair of glyphs for filled and empty cells.
type CharacterStyle struct {
	Full    rune
	Empty   rune
	Partial bool
}

var characterStyles = map[string]CharacterStyle{
	"blocks":  {Full: '█', Empty: '░', Partial: true},
	"dots":    {Full: '●', Empty: '○'},
	"arrows":  {Full: '▶', Empty: '▷'},
	"lines":   {Full: '━', Empty: '─'},
	"squares": {Full: '■', Empty: '□'},
	"circles": {Full: '◉', Empty: '◯'},
	"ascii":   {Full: '#', Empty: '-'},
	"equals":  {Full: '=', Empty: ' '},
}

// LookupCharacterStyle returns the named glyph set.
func LookupCharacterStyle(name string) (CharacterStyle, error) {
	cs, ok := characterStyles[name]
	if !ok {
		return CharacterStyle{}, dynamo.InvalidArgument("viz.CharacterStyle", "name", name, "unknown character style")
	}
	return cs, nil
}

// CharacterStyleNames lists the glyph sets alphabetically.
func CharacterStyleNames() []string {
	names := make([]string, 0, len(characterStyles))
	for name := range characterStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// partialGlyph picks the block for a fractional remainder in [0, 1).
// It returns 0 when the remainder rounds down to an empty cell.
func partialGlyph(frac float64) rune {
	level := int(frac*float64(len(PartialBlocks)) + 0.5)
	if level <= 0 {
		return 0
	}
	if level > len(PartialBlocks) {
		level = len(PartialBlocks)
	}
	return PartialBlocks[level-1]
}
