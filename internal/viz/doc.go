// Package viz renders progress values as styled terminal text.
//
// A [Style] is an immutable description of a bar: width, glyphs, fill,
// gradient mode, color profile and label text. Styles are built with
// [NewStyle] and functional options and are never mutated afterwards;
// [Style.With] returns a modified copy.
//
//	style, err := viz.NewStyle(
//	    viz.WithWidth(30),
//	    viz.WithPresetGradient("neon"),
//	    viz.WithScaledGradient(),
//	    viz.WithHint("downloading"),
//	)
//	line, err := viz.Render(0.42, style)
//	fmt.Println(line.ANSI())
//
// Rendering is a pure projection from (progress, style) to a [Line] of
// colored spans. It keeps no state and can be called at any time.
//
// # Presets
//
// Character styles, themes and gradient presets are package level tables
// built once at init and only read afterwards.
package viz
