// Package colors turns gradient definitions into terminal colors.
//
// Interpolation happens in CIE-Luv so that midpoints between saturated
// colors stay bright instead of turning muddy. The result is then degraded
// to whatever the host terminal supports:
//
//	TrueColor  24-bit, passed through unchanged
//	ANSI256    nearest entry of the xterm 256 palette
//	ANSI16     nearest of the 16 basic colors
//	ASCII      no color at all
//
// Gradient presets are read-only package data; [Preset] hands out copies.
package colors
