// Package term provides minimal ANSI styling for terminal output.
package term

import "strings"

// A Color selects a foreground color.
type Color string

// The foreground colors used by the tree renderer.
const (
	Default Color = "39"
	Black   Color = "30"
	Red     Color = "31"
	Green   Color = "32"
	Yellow  Color = "33"
	Blue    Color = "34"
	Magenta Color = "35"
	Cyan    Color = "36"
	White   Color = "37"
	Orange  Color = "38;5;208"
)

// A Style is a set of SGR attributes. The zero Style renders text
// unchanged.
type Style struct {
	codes []string
}

// New returns a style with the given foreground color.
func New(fg Color) Style {
	return Style{codes: []string{string(fg)}}
}

// Bold returns a copy of s with the bold attribute set.
func (s Style) Bold() Style { return s.with("1") }

// Dim returns a copy of s with the faint attribute set.
func (s Style) Dim() Style { return s.with("2") }

// Italic returns a copy of s with the italic attribute set.
func (s Style) Italic() Style { return s.with("3") }

func (s Style) with(code string) Style {
	codes := make([]string, len(s.codes), len(s.codes)+1)
	copy(codes, s.codes)
	return Style{codes: append(codes, code)}
}

// Render wraps text in the escape sequences for s.
func (s Style) Render(text string) string {
	if len(s.codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(s.codes, ";") + "m" + text + "\x1b[0m"
}
