// Package core provides the color and style types shared by the highlighter
// and the rendering backends.
package core

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text, optionally colored
	AttrStrikethrough
	AttrMonospace // Code font; a no-op on terminals
	AttrSubscript
	AttrSuperscript
)

var attrNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrStrikethrough, "strikethrough"},
	{AttrMonospace, "monospace"},
	{AttrSubscript, "subscript"},
	{AttrSuperscript, "superscript"},
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// String lists the set attributes joined by '|'.
func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	var parts []string
	for _, n := range attrNames {
		if a.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Color is a true color, or the terminal's default color.
type Color struct {
	R, G, B uint8
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#RRGGBB" or "#RGB". The leading '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustHex is ColorFromHex for literals; it panics on malformed input.
func MustHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns "#RRGGBB" or "default".
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Contrast returns black or white, whichever reads better on c.
func (c Color) Contrast() Color {
	if c.Default {
		return ColorDefault
	}
	l, _, _ := c.colorful().Lab()
	if l > 0.6 {
		return ColorBlack
	}
	return ColorWhite
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	// UnderlineColor colors the underline when AttrUnderline is set.
	UnderlineColor Color
	Attributes     Attribute
	// Scale is the relative font size; 0 and 1 both mean normal size.
	Scale float64
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground:     ColorDefault,
		Background:     ColorDefault,
		UnderlineColor: ColorDefault,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	s := DefaultStyle()
	s.Foreground = fg
	return s
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// With returns a new style with attr added.
func (s Style) With(attr Attribute) Style {
	s.Attributes |= attr
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	return s.With(AttrBold)
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	return s.With(AttrItalic)
}

// Underline returns a new style underlined in color c. A default color
// uses the foreground.
func (s Style) Underline(c Color) Style {
	s.Attributes |= AttrUnderline
	s.UnderlineColor = c
	return s
}

// WithScale returns a new style with the given relative size.
func (s Style) WithScale(scale float64) Style {
	s.Scale = scale
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.UnderlineColor.Equals(other.UnderlineColor) &&
		s.Attributes == other.Attributes &&
		s.Scale == other.Scale
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Equals(DefaultStyle())
}
