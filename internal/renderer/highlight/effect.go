package highlight

import (
	"fmt"

	"github.com/dshills/adocmark/internal/renderer/core"
)

// EffectKind is the kind of visual change an annotation asks for.
type EffectKind uint8

// Effect kinds.
const (
	EffectForeground EffectKind = iota
	EffectBackground
	EffectBold
	EffectItalic
	EffectMonospace
	EffectSubscript
	EffectSuperscript
	EffectStrikethrough
	EffectUnderline
	EffectScale
)

var effectNames = [...]string{
	EffectForeground:    "foreground",
	EffectBackground:    "background",
	EffectBold:          "bold",
	EffectItalic:        "italic",
	EffectMonospace:     "monospace",
	EffectSubscript:     "subscript",
	EffectSuperscript:   "superscript",
	EffectStrikethrough: "strikethrough",
	EffectUnderline:     "underline",
	EffectScale:         "scale",
}

func (k EffectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return fmt.Sprintf("effect(%d)", k)
}

// ParseEffectKind resolves an effect name as printed by String.
func ParseEffectKind(name string) (EffectKind, bool) {
	for k, n := range effectNames {
		if n == name {
			return EffectKind(k), true
		}
	}
	return 0, false
}

// Effect is a single visual change. Color is used by the foreground,
// background and underline kinds; Scale by the scale kind.
type Effect struct {
	Kind  EffectKind
	Color core.Color
	Scale float64
}

// Foreground colors the text.
func Foreground(c core.Color) Effect { return Effect{Kind: EffectForeground, Color: c} }

// Background colors behind the text.
func Background(c core.Color) Effect { return Effect{Kind: EffectBackground, Color: c} }

// Underline underlines in color c.
func Underline(c core.Color) Effect { return Effect{Kind: EffectUnderline, Color: c} }

// Scale resizes the text relative to its normal size.
func Scale(f float64) Effect { return Effect{Kind: EffectScale, Scale: f} }

// Plain returns an effect that needs no parameter, such as bold.
func Plain(k EffectKind) Effect { return Effect{Kind: k} }

// Apply layers e over s.
func (e Effect) Apply(s core.Style) core.Style {
	switch e.Kind {
	case EffectForeground:
		s.Foreground = e.Color
	case EffectBackground:
		s.Background = e.Color
	case EffectBold:
		s = s.Bold()
	case EffectItalic:
		s = s.Italic()
	case EffectMonospace:
		s.Attributes |= core.AttrMonospace
	case EffectSubscript:
		s.Attributes = s.Attributes.Without(core.AttrSuperscript) | core.AttrSubscript
	case EffectSuperscript:
		s.Attributes = s.Attributes.Without(core.AttrSubscript) | core.AttrSuperscript
	case EffectStrikethrough:
		s.Attributes |= core.AttrStrikethrough
	case EffectUnderline:
		s = s.Underline(e.Color)
	case EffectScale:
		s.Scale = e.Scale
	}
	return s
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectForeground, EffectBackground, EffectUnderline:
		return e.Kind.String() + "(" + e.Color.String() + ")"
	case EffectScale:
		return fmt.Sprintf("scale(%g)", e.Scale)
	}
	return e.Kind.String()
}
