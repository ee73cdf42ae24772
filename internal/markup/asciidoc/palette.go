package asciidoc

import "github.com/dshills/adocmark/internal/renderer/core"

// Paul Tol's color-blind safe schemes.
var (
	TolBlue   = core.MustHex("#4477AA")
	TolCyan   = core.MustHex("#EE6677") // same value as TolRed, kept as tuned
	TolGreen  = core.MustHex("#228833")
	TolYellow = core.MustHex("#CCBB44")
	TolRed    = core.MustHex("#EE6677")
	TolPurple = core.MustHex("#AA3377")
	TolGray   = core.MustHex("#BBBBBB")

	TolPaleBlue   = core.MustHex("#BBCCEE")
	TolPaleCyan   = core.MustHex("#CCEEFF")
	TolPaleGreen  = core.MustHex("#CCDDAA")
	TolPaleYellow = core.MustHex("#EEEEBB")
	TolPaleRed    = core.MustHex("#FFCCCC")
	TolPaleGray   = core.MustHex("#DDDDDD")

	TolDarkBlue   = core.MustHex("#222255")
	TolDarkCyan   = core.MustHex("#225555")
	TolDarkGreen  = core.MustHex("#225522")
	TolDarkYellow = core.MustHex("#666633")
	TolDarkRed    = core.MustHex("#663333")
	TolDarkGray   = core.MustHex("#555555")

	pureYellow = core.MustHex("#FFFF00")
)

// Palette holds every color the AsciiDoc rules use. Foreground entries are
// shared by both variants; background entries differ between light and dark.
type Palette struct {
	Heading         core.Color
	Link            core.Color
	List            core.Color
	ListDescription core.Color
	UnderlineRole   core.Color
	RoleGeneral     core.Color
	Admonition      core.Color
	Comment         core.Color
	HighlightText   core.Color

	MonospaceBack      core.Color
	QuoteBack          core.Color
	ExampleBack        core.Color
	SidebarBack        core.Color
	TableBack          core.Color
	HighlightBack      core.Color
	AttributeBack      core.Color
	SquareBracketsBack core.Color
	BlockTitleBack     core.Color
}

func foregrounds() Palette {
	return Palette{
		Heading:         TolBlue,
		Link:            TolBlue,
		List:            TolGreen,
		ListDescription: TolCyan,
		UnderlineRole:   TolGray,
		RoleGeneral:     TolPurple,
		Admonition:      TolRed,
		Comment:         TolGray,
		HighlightText:   core.ColorBlack,
	}
}

// LightPalette is tuned for light backgrounds.
func LightPalette() Palette {
	p := foregrounds()
	p.MonospaceBack = TolPaleGray
	p.QuoteBack = TolPaleGreen
	p.ExampleBack = TolPaleBlue
	p.SidebarBack = TolPaleRed
	p.TableBack = TolPaleYellow
	p.HighlightBack = pureYellow
	p.AttributeBack = TolPaleCyan
	p.SquareBracketsBack = TolPaleGray
	p.BlockTitleBack = TolPaleGray
	return p
}

// DarkPalette is tuned for dark backgrounds. The table and highlight
// backgrounds match the light variant.
func DarkPalette() Palette {
	p := foregrounds()
	p.MonospaceBack = TolDarkGray
	p.QuoteBack = TolDarkGreen
	p.ExampleBack = TolDarkBlue
	p.SidebarBack = TolDarkRed
	p.TableBack = TolPaleYellow
	p.HighlightBack = pureYellow
	p.AttributeBack = TolDarkCyan
	p.SquareBracketsBack = TolDarkGray
	p.BlockTitleBack = TolDarkGray
	return p
}

// PaletteFor selects the dark or light variant.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}
