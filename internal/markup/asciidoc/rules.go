package asciidoc

import (
	"strings"

	"github.com/dshills/adocmark/internal/renderer/core"
	hl "github.com/dshills/adocmark/internal/renderer/highlight"
)

// ruleSpec is one classification pass before it is bound to a table.
type ruleSpec struct {
	role     Role
	group    int
	effect   hl.Effect
	derive   func(string) (hl.Effect, bool)
	requires hl.Flags
}

// Rules returns the AsciiDoc classification passes in application order:
// headings, code font, emphasis, links, lists, roles, admonitions,
// bracket and title backgrounds, line endings, block regions, comments,
// highlights, attributes, then sub/superscript, strikethrough and
// underline. Block regions annotate their interior only.
func Rules(t *Table, p Palette) []hl.Rule {
	var specs []ruleSpec
	add := func(role Role, e hl.Effect, requires hl.Flags) {
		group := 0
		if role.IsBlock() {
			group = 2
		}
		specs = append(specs, ruleSpec{role: role, group: group, effect: e, requires: requires})
	}
	block := func(role Role, e hl.Effect) {
		add(role, e, hl.FlagCodeBlock)
	}
	mono := hl.Plain(hl.EffectMonospace)

	add(RoleHeadingLine, hl.Foreground(p.Heading), 0)
	add(RoleHeadingLine, hl.Plain(hl.EffectBold), hl.FlagBiggerHeadings)
	specs = append(specs, ruleSpec{role: RoleHeadingLine, derive: headingScale, requires: hl.FlagBiggerHeadings})

	for _, r := range []Role{RoleMonospace, RoleListingBlock, RoleLiteralBlock, RoleUnorderedItem,
		RoleOrderedItem, RoleAttributeDefinition, RoleAdmonition} {
		add(r, mono, hl.FlagCodeMonospaceFont)
	}

	add(RoleBold, hl.Plain(hl.EffectBold), 0)
	add(RoleItalic, hl.Plain(hl.EffectItalic), 0)

	for _, r := range []Role{RoleLink, RoleXref, RoleImage, RoleInclude} {
		add(r, hl.Foreground(p.Link), 0)
	}

	add(RoleUnorderedItem, hl.Foreground(p.List), 0)
	add(RoleOrderedItem, hl.Foreground(p.List), 0)
	add(RoleDescriptionTerm, hl.Foreground(p.ListDescription), 0)
	add(RoleCustom, hl.Foreground(p.RoleGeneral), 0)

	add(RoleAdmonition, hl.Plain(hl.EffectBold), 0)
	add(RoleAdmonition, hl.Foreground(p.Admonition), 0)

	add(RoleSquareBrackets, hl.Background(p.SquareBracketsBack), 0)
	add(RoleBlockTitle, hl.Background(p.BlockTitleBack), 0)

	add(RoleHardLineBreak, hl.Background(p.MonospaceBack), hl.FlagLineEnding)

	add(RoleMonospace, hl.Background(p.MonospaceBack), hl.FlagCodeBlock)
	block(RoleListingBlock, hl.Background(p.MonospaceBack))
	block(RoleLiteralBlock, hl.Background(p.MonospaceBack))
	block(RoleQuoteBlock, hl.Background(p.QuoteBack))
	block(RoleExampleBlock, hl.Background(p.ExampleBack))
	block(RoleSidebarBlock, hl.Background(p.SidebarBack))
	block(RoleTableBlock, hl.Background(p.TableBack))
	block(RoleCommentBlock, hl.Foreground(p.Comment))

	add(RoleLineComment, hl.Foreground(p.Comment), 0)
	add(RoleHighlight, hl.Background(p.HighlightBack), 0)
	add(RoleHighlight, hl.Foreground(p.HighlightText), 0)
	add(RoleAttributeDefinition, hl.Background(p.AttributeBack), 0)
	add(RoleAttributeReference, hl.Background(p.AttributeBack), 0)

	add(RoleSubscript, hl.Plain(hl.EffectSubscript), 0)
	add(RoleSuperscript, hl.Plain(hl.EffectSuperscript), 0)
	add(RoleStrikethrough, hl.Plain(hl.EffectStrikethrough), 0)
	add(RoleUnderline, hl.Underline(p.UnderlineRole), 0)

	specs = append(specs, ruleSpec{role: RoleHexColor, derive: hexUnderline})

	rules := make([]hl.Rule, 0, len(specs))
	for _, s := range specs {
		rules = append(rules, hl.Rule{
			Name:     s.role.String(),
			Matcher:  t.Matcher(s.role),
			Group:    s.group,
			Effect:   s.effect,
			Derive:   s.derive,
			Requires: s.requires,
		})
	}
	return rules
}

// LineEndingRule is the optional pass that marks runs of two or more
// trailing spaces. It is not part of Rules.
func LineEndingRule(t *Table, p Palette) hl.Rule {
	return hl.Rule{
		Name:     RoleDoubleSpaceLineEnding.String(),
		Matcher:  t.Matcher(RoleDoubleSpaceLineEnding),
		Effect:   hl.Background(p.MonospaceBack),
		Requires: hl.FlagLineEnding,
	}
}

// NewClassifier builds a classifier over the AsciiDoc rules.
func NewClassifier(t *Table, p Palette) *hl.Classifier {
	return hl.NewClassifier(Rules(t, p))
}

// headingScale sizes a heading line by its level: level 1 is largest.
func headingScale(line string) (hl.Effect, bool) {
	level := len(line) - len(strings.TrimLeft(line, "="))
	if level < 1 || level > MaxLevel {
		return hl.Effect{}, false
	}
	return hl.Scale(1 + float64(MaxLevel+1-level)*0.1), true
}

// hexUnderline underlines a color literal in its own color.
func hexUnderline(s string) (hl.Effect, bool) {
	c, err := core.ColorFromHex(s)
	if err != nil {
		return hl.Effect{}, false
	}
	return hl.Underline(c), true
}
