// Package asciidoc holds the AsciiDoc pattern table, the line-prefix plan
// builders and the highlighting rules built on top of it.
package asciidoc

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dshills/adocmark/internal/markup/pattern"
)

func tracer() tracing.Trace {
	return tracing.Select("adocmark.asciidoc")
}

// MaxLevel is the deepest heading level and the deepest list nesting a
// prefix matcher recognizes.
const MaxLevel = 6

// Prefix expressions. Group 1 is always the leading indentation so
// templates can echo it.
var prefixExprs = []struct {
	role Role
	expr string
}{
	{RoleHeading, `^( {0})(={1,6} )`},
	{RoleChecked, `^( *)((\*{1,6}) \[(\*|x|X)\] +)`},
	{RoleUnchecked, `^( *)((\*{1,6}) \[( )\] +)`},
	{RoleCheckbox, `^( *)((\*{1,6}) \[( |\*|x|X)\] +)`},
	{RoleOrdered, `^( *)((\.{1,6}) +)`},
	{RoleUnordered, `^( *)((\*{1,6}) +)`},
	{RoleLeadingSpace, `^( *)`},
}

// Inline and block expressions for the classifier.
var inlineExprs = map[Role]string{
	RoleHeadingLine:           `^(={1,6} \S.*$)`,
	RoleBold:                  `(\*\S(?!\*)(.*?)\S\*(?!\*))`,
	RoleItalic:                `(_\S(?!_)(.*?)\S_(?!_))`,
	RoleSubscript:             `(~(?!~)(.*?)~(?!~))`,
	RoleSuperscript:           `(\^(?!\^)(.*?)\^(?!\^))`,
	RoleMonospace:             "(`(?!`)(.*?)`(?!`))",
	RoleOrderedItem:           `^(\.{1,6})( )`,
	RoleUnorderedItem:         `^\*{1,6}( \[[ xX]\])? `,
	RoleDescriptionTerm:       `^(.+\S(:{2,4}|;{2}))( |[\r\n])`,
	RoleAttributeDefinition:   `^:\S+:`,
	RoleAttributeReference:    `\{\S+\}`,
	RoleLineComment:           `^/{2}(?!/).*$`,
	RoleAdmonition:            `^(NOTE: |TIP: |IMPORTANT: |CAUTION: |WARNING: )`,
	RoleSquareBrackets:        `\[([^\[]*)\]`,
	RoleHighlight:             `(?<!\])((#(?!#)(.*?)#(?!#))|(##(?!#)(.*?)##))`,
	RoleCustom:                `\[([^\[]*)\]((#(?!#)(.*?)#(?!#))|(##(?!#)(.*?)##))`,
	RoleUnderline:             `\[\.underline\]((#(?!#)(.*?)#(?!#))|(##(?!#)(.*?)##))`,
	RoleStrikethrough:         `\[\.line-through\]((#(?!#)(.*?)#(?!#))|(##(?!#)(.*?)##))`,
	RoleHardLineBreak:         `(?<=\S)([^\S\r\n])\+(?=\r?$)`,
	RoleDoubleSpaceLineEnding: `(?<=\S)([^\S\r\n]{2,})(?=\r?$)`,
	RoleLink:                  `link:\S*?\[([^\[]*)\]`,
	RoleXref:                  `xref:\S*?\[([^\[]*)\]`,
	RoleImage:                 `image:\S*?\[([^\[]*)\]`,
	RoleInclude:               `include:\S*?\[([^\[]*)\]`,
	RoleBlockTitle:            `^\.[^\s.()|].*$`,
	RoleHexColor:              `(?<![\w#&])#[0-9a-fA-F]{6}\b`,
	RoleQuoteBlock:            blockExpr(`_`),
	RoleExampleBlock:          blockExpr(`=`),
	RoleListingBlock:          blockExpr(`-`),
	RoleLiteralBlock:          blockExpr(`\.`),
	RoleSidebarBlock:          blockExpr(`\*`),
	RoleCommentBlock:          blockExpr(`/`),
	RoleTableBlock:            `^(\|={3,})[ \t]*\r?\n([\s\S]*?)^\1[ \t]*(?=\r?$)`,
}

// blockExpr matches a region opened by four or more glyphs on their own
// line and closed by the same run. Group 2 is the interior.
func blockExpr(glyph string) string {
	return `^(` + glyph + `{4,})[ \t]*\r?\n([\s\S]*?)^\1[ \t]*(?=\r?$)`
}

// PrefixRule pairs a prefix role with its matcher.
type PrefixRule struct {
	Role    Role
	Matcher *pattern.Matcher
}

// Table is the compiled AsciiDoc pattern table. It is read-only after
// construction and safe for concurrent use.
type Table struct {
	prefixes     []PrefixRule
	byRole       map[Role]*pattern.Matcher
	headingExact [MaxLevel]*pattern.Matcher
}

// NewTable compiles every matcher. Any failure is returned as a
// *pattern.CompileError and leaves no usable table.
func NewTable() (*Table, error) {
	t := &Table{byRole: make(map[Role]*pattern.Matcher, len(prefixExprs)+len(inlineExprs))}
	for _, p := range prefixExprs {
		m, err := pattern.Compile(p.role.String(), p.expr)
		if err != nil {
			return nil, err
		}
		t.prefixes = append(t.prefixes, PrefixRule{Role: p.role, Matcher: m})
		t.byRole[p.role] = m
	}
	for role, expr := range inlineExprs {
		m, err := pattern.Compile(role.String(), expr)
		if err != nil {
			return nil, err
		}
		t.byRole[role] = m
	}
	for level := 1; level <= MaxLevel; level++ {
		name := fmt.Sprintf("heading-%d", level)
		m, err := pattern.Compile(name, `^( {0})`+strings.Repeat("=", level)+` `)
		if err != nil {
			return nil, err
		}
		t.headingExact[level-1] = m
	}
	tracer().Debugf("asciidoc: compiled %d matchers", len(t.byRole)+MaxLevel)
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// DefaultTable returns the process-wide table, compiling it on first use.
func DefaultTable() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = NewTable()
		if defaultErr != nil {
			tracer().Errorf("asciidoc: pattern table unusable: %v", defaultErr)
		}
	})
	return defaultTable, defaultErr
}

// MustDefaultTable is like DefaultTable but panics if the table does not
// compile.
func MustDefaultTable() *Table {
	t, err := DefaultTable()
	if err != nil {
		panic(err)
	}
	return t
}

// Prefixes returns the prefix rules, most specific first. The last rule
// always matches.
func (t *Table) Prefixes() []PrefixRule {
	out := make([]PrefixRule, len(t.prefixes))
	copy(out, t.prefixes)
	return out
}

// Matcher returns the matcher for role, or nil if the table has none.
func (t *Table) Matcher(role Role) *pattern.Matcher {
	return t.byRole[role]
}

// Roles returns every role with a matcher, in role order.
func (t *Table) Roles() []Role {
	roles := make([]Role, 0, len(t.byRole))
	for r := range t.byRole {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// PrefixRole returns the role of the first prefix rule matching line.
func (t *Table) PrefixRole(line string) Role {
	for _, p := range t.prefixes {
		ok, err := p.Matcher.MatchesAtStart(line)
		if err != nil {
			tracer().Errorf("asciidoc: %v", err)
			continue
		}
		if ok {
			return p.Role
		}
	}
	return RoleNone
}

func (t *Table) headingMarker(level int) *pattern.Matcher {
	return t.headingExact[level-1]
}
