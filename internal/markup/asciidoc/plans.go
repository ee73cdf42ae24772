package asciidoc

import (
	"strings"
	"unicode"

	"github.com/dshills/adocmark/internal/markup/rewrite"
)

// indent echoes the leading indentation captured by every prefix matcher.
const indent = "${1}"

// HeadingTogglePlan returns the plan that toggles a line to heading level
// level. A line already at that level loses its marker; a heading of another
// level is re-leveled; any other line gains the marker. Levels outside
// 1..MaxLevel are clamped.
func (t *Table) HeadingTogglePlan(level int) rewrite.Plan {
	level = clampLevel(level)
	repl := indent + strings.Repeat("=", level) + " "

	plan := rewrite.Plan{
		{Matcher: t.headingMarker(level), Template: indent},
		{Matcher: t.byRole[RoleHeading], Template: repl},
	}
	for _, p := range t.prefixes {
		if p.Role == RoleHeading {
			continue
		}
		plan = append(plan, rewrite.Operation{Matcher: p.Matcher, Template: repl})
	}
	return plan
}

// CheckboxTogglePlan returns the plan that flips a checkbox item between
// checked and unchecked, and turns any other line into an unchecked item
// using marker.
func (t *Table) CheckboxTogglePlan(marker rune) rewrite.Plan {
	m, ok := markerText(marker)
	if !ok {
		return nil
	}
	unchecked := indent + m + " [ ] "
	checked := indent + m + " [x] "
	return t.targetOrReplace(RoleUnchecked, checked, unchecked)
}

// OrderedListPlan returns the plan that removes an ordered list marker, or
// turns any other line into an ordered item using marker.
func (t *Table) OrderedListPlan(marker rune) rewrite.Plan {
	m, ok := markerText(marker)
	if !ok {
		return nil
	}
	return t.targetOrReplace(RoleOrdered, indent, indent+m+" ")
}

// UnorderedListPlan returns the plan that removes an unordered list marker,
// or turns any other line into an unordered item using marker. Checkbox
// items are converted, not stripped, since they precede plain items in
// priority: "* [x] done" becomes "* done" rather than "[x] done", which a
// removal-first plan would produce.
func (t *Table) UnorderedListPlan(marker rune) rewrite.Plan {
	m, ok := markerText(marker)
	if !ok {
		return nil
	}
	return t.targetOrReplace(RoleUnordered, indent, indent+m+" ")
}

// targetOrReplace walks the prefix rules in priority order. The target
// role's matcher gets targetTemplate and every other matcher gets other.
func (t *Table) targetOrReplace(target Role, targetTemplate, other string) rewrite.Plan {
	plan := make(rewrite.Plan, 0, len(t.prefixes))
	for _, p := range t.prefixes {
		tmpl := other
		if p.Role == target {
			tmpl = targetTemplate
		}
		plan = append(plan, rewrite.Operation{Matcher: p.Matcher, Template: tmpl})
	}
	return plan
}

// markerText validates a list marker and escapes it for use in a template.
// An unusable marker yields a no-op plan.
func markerText(marker rune) (string, bool) {
	if marker == 0 || unicode.IsSpace(marker) || !unicode.IsPrint(marker) {
		tracer().Errorf("asciidoc: unusable list marker %q", marker)
		return "", false
	}
	if marker == '$' {
		return "$$", true
	}
	return string(marker), true
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
