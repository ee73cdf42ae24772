package asciidoc

import "github.com/dshills/adocmark/internal/markup/pattern"

// FormatPatterns are the matchers used to continue a list when a new line
// is started after an item.
type FormatPatterns struct {
	Unordered *pattern.Matcher
	Checkbox  *pattern.Matcher
	Ordered   *pattern.Matcher
	// Indent is the nesting step, in spaces.
	Indent int
}

// FormatPatterns returns the list-continuation matchers of the table.
func (t *Table) FormatPatterns() FormatPatterns {
	return FormatPatterns{
		Unordered: t.byRole[RoleUnordered],
		Checkbox:  t.byRole[RoleCheckbox],
		Ordered:   t.byRole[RoleOrdered],
		Indent:    2,
	}
}

// ContinueList returns the prefix to start the line following line with.
// Checkbox items continue as unchecked items and list items keep their
// marker run and indentation. The boolean is false when line is not a list
// item, or when the item is empty, which ends the list.
func (t *Table) ContinueList(line string) (string, bool) {
	fp := t.FormatPatterns()
	for _, c := range []struct {
		m      *pattern.Matcher
		suffix string
	}{
		{fp.Checkbox, " [ ] "},
		{fp.Ordered, " "},
		{fp.Unordered, " "},
	} {
		found, err := c.m.FindAll(line)
		if err != nil {
			tracer().Errorf("asciidoc: %v", err)
			continue
		}
		if len(found) == 0 || found[0].Span().Start != 0 {
			continue
		}
		whole := found[0].Span()
		if whole.End == len(line) {
			return "", false
		}
		lead, run := found[0].Group(1), found[0].Group(3)
		return line[lead.Start:lead.End] + line[run.Start:run.End] + c.suffix, true
	}
	return "", false
}
