package asciidoc

import (
	"strings"
	"testing"

	"github.com/dshills/adocmark/internal/markup/rewrite"
)

func apply(t *testing.T, p rewrite.Plan, line string) string {
	t.Helper()
	out, fired := p.Apply(line)
	if fired < 0 {
		t.Fatalf("no operation matched %q", line)
	}
	return out
}

func TestHeadingTogglePlan(t *testing.T) {
	tbl := mustTable(t)
	tests := []struct {
		name  string
		line  string
		level int
		want  string
	}{
		{"same level removes", "== Title", 2, "Title"},
		{"other level re-levels", "== Title", 3, "=== Title"},
		{"plain gains marker", "Title", 1, "= Title"},
		{"list item becomes heading", "* item", 2, "== item"},
		{"checkbox becomes heading", "* [x] done", 1, "= done"},
		{"ordered becomes heading", ". step", 4, "==== step"},
		{"empty line", "", 2, "== "},
		{"level clamped high", "Title", 9, "====== Title"},
		{"level clamped low", "Title", 0, "= Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, tbl.HeadingTogglePlan(tt.level), tt.line); got != tt.want {
				t.Errorf("HeadingTogglePlan(%d) on %q = %q, want %q", tt.level, tt.line, got, tt.want)
			}
		})
	}
}

func TestHeadingRoundTrip(t *testing.T) {
	tbl := mustTable(t)
	for level := 1; level <= MaxLevel; level++ {
		line := strings.Repeat("=", level) + " Title"
		p := tbl.HeadingTogglePlan(level)
		once := apply(t, p, line)
		if once != "Title" {
			t.Errorf("level %d: first toggle = %q, want %q", level, once, "Title")
		}
		if twice := apply(t, p, once); twice != line {
			t.Errorf("level %d: second toggle = %q, want %q", level, twice, line)
		}
		for other := 1; other <= MaxLevel; other++ {
			if other == level {
				continue
			}
			if got := apply(t, tbl.HeadingTogglePlan(other), line); got == line {
				t.Errorf("level %d toggled at %d returned the original line", level, other)
			}
		}
	}
}

func TestCheckboxTogglePlan(t *testing.T) {
	tbl := mustTable(t)
	p := tbl.CheckboxTogglePlan('*')

	checked := apply(t, p, "* [ ] task")
	if checked != "* [x] task" {
		t.Errorf("toggle unchecked = %q, want %q", checked, "* [x] task")
	}
	if got := apply(t, p, checked); got != "* [ ] task" {
		t.Errorf("toggle checked = %q, want %q", got, "* [ ] task")
	}

	tests := []struct{ line, want string }{
		{"task", "* [ ] task"},
		{"* item", "* [ ] item"},
		{"  * item", "  * [ ] item"},
		{". step", "* [ ] step"},
		{"== Title", "* [ ] Title"},
		{"* [X] shout", "* [ ] shout"},
	}
	for _, tt := range tests {
		if got := apply(t, p, tt.line); got != tt.want {
			t.Errorf("CheckboxTogglePlan on %q = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestListPlans(t *testing.T) {
	tbl := mustTable(t)
	tests := []struct {
		name string
		plan rewrite.Plan
		line string
		want string
	}{
		{"unordered removes", tbl.UnorderedListPlan('*'), "* item", "item"},
		{"unordered adds", tbl.UnorderedListPlan('*'), "item", "* item"},
		{"unordered from ordered", tbl.UnorderedListPlan('*'), ". step", "* step"},
		{"unordered from checkbox", tbl.UnorderedListPlan('*'), "* [x] done", "* done"},
		{"unordered custom marker", tbl.UnorderedListPlan('-'), "item", "- item"},
		{"unordered dollar marker", tbl.UnorderedListPlan('$'), "item", "$ item"},
		{"ordered removes", tbl.OrderedListPlan('.'), ". step", "step"},
		{"ordered adds", tbl.OrderedListPlan('.'), "step", ". step"},
		{"ordered from unordered", tbl.OrderedListPlan('.'), "* item", ". item"},
		{"ordered keeps indent", tbl.OrderedListPlan('.'), "    * item", "    . item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, tt.plan, tt.line); got != tt.want {
				t.Errorf("plan on %q = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

// Only the first nesting level round-trips; deeper markers are replaced by
// a single-level marker.
func TestMultiLevelDemotion(t *testing.T) {
	tbl := mustTable(t)
	tests := []struct {
		name string
		plan rewrite.Plan
		line string
		want string
	}{
		{"checkbox", tbl.CheckboxTogglePlan('*'), "** [x] deep", "* [ ] deep"},
		{"ordered", tbl.OrderedListPlan('.'), "*** deep", ". deep"},
		{"unordered", tbl.UnorderedListPlan('*'), "... deep", "* deep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, tt.plan, tt.line); got != tt.want {
				t.Errorf("plan on %q = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestPlansTotalAndIndentPreserving(t *testing.T) {
	tbl := mustTable(t)
	plans := map[string]rewrite.Plan{
		"heading1":  tbl.HeadingTogglePlan(1),
		"heading3":  tbl.HeadingTogglePlan(3),
		"checkbox":  tbl.CheckboxTogglePlan('*'),
		"ordered":   tbl.OrderedListPlan('.'),
		"unordered": tbl.UnorderedListPlan('*'),
	}
	lines := []string{
		"", "plain", "== Title", "* item", "   * item", "  . step", "  * [x] done",
		"    * [ ] open", "     text", "\ttab", "*bold*", "....",
	}
	for name, p := range plans {
		for _, line := range lines {
			out, fired := p.Apply(line)
			if fired < 0 {
				t.Errorf("%s: no operation matched %q", name, line)
				continue
			}
			lead := line[:len(line)-len(strings.TrimLeft(line, " "))]
			if !strings.HasPrefix(out, lead) {
				t.Errorf("%s: %q -> %q lost indentation %q", name, line, out, lead)
			}
		}
	}
}

func TestUnusableMarker(t *testing.T) {
	tbl := mustTable(t)
	for _, m := range []rune{0, ' ', '\n'} {
		p := tbl.UnorderedListPlan(m)
		if out, fired := p.Apply("item"); fired != -1 || out != "item" {
			t.Errorf("marker %q: Apply = %q, %d; want no-op", m, out, fired)
		}
	}
}
