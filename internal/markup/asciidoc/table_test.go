package asciidoc

import (
	"testing"
)

func mustTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable()
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestDefaultTableCompiles(t *testing.T) {
	tbl, err := DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable() error = %v", err)
	}
	if tbl != MustDefaultTable() {
		t.Error("DefaultTable() is not shared")
	}
	for _, r := range tbl.Roles() {
		if tbl.Matcher(r) == nil {
			t.Errorf("Matcher(%v) = nil", r)
		}
	}
}

func TestPrefixOrder(t *testing.T) {
	tbl := mustTable(t)
	var got []Role
	for _, p := range tbl.Prefixes() {
		got = append(got, p.Role)
	}
	want := []Role{RoleHeading, RoleChecked, RoleUnchecked, RoleCheckbox, RoleOrdered, RoleUnordered, RoleLeadingSpace}
	if len(got) != len(want) {
		t.Fatalf("Prefixes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Prefixes()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPrefixRole(t *testing.T) {
	tbl := mustTable(t)
	tests := []struct {
		line string
		want Role
	}{
		{"== Title", RoleHeading},
		{"* [x] text", RoleChecked},
		{"* [X] text", RoleChecked},
		{"* [*] text", RoleChecked},
		{"* [ ] text", RoleUnchecked},
		{"  ** [x] nested", RoleChecked},
		{". step", RoleOrdered},
		{"* item", RoleUnordered},
		{"   *** deep", RoleUnordered},
		{"plain", RoleLeadingSpace},
		{"", RoleLeadingSpace},
		{"*bold* start", RoleLeadingSpace},
		{"x == not heading", RoleLeadingSpace},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := tbl.PrefixRole(tt.line); got != tt.want {
				t.Errorf("PrefixRole(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRoleNames(t *testing.T) {
	if RoleChecked.String() != "checked" || RoleTableBlock.String() != "table-block" {
		t.Errorf("unexpected names %q, %q", RoleChecked, RoleTableBlock)
	}
	if Role(999).String() != "unknown" {
		t.Errorf("Role(999).String() = %q", Role(999))
	}
	if !RoleCommentBlock.IsBlock() || RoleBold.IsBlock() {
		t.Error("IsBlock() misclassifies roles")
	}
}

func TestBlockTitle(t *testing.T) {
	m := mustTable(t).Matcher(RoleBlockTitle)
	tests := []struct {
		line string
		want bool
	}{
		{".Sample title", true},
		{".x", true},
		{". item", false},
		{"..two", false},
		{".(x)", false},
		{".|cell", false},
		{".)", false},
		{"text .Title", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := m.MatchString(tt.line)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
