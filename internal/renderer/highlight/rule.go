package highlight

import (
	"strings"

	"github.com/dshills/adocmark/internal/markup/pattern"
)

// Flags gate optional classification passes.
type Flags uint8

// Flag values.
const (
	FlagLineEnding Flags = 1 << iota
	FlagCodeMonospaceFont
	FlagBiggerHeadings
	FlagCodeBlock
)

// AllFlags enables every optional pass.
const AllFlags = FlagLineEnding | FlagCodeMonospaceFont | FlagBiggerHeadings | FlagCodeBlock

// Has reports whether every flag in want is set.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// String lists the set flags.
func (f Flags) String() string {
	var parts []string
	for _, n := range flagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagLineEnding, "lineEnding"},
	{FlagCodeMonospaceFont, "codeMonospaceFont"},
	{FlagBiggerHeadings, "biggerHeadings"},
	{FlagCodeBlock, "codeBlock"},
}

// ParseFlag resolves a flag name as printed by String.
func ParseFlag(name string) (Flags, bool) {
	for _, n := range flagNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}

// Rule pairs a matcher with the effect it applies.
type Rule struct {
	// Name identifies the rule in annotations and listings.
	Name string

	// Matcher finds the spans.
	Matcher *pattern.Matcher

	// Group is the capture group to annotate (0 for the whole match).
	Group int

	// Effect is applied to every span.
	Effect Effect

	// Derive, if set, computes the effect from the matched text instead.
	// Returning false skips the span.
	Derive func(matched string) (Effect, bool)

	// Requires lists the flags that must be set for the rule to run.
	Requires Flags
}

// Enabled reports whether r runs under flags.
func (r Rule) Enabled(flags Flags) bool {
	return flags.Has(r.Requires)
}
