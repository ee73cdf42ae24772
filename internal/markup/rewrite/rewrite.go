// Package rewrite applies ordered line-prefix replacement plans to lines of
// text.
//
// A Plan is a sequence of operations. For each line, the first operation
// whose matcher matches at the start of the line fires and the rest are
// skipped. Plans that end with an always-matching operation are total.
package rewrite

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dshills/adocmark/internal/markup/pattern"
)

func tracer() tracing.Trace {
	return tracing.Select("adocmark.rewrite")
}

// Operation replaces the first match of Matcher, when it starts the line,
// with Template. Templates reference capture groups as ${n}.
type Operation struct {
	Matcher  *pattern.Matcher
	Template string
}

// Plan is an ordered list of operations; the first match wins.
type Plan []Operation

// Apply rewrites a single line. It returns the new line and the index of the
// operation that fired, or -1 if none did. A matcher error is logged and
// treated as a non-match.
func (p Plan) Apply(line string) (string, int) {
	for i, op := range p {
		out, ok, err := op.Matcher.ReplaceAtStart(line, op.Template)
		if err != nil {
			tracer().Errorf("rewrite: %v", err)
			continue
		}
		if ok {
			return out, i
		}
	}
	return line, -1
}

// ApplyToLines rewrites lines first through last (zero-based, inclusive) of
// text and leaves every other line untouched. Line terminators, including
// \r\n pairs, are preserved. Out-of-range bounds are clamped.
func ApplyToLines(text string, first, last int, p Plan) string {
	lines := strings.SplitAfter(text, "\n")
	if first < 0 {
		first = 0
	}
	if last >= len(lines) {
		last = len(lines) - 1
	}
	if first > last {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 16*(last-first+1))
	for i, l := range lines {
		if i < first || i > last {
			b.WriteString(l)
			continue
		}
		body, eol := splitEOL(l)
		out, fired := p.Apply(body)
		tracer().Debugf("rewrite: line %d op %d: %q -> %q", i, fired, body, out)
		b.WriteString(out)
		b.WriteString(eol)
	}
	return b.String()
}

// LineSpan returns the zero-based first and last line indexes covered by
// the byte range [start, end) of text. A collapsed range covers the line
// holding start. A range ending right after a newline does not include the
// following line.
func LineSpan(text string, start, end int) (int, int) {
	start = clamp(start, 0, len(text))
	end = clamp(end, start, len(text))
	first := strings.Count(text[:start], "\n")
	if end > start && text[end-1] == '\n' {
		end--
	}
	last := first + strings.Count(text[start:end], "\n")
	return first, last
}

func splitEOL(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
