// Package pattern wraps the regular expression engine used by the markup
// layer.
//
// Markup rules need look-around assertions and backreferences, which the
// standard library engine does not provide. Matches are reported in byte
// offsets of the searched text, regardless of how the engine indexes
// internally.
package pattern

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// DefaultTimeout bounds a single match attempt. A pattern that runs longer
// reports ErrTimeout instead of blocking the caller.
const DefaultTimeout = 250 * time.Millisecond

// ErrTimeout is returned when a match attempt exceeds its time budget.
var ErrTimeout = errors.New("pattern: match timed out")

// CompileError reports a pattern that failed to compile.
type CompileError struct {
	Name string
	Expr string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern %s: compile %q: %v", e.Name, e.Expr, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Matcher is a compiled, named pattern. A Matcher is immutable and safe for
// concurrent use.
type Matcher struct {
	name string
	expr string
	re   *regexp2.Regexp
}

// Compile compiles expr in multi-line mode, so ^ and $ match at line
// boundaries.
func Compile(name, expr string) (*Matcher, error) {
	re, err := regexp2.Compile(expr, regexp2.Multiline)
	if err != nil {
		return nil, &CompileError{Name: name, Expr: expr, Err: err}
	}
	re.MatchTimeout = DefaultTimeout
	return &Matcher{name: name, expr: expr, re: re}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level tables built from literals.
func MustCompile(name, expr string) *Matcher {
	m, err := Compile(name, expr)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the name the matcher was compiled with.
func (m *Matcher) Name() string {
	return m.name
}

// String returns the source expression.
func (m *Matcher) String() string {
	return m.expr
}

// Span is a half-open byte range. A Span with Start < 0 did not participate
// in the match.
type Span struct {
	Start, End int
}

// Empty reports whether the span covers no bytes or did not participate.
func (s Span) Empty() bool {
	return s.Start < 0 || s.End <= s.Start
}

// Match is a single occurrence of a pattern. Groups[0] is the whole match.
type Match struct {
	Groups []Span
}

// Span returns the span of the whole match.
func (m Match) Span() Span {
	return m.Groups[0]
}

// Group returns the span of capture group n, or an unset span if the group
// does not exist or did not participate.
func (m Match) Group(n int) Span {
	if n < 0 || n >= len(m.Groups) {
		return Span{Start: -1, End: -1}
	}
	return m.Groups[n]
}

// FindAll returns every non-overlapping match in text, in order.
func (m *Matcher) FindAll(text string) ([]Match, error) {
	runes := []rune(text)
	offsets := byteOffsets(text, len(runes))

	var out []Match
	res, err := m.re.FindRunesMatch(runes)
	for err == nil && res != nil {
		out = append(out, convert(res, offsets))
		res, err = m.re.FindNextMatch(res)
	}
	if err != nil {
		return out, m.wrap(err)
	}
	return out, nil
}

// MatchString reports whether text contains a match.
func (m *Matcher) MatchString(text string) (bool, error) {
	ok, err := m.re.MatchString(text)
	if err != nil {
		return false, m.wrap(err)
	}
	return ok, nil
}

// MatchesAtStart reports whether the first match in line begins at offset 0.
func (m *Matcher) MatchesAtStart(line string) (bool, error) {
	res, err := m.re.FindStringMatch(line)
	if err != nil {
		return false, m.wrap(err)
	}
	return res != nil && res.Index == 0, nil
}

// ReplaceAtStart replaces the first match in line with template when that
// match begins at offset 0. Templates reference groups as ${n}. The boolean
// result reports whether a replacement happened.
func (m *Matcher) ReplaceAtStart(line, template string) (string, bool, error) {
	ok, err := m.MatchesAtStart(line)
	if err != nil || !ok {
		return line, false, err
	}
	out, err := m.re.Replace(line, template, 0, 1)
	if err != nil {
		return line, false, m.wrap(err)
	}
	return out, true, nil
}

func (m *Matcher) wrap(err error) error {
	// regexp2 reports timeouts with a plain formatted error.
	if m.re.MatchTimeout > 0 && isTimeout(err) {
		return fmt.Errorf("%s: %w", m.name, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", m.name, err)
}

func isTimeout(err error) bool {
	return strings.Contains(err.Error(), "match timeout")
}

// byteOffsets maps rune index i to its byte offset in text. The extra
// trailing entry maps len(runes) to len(text).
func byteOffsets(text string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := 0; i < len(text); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return append(offsets, len(text))
}

func convert(res *regexp2.Match, offsets []int) Match {
	groups := res.Groups()
	out := Match{Groups: make([]Span, len(groups))}
	for i := range groups {
		g := &groups[i]
		if len(g.Captures) == 0 {
			out.Groups[i] = Span{Start: -1, End: -1}
			continue
		}
		out.Groups[i] = Span{
			Start: offsets[g.Index],
			End:   offsets[g.Index+g.Length],
		}
	}
	return out
}
