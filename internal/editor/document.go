// Package editor connects the highlighter and the line rewriter to a
// document being edited.
package editor

import (
	"sort"
	"strings"

	"github.com/dshills/adocmark/internal/markup/rewrite"
)

// Selection is a byte range [Start, End) of a document. A collapsed
// selection is a caret.
type Selection struct {
	Start, End int
}

// Caret returns a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// Document is an immutable text with a line index.
type Document struct {
	text   string
	starts []int
}

// NewDocument indexes text.
func NewDocument(text string) Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return Document{text: text, starts: starts}
}

// Text returns the full text.
func (d Document) Text() string {
	return d.text
}

// LineCount returns the number of lines. An empty document has one.
func (d Document) LineCount() int {
	if d.starts == nil {
		return 1
	}
	return len(d.starts)
}

// Line returns line i without its terminator.
func (d Document) Line(i int) (string, bool) {
	if i < 0 || i >= d.LineCount() {
		return "", false
	}
	if d.starts == nil {
		return "", true
	}
	end := len(d.text)
	if i+1 < len(d.starts) {
		end = d.starts[i+1] - 1
	}
	return strings.TrimSuffix(d.text[d.starts[i]:end], "\r"), true
}

// LineAt returns the index of the line holding byte offset.
func (d Document) LineAt(offset int) int {
	if d.starts == nil {
		return 0
	}
	i := sort.Search(len(d.starts), func(i int) bool { return d.starts[i] > offset }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// LineStart returns the byte offset where line i begins.
func (d Document) LineStart(i int) int {
	if i <= 0 || d.starts == nil {
		return 0
	}
	if i >= len(d.starts) {
		return len(d.text)
	}
	return d.starts[i]
}

// Rewrite applies plan to every line the selection touches.
func (d Document) Rewrite(sel Selection, plan rewrite.Plan) Document {
	first, last := rewrite.LineSpan(d.text, sel.Start, sel.End)
	return NewDocument(rewrite.ApplyToLines(d.text, first, last, plan))
}
