package highlight

import (
	"fmt"

	"github.com/dshills/adocmark/internal/renderer/core"
)

// Annotation is a styled byte range [Start, End) of the classified text.
// Rule names the rule that produced it.
type Annotation struct {
	Start, End int
	Effect     Effect
	Rule       string
}

func (a Annotation) String() string {
	return fmt.Sprintf("%d-%d %s %s", a.Start, a.End, a.Rule, a.Effect)
}

// Annotator is the rendering side's capability to apply one effect to a
// range of text.
type Annotator interface {
	Annotate(start, end int, e Effect)
}

// AnnotatorFunc adapts a function to the Annotator interface.
type AnnotatorFunc func(start, end int, e Effect)

// Annotate calls f.
func (f AnnotatorFunc) Annotate(start, end int, e Effect) {
	f(start, end, e)
}

// Apply hands every annotation to a, in order. Later annotations layer
// over earlier ones.
func Apply(anns []Annotation, a Annotator) {
	for _, ann := range anns {
		a.Annotate(ann.Start, ann.End, ann.Effect)
	}
}

// StyleBuffer holds one style per byte of a text. It is the in-memory
// Annotator used by the terminal preview.
type StyleBuffer struct {
	styles []core.Style
}

// NewStyleBuffer returns a buffer of n bytes, all set to base.
func NewStyleBuffer(n int, base core.Style) *StyleBuffer {
	b := &StyleBuffer{styles: make([]core.Style, n)}
	for i := range b.styles {
		b.styles[i] = base
	}
	return b
}

// Annotate layers e over the bytes in [start, end), clipped to the buffer.
func (b *StyleBuffer) Annotate(start, end int, e Effect) {
	if start < 0 {
		start = 0
	}
	if end > len(b.styles) {
		end = len(b.styles)
	}
	for i := start; i < end; i++ {
		b.styles[i] = e.Apply(b.styles[i])
	}
}

// At returns the style of byte i.
func (b *StyleBuffer) At(i int) core.Style {
	if i < 0 || i >= len(b.styles) {
		return core.DefaultStyle()
	}
	return b.styles[i]
}

// Len returns the number of bytes covered.
func (b *StyleBuffer) Len() int {
	return len(b.styles)
}
