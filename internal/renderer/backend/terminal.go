// Package backend paints classified text on a terminal.
package backend

import (
	"context"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/rivo/uniseg"

	"github.com/dshills/adocmark/internal/renderer/core"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

func tracer() tracing.Trace {
	return tracing.Select("adocmark.backend")
}

// DefaultTabSize is used when a preview is created with a tab size below 1.
const DefaultTabSize = 4

// Frame is one classified text to display.
type Frame struct {
	Text        string
	Annotations []highlight.Annotation
}

// Preview displays frames on a tcell screen. Lines are clipped to the screen
// width and the view scrolls vertically.
type Preview struct {
	mu      sync.Mutex
	screen  tcell.Screen
	tabSize int
	base    core.Style

	frame Frame
	top   int
}

// NewTerminal creates a preview over the controlling terminal.
func NewTerminal(tabSize int) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewPreview(screen, tabSize), nil
}

// NewPreview creates a preview over screen. The screen is initialized by
// Init.
func NewPreview(screen tcell.Screen, tabSize int) *Preview {
	if tabSize < 1 {
		tabSize = DefaultTabSize
	}
	return &Preview{screen: screen, tabSize: tabSize, base: core.DefaultStyle()}
}

// SetBase sets the style unannotated text is drawn in.
func (p *Preview) SetBase(s core.Style) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = s
}

func (p *Preview) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.Init()
}

func (p *Preview) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screen.Fini()
}

func (p *Preview) Size() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen.Size()
}

// Top returns the first displayed line.
func (p *Preview) Top() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.top
}

// Draw replaces the displayed frame and repaints.
func (p *Preview) Draw(f Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = f
	p.top = p.clampTop(p.top)
	p.paint()
}

// Scroll moves the view by delta lines and repaints.
func (p *Preview) Scroll(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.top = p.clampTop(p.top + delta)
	p.paint()
}

func (p *Preview) clampTop(top int) int {
	last := strings.Count(p.frame.Text, "\n")
	if top > last {
		top = last
	}
	if top < 0 {
		top = 0
	}
	return top
}

// paint redraws the whole screen. Callers hold mu.
func (p *Preview) paint() {
	p.screen.Clear()
	width, height := p.screen.Size()

	text := p.frame.Text
	buf := highlight.NewStyleBuffer(len(text), p.base)
	highlight.Apply(p.frame.Annotations, buf)

	offset, row := 0, 0
	for i, line := range strings.SplitAfter(text, "\n") {
		if i >= p.top && row < height {
			p.paintLine(strings.TrimRight(line, "\r\n"), offset, row, width, buf)
			row++
		}
		offset += len(line)
	}
	p.screen.Show()
}

func (p *Preview) paintLine(line string, offset, row, width int, buf *highlight.StyleBuffer) {
	x := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() && x < width {
		from, _ := gr.Positions()
		style := convertStyle(p.readable(buf.At(offset + from)))
		runes := gr.Runes()
		if runes[0] == '\t' {
			for n := p.tabSize - x%p.tabSize; n > 0 && x < width; n-- {
				p.screen.SetContent(x, row, ' ', nil, style)
				x++
			}
			continue
		}
		w := gr.Width()
		if w < 1 {
			continue
		}
		if x+w > width {
			break
		}
		p.screen.SetContent(x, row, runes[0], runes[1:], style)
		x += w
	}
}

// readable swaps unannotated text on an annotated background for black or
// white, whichever contrasts with the background.
func (p *Preview) readable(s core.Style) core.Style {
	if !s.Background.IsDefault() && s.Foreground.Equals(p.base.Foreground) {
		s.Foreground = s.Background.Contrast()
	}
	return s
}

// Run shows frames until ctx is done or the user quits with q, Esc or
// Ctrl-C. Arrow and page keys scroll. The screen must be initialized.
func (p *Preview) Run(ctx context.Context, frames <-chan Frame) error {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			p.Draw(f)
		case ev := <-events:
			if p.handle(ev) {
				tracer().Debugf("backend: preview closed by user")
				return nil
			}
		}
	}
}

// handle reacts to one event and reports whether the preview should close.
func (p *Preview) handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		_, height := p.Size()
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if e.Rune() == 'q' {
				return true
			}
		case tcell.KeyUp:
			p.Scroll(-1)
		case tcell.KeyDown:
			p.Scroll(1)
		case tcell.KeyPgUp:
			p.Scroll(-height)
		case tcell.KeyPgDn:
			p.Scroll(height)
		case tcell.KeyHome:
			p.Scroll(-p.Top())
		}
	case *tcell.EventResize:
		p.mu.Lock()
		p.screen.Sync()
		p.paint()
		p.mu.Unlock()
	}
	return false
}

// convertStyle converts our Style to tcell.Style. Terminals have one font,
// so monospace is a no-op, scaled text is drawn bold and sub/superscript
// text is dimmed.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) || s.Scale > 1 {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) || s.Attributes.Has(core.AttrSubscript) || s.Attributes.Has(core.AttrSuperscript) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
		if !s.UnderlineColor.IsDefault() {
			style = style.Underline(convertColor(s.UnderlineColor))
		}
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}

func convertColor(c core.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
