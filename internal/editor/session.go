package editor

import (
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dshills/adocmark/internal/config"
	"github.com/dshills/adocmark/internal/config/notify"
	"github.com/dshills/adocmark/internal/markup/asciidoc"
	"github.com/dshills/adocmark/internal/markup/rewrite"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

func tracer() tracing.Trace {
	return tracing.Select("adocmark.editor")
}

// Toggle names a structural role change applied to the selected lines.
type Toggle int

// Toggles.
const (
	ToggleHeading Toggle = iota
	ToggleCheckbox
	ToggleOrderedList
	ToggleUnorderedList
)

// orderedMarker is the AsciiDoc ordered list glyph.
const orderedMarker = '.'

// Result is one completed classification.
type Result struct {
	// Generation identifies the text and settings it was computed for.
	Generation  uint64
	Text        string
	Annotations []highlight.Annotation
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithExtraRules adds rules that run after the built-in ones.
func WithExtraRules(rules []highlight.Rule) SessionOption {
	return func(s *Session) {
		s.extra = rules
	}
}

// OnHighlight registers a function receiving each fresh result. Results
// computed for a superseded generation are dropped, not delivered.
func OnHighlight(fn func(Result)) SessionOption {
	return func(s *Session) {
		s.onResult = fn
	}
}

// Session holds a document, the active settings and the latest
// highlighting result. Edits schedule a debounced re-highlight.
type Session struct {
	mu sync.Mutex

	table      *asciidoc.Table
	classifier *highlight.Classifier
	extra      []highlight.Rule
	settings   config.Settings

	doc    Document
	gen    uint64
	latest Result

	debouncer *Debouncer
	onResult  func(Result)
	sub       *notify.Subscription
}

// NewSession creates a session over text.
func NewSession(table *asciidoc.Table, settings config.Settings, text string, opts ...SessionOption) *Session {
	s := &Session{
		table:    table,
		settings: settings,
		doc:      NewDocument(text),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.classifier = s.buildClassifier(settings)
	s.debouncer = NewDebouncer(settings.Delay, s.highlight)
	return s
}

func (s *Session) buildClassifier(settings config.Settings) *highlight.Classifier {
	c := asciidoc.NewClassifier(s.table, asciidoc.PaletteFor(settings.DarkMode))
	c = c.With(asciidoc.LineEndingRule(s.table, asciidoc.PaletteFor(settings.DarkMode)))
	return c.With(s.extra...)
}

// Text returns the current text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Text()
}

// Document returns the current document.
func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Generation returns the current generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Settings returns the active settings.
func (s *Session) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetText replaces the document and schedules a re-highlight.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	s.doc = NewDocument(text)
	s.gen++
	s.mu.Unlock()
	s.debouncer.Call()
}

// Apply rewrites the lines touched by sel and schedules a re-highlight.
// level is used by ToggleHeading only.
func (s *Session) Apply(t Toggle, sel Selection, level int) string {
	s.mu.Lock()
	plan := s.plan(t, level)
	s.doc = s.doc.Rewrite(sel, plan)
	s.gen++
	text := s.doc.Text()
	s.mu.Unlock()

	tracer().Debugf("editor: toggle %d on %d-%d", t, sel.Start, sel.End)
	s.debouncer.Call()
	return text
}

func (s *Session) plan(t Toggle, level int) rewrite.Plan {
	switch t {
	case ToggleHeading:
		return s.table.HeadingTogglePlan(level)
	case ToggleCheckbox:
		return s.table.CheckboxTogglePlan(s.settings.ListMarker)
	case ToggleOrderedList:
		return s.table.OrderedListPlan(orderedMarker)
	case ToggleUnorderedList:
		return s.table.UnorderedListPlan(s.settings.ListMarker)
	}
	tracer().Errorf("editor: unknown toggle %d", t)
	return nil
}

// ContinueList returns the prefix for a new line started after the line
// holding offset.
func (s *Session) ContinueList(offset int) (string, bool) {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()
	line, _ := doc.Line(doc.LineAt(offset))
	return s.table.ContinueList(line)
}

// ApplySettings switches to new settings. The palette, flags and delay take
// effect for the next highlight, which is scheduled right away.
func (s *Session) ApplySettings(settings config.Settings) {
	c := s.buildClassifier(settings)
	s.mu.Lock()
	s.settings = settings
	s.classifier = c
	s.gen++
	s.mu.Unlock()
	s.debouncer.SetDelay(settings.Delay)
	s.debouncer.Call()
}

// Follow applies every settings change published by cfg until Close.
func (s *Session) Follow(cfg *config.Config) {
	sub := cfg.Subscribe(func(notify.Change) {
		s.ApplySettings(cfg.Settings())
	})
	s.mu.Lock()
	old := s.sub
	s.sub = sub
	s.mu.Unlock()
	old.Unsubscribe()
}

// Flush runs a pending highlight now.
func (s *Session) Flush() {
	s.debouncer.Flush()
}

// Highlight classifies the current text synchronously, bypassing the
// delay, and returns the result.
func (s *Session) Highlight() Result {
	s.debouncer.Cancel()
	s.highlight()
	return s.Latest()
}

// Latest returns the most recent delivered result.
func (s *Session) Latest() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Pending reports whether a highlight is scheduled.
func (s *Session) Pending() bool {
	return s.debouncer.IsPending()
}

func (s *Session) highlight() {
	s.mu.Lock()
	gen, text := s.gen, s.doc.Text()
	c, flags := s.classifier, s.settings.HighlightFlags()
	s.mu.Unlock()

	anns := c.Classify(text, flags)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		tracer().Debugf("editor: dropping stale result for generation %d", gen)
		return
	}
	res := Result{Generation: gen, Text: text, Annotations: anns}
	s.latest = res
	fn := s.onResult
	s.mu.Unlock()

	if fn != nil {
		fn(res)
	}
}

// Close cancels pending work and stops following settings.
func (s *Session) Close() {
	s.debouncer.Cancel()
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	sub.Unsubscribe()
}
