package config

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/dshills/adocmark/internal/config/loader"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

// Settings is the resolved configuration. It is a plain value; copies are
// independent.
type Settings struct {
	LineEnding        bool
	CodeMonospaceFont bool
	BiggerHeadings    bool
	CodeBlock         bool
	// Delay is how long a host waits after the last edit before
	// re-highlighting.
	Delay time.Duration

	DarkMode bool

	TabSize    int
	ListMarker rune

	// RulesScript is an optional Lua file contributing extra rules.
	RulesScript string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		CodeMonospaceFont: true,
		CodeBlock:         true,
		Delay:             650 * time.Millisecond,
		TabSize:           4,
		ListMarker:        '*',
	}
}

// HighlightFlags returns the classifier flags the settings enable.
func (s Settings) HighlightFlags() highlight.Flags {
	var f highlight.Flags
	if s.LineEnding {
		f |= highlight.FlagLineEnding
	}
	if s.CodeMonospaceFont {
		f |= highlight.FlagCodeMonospaceFont
	}
	if s.BiggerHeadings {
		f |= highlight.FlagBiggerHeadings
	}
	if s.CodeBlock {
		f |= highlight.FlagCodeBlock
	}
	return f
}

// field binds one dotted setting path to a Settings member.
type field struct {
	path string
	get  func(Settings) any
	set  func(*Settings, any) error
}

var fields = []field{
	boolField("highlight.lineEnding", func(s *Settings) *bool { return &s.LineEnding }),
	boolField("highlight.codeMonospaceFont", func(s *Settings) *bool { return &s.CodeMonospaceFont }),
	boolField("highlight.biggerHeadings", func(s *Settings) *bool { return &s.BiggerHeadings }),
	boolField("highlight.codeBlock", func(s *Settings) *bool { return &s.CodeBlock }),
	{
		path: "highlight.delay",
		get:  func(s Settings) any { return s.Delay },
		set: func(s *Settings, v any) error {
			d, err := toDuration("highlight.delay", v)
			if err != nil {
				return err
			}
			if d < 0 {
				return invalid("highlight.delay", v, "must not be negative")
			}
			s.Delay = d
			return nil
		},
	},
	boolField("ui.darkMode", func(s *Settings) *bool { return &s.DarkMode }),
	{
		path: "editor.tabSize",
		get:  func(s Settings) any { return s.TabSize },
		set: func(s *Settings, v any) error {
			n, err := toInt("editor.tabSize", v)
			if err != nil {
				return err
			}
			if n < 1 {
				return invalid("editor.tabSize", v, "must be at least 1")
			}
			s.TabSize = n
			return nil
		},
	},
	{
		path: "editor.listMarker",
		get:  func(s Settings) any { return string(s.ListMarker) },
		set: func(s *Settings, v any) error {
			str, ok := v.(string)
			if !ok {
				return invalid("editor.listMarker", v, "want a string, got %T", v)
			}
			r, size := utf8.DecodeRuneInString(str)
			if size == 0 || size != len(str) || r == ' ' || r == utf8.RuneError {
				return invalid("editor.listMarker", v, "must be a single non-space character")
			}
			s.ListMarker = r
			return nil
		},
	},
	{
		path: "plugin.rulesScript",
		get:  func(s Settings) any { return s.RulesScript },
		set: func(s *Settings, v any) error {
			str, ok := v.(string)
			if !ok {
				return invalid("plugin.rulesScript", v, "want a string, got %T", v)
			}
			s.RulesScript = str
			return nil
		},
	},
}

func boolField(path string, ptr func(*Settings) *bool) field {
	return field{
		path: path,
		get:  func(s Settings) any { return *ptr(&s) },
		set: func(s *Settings, v any) error {
			b, ok := v.(bool)
			if !ok {
				return invalid(path, v, "want a boolean, got %T", v)
			}
			*ptr(s) = b
			return nil
		},
	}
}

// Paths lists every known setting path in sorted order.
func Paths() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.path
	}
	sort.Strings(out)
	return out
}

// Apply overlays the values present in data onto s. Unknown keys are
// ignored. The first invalid value is returned as a *ValidationError and s
// is left unchanged.
func (s Settings) Apply(data map[string]any) (Settings, error) {
	out := s
	for _, f := range fields {
		v, ok := loader.Lookup(data, f.path)
		if !ok {
			continue
		}
		if err := f.set(&out, v); err != nil {
			return s, err
		}
	}
	return out, nil
}

// Get returns the value of a setting path.
func (s Settings) Get(path string) (any, bool) {
	for _, f := range fields {
		if f.path == path {
			return f.get(s), true
		}
	}
	return nil, false
}

// Map returns the settings as a nested map keyed like the settings file.
func (s Settings) Map() map[string]any {
	m := make(map[string]any)
	for _, f := range fields {
		loader.SetByPath(m, f.path, f.get(s))
	}
	return m
}

// Diff lists the paths whose values differ between s and other.
func (s Settings) Diff(other Settings) []string {
	var out []string
	for _, f := range fields {
		if f.get(s) != f.get(other) {
			out = append(out, f.path)
		}
	}
	return out
}

func toDuration(path string, v any) (time.Duration, error) {
	switch x := v.(type) {
	case time.Duration:
		return x, nil
	case string:
		d, err := time.ParseDuration(x)
		if err != nil {
			return 0, invalid(path, v, "not a duration: %v", err)
		}
		return d, nil
	}
	// bare numbers are milliseconds
	ms, err := toInt(path, v)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func toInt(path string, v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, invalid(path, v, "want a whole number")
		}
		return int(x), nil
	}
	return 0, invalid(path, v, "want a number, got %T", v)
}
