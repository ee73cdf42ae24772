package loader

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// EnvLoader loads settings from environment variables.
type EnvLoader struct {
	prefix  string            // Variable prefix, e.g. "ADOCMARK_"
	mapping map[string]string // Variable -> setting path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "ADOCMARK_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: map[string]string{},
		environ: os.Environ,
	}
}

// WithEnviron replaces the process environment, for tests.
func (l *EnvLoader) WithEnviron(env []string) *EnvLoader {
	l.environ = func() []string { return env }
	return l
}

// AddMapping maps a variable to a setting path explicitly, bypassing the
// name conversion.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.mapping[envVar] = path
}

// Load reads prefixed variables and returns a settings map.
// Empty values are kept as empty strings, not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	settings := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			if !strings.HasPrefix(name, l.prefix) {
				continue
			}
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		SetByPath(settings, path, ParseValue(value))
	}
	return settings, nil
}

// envToPath converts ADOCMARK_EDITOR_TAB_SIZE to editor.tabSize.
// The first part is the section; the rest form a camelCase setting name.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}
	name := strings.ToLower(parts[1])
	for _, p := range parts[2:] {
		if p != "" {
			name += strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + name
}

// ParseValue converts a string into the most specific value it reads as:
// bool, int, float, duration, JSON array or object, else the string.
func ParseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}
