package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/dshills/adocmark/internal/config/loader"
	"github.com/dshills/adocmark/internal/config/notify"
	"github.com/dshills/adocmark/internal/config/watcher"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

func noEnv() *loader.EnvLoader {
	return loader.NewEnvLoader(EnvPrefix).WithEnviron(nil)
}

func TestDefaults(t *testing.T) {
	c := New(WithEnv(noEnv()))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s := c.Settings()
	if diff := cmp.Diff(Defaults(), s); diff != "" {
		t.Errorf("Settings() mismatch (-want +got):\n%s", diff)
	}
	want := highlight.FlagCodeMonospaceFont | highlight.FlagCodeBlock
	if got := s.HighlightFlags(); got != want {
		t.Errorf("HighlightFlags() = %v, want %v", got, want)
	}
}

func TestLayering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "adocmark.config")
	defer teardown()

	files := memFS{"/s.toml": `
[highlight]
lineEnding = true
codeBlock = false
delay = "200ms"
[editor]
tabSize = 2
listMarker = "-"
`}
	env := loader.NewEnvLoader(EnvPrefix).WithEnviron([]string{
		"ADOCMARK_EDITOR_TAB_SIZE=8",
		"ADOCMARK_UI_DARK_MODE=true",
	})
	c := New(WithFile("/s.toml"), WithFileSystem(files), WithEnv(env))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Defaults()
	want.LineEnding = true
	want.CodeBlock = false
	want.Delay = 200 * time.Millisecond
	want.TabSize = 8
	want.ListMarker = '-'
	want.DarkMode = true
	if diff := cmp.Diff(want, c.Settings()); diff != "" {
		t.Errorf("Settings() mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFileAndMillis(t *testing.T) {
	files := memFS{"/s.json": `{"highlight": {"delay": 120, "biggerHeadings": true}}`}
	c := New(WithFile("/s.json"), WithFileSystem(files), WithEnv(noEnv()))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s := c.Settings()
	if s.Delay != 120*time.Millisecond || !s.BiggerHeadings {
		t.Errorf("Settings() = %+v", s)
	}
}

func TestInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"negative delay", map[string]any{"highlight": map[string]any{"delay": "-1s"}}},
		{"zero tab size", map[string]any{"editor": map[string]any{"tabSize": int64(0)}}},
		{"fractional tab size", map[string]any{"editor": map[string]any{"tabSize": 2.5}}},
		{"long marker", map[string]any{"editor": map[string]any{"listMarker": "**"}}},
		{"space marker", map[string]any{"editor": map[string]any{"listMarker": " "}}},
		{"bool as string", map[string]any{"ui": map[string]any{"darkMode": "yes"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Defaults()
			got, err := base.Apply(tt.data)
			if !errors.Is(err, ErrInvalidSetting) {
				t.Fatalf("Apply() error = %v, want ErrInvalidSetting", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path == "" {
				t.Errorf("Apply() error = %v, want *ValidationError with a path", err)
			}
			if diff := cmp.Diff(base, got); diff != "" {
				t.Errorf("Apply() changed settings on error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrorKeepsSettings(t *testing.T) {
	files := memFS{"/s.toml": "[editor]\ntabSize = -3\n"}
	c := New(WithFile("/s.toml"), WithFileSystem(files), WithEnv(noEnv()))
	if err := c.Load(context.Background()); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("Load() error = %v, want ErrInvalidSetting", err)
	}
	if diff := cmp.Diff(Defaults(), c.Settings()); diff != "" {
		t.Errorf("Settings() changed (-want +got):\n%s", diff)
	}

	files["/s.toml"] = "[editor\n"
	var pe *ParseError
	if err := c.Reload(); !errors.As(err, &pe) {
		t.Errorf("Reload() error = %v, want *ParseError", err)
	}
}

func TestReloadNotifies(t *testing.T) {
	files := memFS{"/s.toml": "[ui]\ndarkMode = false\n"}
	c := New(WithFile("/s.toml"), WithFileSystem(files), WithEnv(noEnv()))
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	var got []notify.Change
	c.SubscribePath("ui", func(ch notify.Change) { got = append(got, ch) })
	var all []string
	c.Subscribe(func(ch notify.Change) { all = append(all, ch.Path) })

	files["/s.toml"] = "[ui]\ndarkMode = true\n[editor]\ntabSize = 3\n"
	if err := c.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	want := []notify.Change{{Path: "ui.darkMode", OldValue: false, NewValue: true, Source: "reload"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ui changes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ui.darkMode", "editor.tabSize"}, all); diff != "" {
		t.Errorf("all changes mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsMapAndPaths(t *testing.T) {
	m := Defaults().Map()
	if v, ok := loader.Lookup(m, "editor.listMarker"); !ok || v != "*" {
		t.Errorf("Map() editor.listMarker = %v, %v", v, ok)
	}
	round, err := Settings{}.Apply(m)
	if err != nil {
		t.Fatalf("Apply(Map()) error = %v", err)
	}
	if diff := cmp.Diff(Defaults(), round); diff != "" {
		t.Errorf("Apply(Map()) mismatch (-want +got):\n%s", diff)
	}
	if len(Paths()) != 9 {
		t.Errorf("Paths() = %v", Paths())
	}
}

func TestWatchWithoutFile(t *testing.T) {
	if err := New().Watch(); !errors.Is(err, ErrNoFile) {
		t.Errorf("Watch() error = %v, want ErrNoFile", err)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("[ui]\ndarkMode = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(WithFile(path), WithEnv(noEnv()))
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	changed := false
	c.SubscribePath("ui.darkMode", func(notify.Change) {
		mu.Lock()
		changed = true
		mu.Unlock()
	})
	if err := c.Watch(watcher.WithDebounce(20 * time.Millisecond)); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer c.Close()

	if err := os.WriteFile(path, []byte("[ui]\ndarkMode = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := changed
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !c.Settings().DarkMode {
		t.Error("DarkMode not reloaded")
	}
}
