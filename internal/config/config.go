package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dshills/adocmark/internal/config/loader"
	"github.com/dshills/adocmark/internal/config/notify"
	"github.com/dshills/adocmark/internal/config/watcher"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "ADOCMARK_"

func tracer() tracing.Trace {
	return tracing.Select("adocmark.config")
}

// Config resolves settings from defaults, an optional file and the
// environment, publishes changes and can reload the file when it changes.
type Config struct {
	mu sync.RWMutex

	settings Settings

	// Settings file; empty means defaults and environment only.
	path string
	fs   loader.FileSystem
	env  *loader.EnvLoader

	notifier *notify.Notifier
	watcher  *watcher.Watcher
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the settings file (.toml or .json).
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem replaces the file system used to read the settings file.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnv replaces the environment loader.
func WithEnv(env *loader.EnvLoader) Option {
	return func(c *Config) {
		c.env = env
	}
}

// New creates a Config holding the defaults. Call Load to read sources.
func New(opts ...Option) *Config {
	c := &Config{
		settings: Defaults(),
		fs:       loader.DefaultFS(),
		env:      loader.NewEnvLoader(EnvPrefix),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load resolves every source and replaces the current settings. Observers
// are told about each setting that changed.
func (c *Config) Load(_ context.Context) error {
	return c.reload("load")
}

// Reload re-reads the sources. On error the current settings are kept.
func (c *Config) Reload() error {
	return c.reload("reload")
}

func (c *Config) reload(source string) error {
	next, err := c.resolve()
	if err != nil {
		tracer().Errorf("config: %s failed, keeping current settings: %v", source, err)
		return err
	}

	c.mu.Lock()
	prev := c.settings
	c.settings = next
	c.mu.Unlock()

	var changes []notify.Change
	for _, path := range prev.Diff(next) {
		old, _ := prev.Get(path)
		val, _ := next.Get(path)
		changes = append(changes, notify.Change{Path: path, OldValue: old, NewValue: val, Source: source})
	}
	tracer().Debugf("config: %s applied, %d changes", source, len(changes))
	c.notifier.NotifyAll(changes)
	return nil
}

func (c *Config) resolve() (Settings, error) {
	layers := []struct {
		name string
		load func() (map[string]any, error)
	}{
		{"file", c.loadFile},
		{"env", c.env.Load},
	}

	s := Defaults()
	for _, l := range layers {
		data, err := l.load()
		if err != nil {
			return Settings{}, err
		}
		if s, err = s.Apply(data); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", l.name, err)
		}
	}
	return s, nil
}

func (c *Config) loadFile() (map[string]any, error) {
	if c.path == "" {
		return nil, nil
	}
	l, err := loader.ForFile(c.fs, c.path)
	if err != nil {
		return nil, err
	}
	return l.Load()
}

// Settings returns the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Path returns the settings file path, if any.
func (c *Config) Path() string {
	return c.path
}

// Subscribe registers an observer for all setting changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes at or below path.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Watch reloads the settings whenever the settings file changes. Reload
// errors are logged and the previous settings stay in effect.
func (c *Config) Watch(opts ...watcher.Option) error {
	if c.path == "" {
		return ErrNoFile
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher != nil {
		return nil
	}
	w, err := watcher.New(c.path, func(string) { _ = c.Reload() }, opts...)
	if err != nil {
		return fmt.Errorf("watching %s: %w", c.path, err)
	}
	c.watcher = w
	return nil
}

// Close stops watching.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		return w.Close()
	}
	return nil
}
