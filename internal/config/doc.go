// Package config provides the settings for the highlighter and its hosts.
//
// Settings are resolved from layered sources, higher layers overriding
// lower ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← ADOCMARK_HIGHLIGHT_CODE_BLOCK=false
//	├─────────────────────────────┤
//	│  2. Settings File           │  ← settings.toml or settings.json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: file and environment loading (TOML, JSON, env)
//   - notify: change notification and observer pattern
//   - watcher: file watching for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("settings.toml"))
//	if err := cfg.Load(ctx); err != nil {
//		return err
//	}
//	flags := cfg.Settings().HighlightFlags()
//
// Subscribe to changes, then enable live reload:
//
//	cfg.SubscribePath("highlight", func(c notify.Change) { ... })
//	if err := cfg.Watch(); err != nil {
//		return err
//	}
//	defer cfg.Close()
package config
