package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dshills/adocmark/internal/config"
	"github.com/dshills/adocmark/internal/config/watcher"
	"github.com/dshills/adocmark/internal/editor"
	"github.com/dshills/adocmark/internal/renderer/backend"
	"github.com/dshills/adocmark/internal/renderer/core"
)

// PreviewCmd shows a file in the terminal and re-highlights it as the file
// or the settings change.
type PreviewCmd struct {
	File  string `arg:"" type:"existingfile" help:"AsciiDoc file to preview."`
	Watch bool   `default:"true" negatable:"" help:"Reload when the file or the settings file changes."`
}

func (c *PreviewCmd) Run(g *Globals) error {
	if !isTerminal(os.Stdout) {
		return errors.New("preview needs a terminal")
	}
	if g.LogFile == "" {
		tracing.Select("adocmark").SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := g.loadConfig(ctx)
	if err != nil {
		return err
	}
	defer cfg.Close()
	settings := cfg.Settings()
	extra, err := g.extraRules(ctx, settings)
	if err != nil {
		return err
	}
	text, err := g.readInput(c.File)
	if err != nil {
		return err
	}

	frames := make(chan backend.Frame, 1)
	s := editor.NewSession(table(), settings, text,
		editor.WithExtraRules(extra),
		editor.OnHighlight(func(r editor.Result) {
			sendLatest(frames, backend.Frame{Text: r.Text, Annotations: r.Annotations})
		}))
	defer s.Close()

	if c.Watch {
		s.Follow(cfg)
		if err := cfg.Watch(); err != nil && !errors.Is(err, config.ErrNoFile) {
			return err
		}
		w, err := watcher.New(c.File, func(path string) {
			b, err := g.fs.ReadFile(path)
			if err != nil {
				return
			}
			s.SetText(string(b))
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	p, err := backend.NewTerminal(settings.TabSize)
	if err != nil {
		return err
	}
	if err := p.Init(); err != nil {
		return err
	}
	defer p.Shutdown()
	if settings.DarkMode {
		p.SetBase(core.NewStyle(core.ColorWhite).WithBackground(core.ColorBlack))
	}

	first := s.Highlight()
	sendLatest(frames, backend.Frame{Text: first.Text, Annotations: first.Annotations})
	if err := p.Run(ctx, frames); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// sendLatest queues f, replacing a frame that was not yet drawn.
func sendLatest(frames chan backend.Frame, f backend.Frame) {
	for {
		select {
		case frames <- f:
			return
		default:
		}
		select {
		case <-frames:
		default:
		}
	}
}
