// Command adocmark highlights and edits AsciiDoc text from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"golang.org/x/term"

	"github.com/dshills/adocmark/internal/config"
	"github.com/dshills/adocmark/internal/config/loader"
	"github.com/dshills/adocmark/internal/markup/asciidoc"
	luaplugin "github.com/dshills/adocmark/internal/plugin/lua"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Highlight HighlightCmd `cmd:"" help:"Print the spans an AsciiDoc file is highlighted with."`
	Toggle    ToggleCmd    `cmd:"" help:"Toggle a heading or list prefix on a range of lines."`
	Preview   PreviewCmd   `cmd:"" help:"Show a highlighted, live-reloading preview in the terminal."`
	Rules     RulesCmd     `cmd:"" help:"List the highlighting rules in application order."`
	Version   VersionCmd   `cmd:"" help:"Print version information."`
}

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" help:"Settings file (.toml or .json)."`
	LogLevel string `name:"log-level" default:"error" enum:"debug,info,error" help:"Log level (debug, info, error)."`
	LogFile  string `name:"log-file" type:"path" help:"Write logs to this file instead of stderr."`

	in  io.Reader
	out io.Writer
	fs  loader.FileSystem
	log io.Closer
}

func main() {
	var cli CLI
	cli.in, cli.out, cli.fs = os.Stdin, os.Stdout, loader.DefaultFS()
	ctx := kong.Parse(&cli,
		kong.Name("adocmark"),
		kong.Description("AsciiDoc highlighting and line-prefix editing."),
		kong.UsageOnError(),
	)
	err := cli.setupTracing()
	if err == nil {
		err = ctx.Run(&cli.Globals)
	}
	cli.closeLog()
	ctx.FatalIfErrorf(err)
}

// setupTracing routes every tracer to a Go logger at the requested level.
func (g *Globals) setupTracing() error {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	t := tracing.Select("adocmark")
	t.SetTraceLevel(tracing.TraceLevelFromString(g.LogLevel))
	if g.LogFile == "" {
		return nil
	}
	f, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	t.SetOutput(f)
	g.log = f
	return nil
}

func (g *Globals) closeLog() {
	if g.log != nil {
		_ = g.log.Close()
	}
}

// loadConfig resolves settings from the settings file and environment.
func (g *Globals) loadConfig(ctx context.Context) (*config.Config, error) {
	opts := []config.Option{config.WithFileSystem(g.fs)}
	if g.Config != "" {
		opts = append(opts, config.WithFile(g.Config))
	}
	cfg := config.New(opts...)
	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

// extraRules loads the rules script named in the settings, if any.
func (g *Globals) extraRules(ctx context.Context, s config.Settings) ([]highlight.Rule, error) {
	if s.RulesScript == "" {
		return nil, nil
	}
	return luaplugin.LoadRulesFile(ctx, g.fs, s.RulesScript)
}

// readInput reads path, or standard input for "-".
func (g *Globals) readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(g.in)
		return string(b), err
	}
	b, err := g.fs.ReadFile(path)
	return string(b), err
}

func table() *asciidoc.Table {
	return asciidoc.MustDefaultTable()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// VersionCmd prints build information.
type VersionCmd struct{}

func (VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.out, "adocmark %s\n", version)
	fmt.Fprintf(g.out, "Commit: %s\n", commit)
	fmt.Fprintf(g.out, "Built: %s\n", date)
	return nil
}
