package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/adocmark/internal/config"
	"github.com/dshills/adocmark/internal/editor"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

// HighlightCmd classifies a file and prints its annotations.
type HighlightCmd struct {
	File   string `arg:"" default:"-" help:"AsciiDoc file, - for standard input."`
	JSON   bool   `help:"Print annotations as JSON."`
	Passes string `placeholder:"LIST" help:"Comma-separated optional passes to run instead of the configured ones (lineEnding, codeMonospaceFont, biggerHeadings, codeBlock), or none."`
}

func (c *HighlightCmd) Run(g *Globals) error {
	ctx := context.Background()
	cfg, err := g.loadConfig(ctx)
	if err != nil {
		return err
	}
	settings := cfg.Settings()
	if c.Passes != "" {
		if settings, err = withPasses(settings, c.Passes); err != nil {
			return err
		}
	}
	extra, err := g.extraRules(ctx, settings)
	if err != nil {
		return err
	}
	text, err := g.readInput(c.File)
	if err != nil {
		return err
	}

	s := editor.NewSession(table(), settings, text, editor.WithExtraRules(extra))
	defer s.Close()
	res := s.Highlight()

	if c.JSON {
		return c.printJSON(g, settings.HighlightFlags(), res)
	}
	for _, a := range res.Annotations {
		fmt.Fprintf(g.out, "%d\t%d\t%s\t%s\t%q\n", a.Start, a.End, a.Rule, a.Effect, res.Text[a.Start:a.End])
	}
	return nil
}

func (c *HighlightCmd) printJSON(g *Globals, flags highlight.Flags, res editor.Result) error {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}
	set("file", c.File)
	set("flags", flags.String())
	if err == nil {
		doc, err = sjson.SetRawBytes(doc, "annotations", []byte(`[]`))
	}
	for _, a := range res.Annotations {
		entry := map[string]any{
			"start":  a.Start,
			"end":    a.End,
			"rule":   a.Rule,
			"effect": a.Effect.Kind.String(),
			"text":   res.Text[a.Start:a.End],
		}
		switch a.Effect.Kind {
		case highlight.EffectForeground, highlight.EffectBackground, highlight.EffectUnderline:
			entry["color"] = a.Effect.Color.String()
		case highlight.EffectScale:
			entry["scale"] = a.Effect.Scale
		}
		set("annotations.-1", entry)
	}
	if err != nil {
		return fmt.Errorf("encoding annotations: %w", err)
	}

	out := pretty.Pretty(doc)
	if isTerminal(g.out) {
		out = pretty.Color(out, nil)
	}
	_, err = g.out.Write(out)
	return err
}

// withPasses replaces the optional pass settings with the listed ones.
func withPasses(s config.Settings, list string) (config.Settings, error) {
	var flags highlight.Flags
	if list != "none" {
		for _, name := range strings.Split(list, ",") {
			f, ok := highlight.ParseFlag(strings.TrimSpace(name))
			if !ok {
				return s, fmt.Errorf("unknown pass %q", name)
			}
			flags |= f
		}
	}
	s.LineEnding = flags.Has(highlight.FlagLineEnding)
	s.CodeMonospaceFont = flags.Has(highlight.FlagCodeMonospaceFont)
	s.BiggerHeadings = flags.Has(highlight.FlagBiggerHeadings)
	s.CodeBlock = flags.Has(highlight.FlagCodeBlock)
	return s, nil
}
