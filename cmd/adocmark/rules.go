package main

import (
	"context"
	"fmt"

	"github.com/tidwall/match"

	"github.com/dshills/adocmark/internal/markup/asciidoc"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

// RulesCmd lists the active rules.
type RulesCmd struct {
	Filter string `short:"f" default:"*" help:"Glob over rule names, e.g. '*-block'."`
}

func (c *RulesCmd) Run(g *Globals) error {
	ctx := context.Background()
	cfg, err := g.loadConfig(ctx)
	if err != nil {
		return err
	}
	settings := cfg.Settings()
	extra, err := g.extraRules(ctx, settings)
	if err != nil {
		return err
	}

	t := table()
	p := asciidoc.PaletteFor(settings.DarkMode)
	rules := append(asciidoc.Rules(t, p), asciidoc.LineEndingRule(t, p))
	rules = append(rules, extra...)

	flags := settings.HighlightFlags()
	for i, r := range rules {
		if !match.Match(r.Name, c.Filter) {
			continue
		}
		fmt.Fprintf(g.out, "%3d  %-26s %-4s %-28s %s\n", i+1, r.Name, enabledMark(r, flags), effectLabel(r), r.Matcher)
	}
	return nil
}

func enabledMark(r highlight.Rule, flags highlight.Flags) string {
	if r.Enabled(flags) {
		return "on"
	}
	return "off"
}

func effectLabel(r highlight.Rule) string {
	label := r.Effect.String()
	if r.Derive != nil {
		label = "derived"
	}
	if r.Group != 0 {
		label += fmt.Sprintf(" @%d", r.Group)
	}
	return label
}
