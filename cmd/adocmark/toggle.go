package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/adocmark/internal/editor"
)

var toggles = map[string]editor.Toggle{
	"heading":   editor.ToggleHeading,
	"checkbox":  editor.ToggleCheckbox,
	"ordered":   editor.ToggleOrderedList,
	"unordered": editor.ToggleUnorderedList,
}

// ToggleCmd rewrites the prefix of a line range.
type ToggleCmd struct {
	Kind  string `arg:"" enum:"heading,checkbox,ordered,unordered" help:"Prefix to toggle: heading, checkbox, ordered or unordered."`
	File  string `arg:"" default:"-" help:"AsciiDoc file, - for standard input."`
	Lines string `short:"l" default:"1" help:"Line or inclusive range to rewrite, 1-based: 3 or 3:5."`
	Level int    `default:"1" help:"Heading level for the heading toggle."`
	Write bool   `short:"w" help:"Write the result back to the file instead of standard output."`
}

func (c *ToggleCmd) Run(g *Globals) error {
	if c.Write && c.File == "-" {
		return fmt.Errorf("--write needs a file")
	}
	cfg, err := g.loadConfig(context.Background())
	if err != nil {
		return err
	}
	text, err := g.readInput(c.File)
	if err != nil {
		return err
	}

	s := editor.NewSession(table(), cfg.Settings(), text)
	defer s.Close()
	doc := s.Document()
	first, last, err := parseLines(c.Lines, doc.LineCount())
	if err != nil {
		return err
	}
	// The selection ends where the line after the range begins.
	sel := editor.Selection{Start: doc.LineStart(first), End: doc.LineStart(last + 1)}
	result := s.Apply(toggles[c.Kind], sel, c.Level)

	if c.Write {
		return writeFile(c.File, result)
	}
	_, err = io.WriteString(g.out, result)
	return err
}

// parseLines turns "3" or "3:5" into 0-based first and last line indexes.
func parseLines(arg string, count int) (int, int, error) {
	from, to, isRange := strings.Cut(arg, ":")
	first, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line %q", from)
	}
	last := first
	if isRange {
		if last, err = strconv.Atoi(strings.TrimSpace(to)); err != nil {
			return 0, 0, fmt.Errorf("invalid line %q", to)
		}
	}
	if first < 1 || last < first || last > count {
		return 0, 0, fmt.Errorf("line range %s outside 1:%d", arg, count)
	}
	return first - 1, last - 1, nil
}

// writeFile replaces path, keeping its permissions.
func writeFile(path, text string) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), mode)
}
