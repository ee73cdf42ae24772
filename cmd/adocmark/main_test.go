package main

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/tidwall/gjson"

	"github.com/dshills/adocmark/internal/config"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m memFS) Stat(string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

// run parses args and runs the selected command against files, with stdin
// as standard input.
func run(t *testing.T, files memFS, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	var cli CLI
	cli.in, cli.out, cli.fs = strings.NewReader(stdin), &out, files
	parser, err := kong.New(&cli, kong.Name("adocmark"), kong.Exit(func(int) { t.Fatal("kong exited") }))
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	err = ctx.Run(&cli.Globals)
	return out.String(), err
}

func TestHighlightText(t *testing.T) {
	out, err := run(t, memFS{"/doc.adoc": "== Title\n*bold*\n"}, "", "highlight", "/doc.adoc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0\t8\theading-line\tforeground(") {
		t.Errorf("missing heading line:\n%s", out)
	}
	if !strings.Contains(out, "9\t15\tbold\tbold\t\"*bold*\"") {
		t.Errorf("missing bold span:\n%s", out)
	}
}

func TestHighlightJSONFromStdin(t *testing.T) {
	out, err := run(t, memFS{}, "see #EE6677 here\n", "highlight", "--json", "--passes", "none")
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.Valid(out) {
		t.Fatalf("invalid JSON:\n%s", out)
	}
	doc := gjson.Parse(out)
	if got := doc.Get("flags").String(); got != "none" {
		t.Errorf("flags = %q", got)
	}
	hex := doc.Get(`annotations.#(rule=="hex-color")`)
	if !hex.Exists() {
		t.Fatalf("no hex-color annotation:\n%s", out)
	}
	if hex.Get("start").Int() != 4 || hex.Get("color").String() != "#EE6677" || hex.Get("effect").String() != "underline" {
		t.Errorf("hex annotation = %s", hex.Raw)
	}
}

func TestHighlightEmptyJSON(t *testing.T) {
	out, err := run(t, memFS{}, "", "highlight", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.Get(out, "annotations").IsArray() || gjson.Get(out, "annotations.#").Int() != 0 {
		t.Errorf("annotations = %s", gjson.Get(out, "annotations").Raw)
	}
}

func TestHighlightRulesScript(t *testing.T) {
	files := memFS{
		"/settings.toml": "[plugin]\nrulesScript = \"/rules.lua\"\n",
		"/rules.lua":     `return { { name = "todo", pattern = "TODO", effect = "bold" } }`,
	}
	out, err := run(t, files, "a TODO\n", "--config", "/settings.toml", "highlight")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2\t6\ttodo\tbold") {
		t.Errorf("script rule missing:\n%s", out)
	}
}

func TestToggle(t *testing.T) {
	files := memFS{"/doc.adoc": "one\ntwo\nthree\n"}
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"toggle", "heading", "/doc.adoc", "--level", "2"}, "== one\ntwo\nthree\n"},
		{[]string{"toggle", "unordered", "/doc.adoc", "-l", "2:3"}, "one\n* two\n* three\n"},
		{[]string{"toggle", "ordered", "/doc.adoc", "-l", "3"}, "one\ntwo\n. three\n"},
		{[]string{"toggle", "checkbox", "/doc.adoc", "-l", "1:2"}, "* [ ] one\n* [ ] two\nthree\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, files, "", tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestToggleErrors(t *testing.T) {
	files := memFS{"/doc.adoc": "one\n"}
	for _, args := range [][]string{
		{"toggle", "heading", "/doc.adoc", "-l", "5"},
		{"toggle", "heading", "/doc.adoc", "-l", "x"},
		{"toggle", "heading", "-w"},
		{"toggle", "quote", "/doc.adoc"},
	} {
		if _, err := run(t, files, "", args...); err == nil {
			t.Errorf("%v succeeded, want error", args)
		}
	}
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		arg         string
		first, last int
		ok          bool
	}{
		{"1", 0, 0, true},
		{"2:4", 1, 3, true},
		{" 3 : 3 ", 2, 2, true},
		{"0", 0, 0, false},
		{"3:2", 0, 0, false},
		{"4:5", 0, 0, false},
		{"a:b", 0, 0, false},
	}
	for _, tt := range tests {
		first, last, err := parseLines(tt.arg, 4)
		if (err == nil) != tt.ok || (tt.ok && (first != tt.first || last != tt.last)) {
			t.Errorf("parseLines(%q) = %d, %d, %v", tt.arg, first, last, err)
		}
	}
}

func TestRulesFilter(t *testing.T) {
	out, err := run(t, memFS{}, "", "rules", "--filter", "*-block")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, l := range lines {
		if !strings.Contains(l, "-block") {
			t.Errorf("unfiltered line %q", l)
		}
	}
	if !strings.Contains(out, "listing-block") || !strings.Contains(out, "@2") {
		t.Errorf("listing block missing:\n%s", out)
	}
}

func TestWithPasses(t *testing.T) {
	s, err := withPasses(config.Defaults(), "lineEnding, codeBlock")
	if err != nil {
		t.Fatal(err)
	}
	if !s.LineEnding || !s.CodeBlock || s.BiggerHeadings || s.CodeMonospaceFont {
		t.Errorf("settings = %+v", s)
	}
	if _, err := withPasses(config.Defaults(), "fast"); err == nil {
		t.Error("unknown pass accepted")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, memFS{}, "", "version")
	if err != nil || !strings.HasPrefix(out, "adocmark dev") {
		t.Errorf("version = %q, %v", out, err)
	}
}
