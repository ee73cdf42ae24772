package lua

import (
	"context"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adocmark/internal/config/loader"
	"github.com/dshills/adocmark/internal/markup/pattern"
	"github.com/dshills/adocmark/internal/renderer/core"
	"github.com/dshills/adocmark/internal/renderer/highlight"
)

// LoadRulesFile reads the script at path from fsys and evaluates it.
func LoadRulesFile(ctx context.Context, fsys loader.FileSystem, path string, opts ...StateOption) ([]highlight.Rule, error) {
	src, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules script: %w", err)
	}
	rules, err := LoadRules(ctx, string(src), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// LoadRules evaluates script in a fresh sandbox and converts the returned
// list into highlighting rules, in list order.
func LoadRules(ctx context.Context, script string, opts ...StateOption) ([]highlight.Rule, error) {
	s := NewState(opts...)
	defer s.Close()

	ret, err := s.Eval(ctx, script)
	if err != nil {
		return nil, err
	}
	list, ok := ret.(*lua.LTable)
	if !ok {
		return nil, ErrNoRules
	}

	rules := make([]highlight.Rule, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, &RuleError{Index: i, Err: errors.New("entry is not a table")}
		}
		r, err := ruleFromTable(entry)
		if err != nil {
			return nil, &RuleError{Index: i, Name: r.Name, Err: err}
		}
		rules = append(rules, r)
	}
	tracer().Debugf("lua: loaded %d rules", len(rules))
	return rules, nil
}

func ruleFromTable(t *lua.LTable) (highlight.Rule, error) {
	var r highlight.Rule
	name, ok := stringField(t, "name")
	if !ok || name == "" {
		return r, errors.New("missing name")
	}
	r.Name = name

	expr, ok := stringField(t, "pattern")
	if !ok || expr == "" {
		return r, errors.New("missing pattern")
	}
	m, err := pattern.Compile(name, expr)
	if err != nil {
		return r, err
	}
	r.Matcher = m

	if v := t.RawGetString("group"); v != lua.LNil {
		n, ok := v.(lua.LNumber)
		if !ok || n < 0 || float64(n) != float64(int(n)) {
			return r, fmt.Errorf("group must be a non-negative integer, got %s", v)
		}
		r.Group = int(n)
	}

	if r.Effect, err = effectFromTable(t); err != nil {
		return r, err
	}
	if r.Requires, err = flagsFromTable(t); err != nil {
		return r, err
	}
	return r, nil
}

func effectFromTable(t *lua.LTable) (highlight.Effect, error) {
	name, ok := stringField(t, "effect")
	if !ok {
		return highlight.Effect{}, errors.New("missing effect")
	}
	kind, ok := highlight.ParseEffectKind(name)
	if !ok {
		return highlight.Effect{}, fmt.Errorf("unknown effect %q", name)
	}

	switch kind {
	case highlight.EffectForeground, highlight.EffectBackground, highlight.EffectUnderline:
		hex, ok := stringField(t, "color")
		if !ok {
			if kind == highlight.EffectUnderline {
				return highlight.Underline(core.ColorDefault), nil
			}
			return highlight.Effect{}, fmt.Errorf("effect %s needs a color", name)
		}
		c, err := core.ColorFromHex(hex)
		if err != nil {
			return highlight.Effect{}, err
		}
		return highlight.Effect{Kind: kind, Color: c}, nil
	case highlight.EffectScale:
		n, ok := t.RawGetString("scale").(lua.LNumber)
		if !ok || n <= 0 {
			return highlight.Effect{}, errors.New("effect scale needs a positive scale")
		}
		return highlight.Scale(float64(n)), nil
	}
	return highlight.Plain(kind), nil
}

// flagsFromTable reads requires, given as one flag name or a list of them.
func flagsFromTable(t *lua.LTable) (highlight.Flags, error) {
	var names []string
	switch v := t.RawGetString("requires").(type) {
	case *lua.LNilType:
		return 0, nil
	case lua.LString:
		names = []string{string(v)}
	case *lua.LTable:
		for i := 1; i <= v.Len(); i++ {
			names = append(names, lua.LVAsString(v.RawGetInt(i)))
		}
	default:
		return 0, fmt.Errorf("requires must be a flag name or a list, got %s", v.Type())
	}

	var flags highlight.Flags
	for _, n := range names {
		f, ok := highlight.ParseFlag(n)
		if !ok {
			return 0, fmt.Errorf("unknown flag %q", n)
		}
		flags |= f
	}
	return flags, nil
}

func stringField(t *lua.LTable, key string) (string, bool) {
	s, ok := t.RawGetString(key).(lua.LString)
	return string(s), ok
}
