// Package highlight turns text into style annotations by running an ordered
// list of pattern rules over it.
//
// Classification is a pure function of the text and the enabled flags.
// Rules run in list order and their annotations are returned in that order,
// so a renderer that applies them front to back layers later rules over
// earlier ones.
package highlight

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("adocmark.highlight")
}

// Classifier runs a fixed rule list. It holds no mutable state and is safe
// for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over a copy of rules.
func NewClassifier(rules []Rule) *Classifier {
	c := &Classifier{rules: make([]Rule, len(rules))}
	copy(c.rules, rules)
	return c
}

// With returns a classifier that runs extra after c's rules.
func (c *Classifier) With(extra ...Rule) *Classifier {
	rules := make([]Rule, 0, len(c.rules)+len(extra))
	rules = append(rules, c.rules...)
	rules = append(rules, extra...)
	return &Classifier{rules: rules}
}

// Rules returns a copy of the rule list.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the annotations for text. A rule whose matcher fails,
// for example by timing out, contributes nothing; it never fails the whole
// classification.
func (c *Classifier) Classify(text string, flags Flags) []Annotation {
	var out []Annotation
	for _, r := range c.rules {
		if !r.Enabled(flags) {
			continue
		}
		out = append(out, c.run(r, text)...)
	}
	tracer().Debugf("highlight: %d annotations from %d rules, flags %s", len(out), len(c.rules), flags)
	return out
}

// ClassifyTo classifies text and hands the result to a.
func (c *Classifier) ClassifyTo(text string, flags Flags, a Annotator) {
	Apply(c.Classify(text, flags), a)
}

func (c *Classifier) run(r Rule, text string) []Annotation {
	matches, err := r.Matcher.FindAll(text)
	if err != nil {
		tracer().Errorf("highlight: rule %s dropped: %v", r.Name, err)
		return nil
	}
	var out []Annotation
	for _, m := range matches {
		span := m.Group(r.Group)
		if span.Empty() {
			continue
		}
		effect := r.Effect
		if r.Derive != nil {
			var ok bool
			if effect, ok = r.Derive(text[span.Start:span.End]); !ok {
				continue
			}
		}
		out = append(out, Annotation{Start: span.Start, End: span.End, Effect: effect, Rule: r.Name})
	}
	return out
}
