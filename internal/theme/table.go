// Package theme maps free text to broad, non-identifying theme labels.
package theme

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Pattern maps a set of trigger phrases to one theme label.
//
// Trigger grammar: words are separated by spaces or hyphens and match with an
// optional single space or hyphen between them, so "post secondary" matches
// "postsecondary", "post-secondary" and "post secondary". A trailing '*' turns
// the last word into a stem ("listen*" matches "listening"). Matching is
// case-insensitive and anchored at word boundaries.
type Pattern struct {
	Label    string   `toml:"label"`
	Triggers []string `toml:"triggers"`
}

// Table is an ordered, compiled pattern table. It is immutable once built.
type Table struct {
	labels []string
	rules  []*regexp.Regexp
}

// NewTable compiles patterns into a table.
func NewTable(patterns []Pattern) (*Table, error) {
	t := &Table{
		labels: make([]string, 0, len(patterns)),
		rules:  make([]*regexp.Regexp, 0, len(patterns)),
	}
	seen := make(map[string]struct{}, len(patterns))
	for i, p := range patterns {
		label := strings.TrimSpace(p.Label)
		if label == "" {
			return nil, fmt.Errorf("pattern %d: label is empty", i)
		}
		if _, ok := seen[label]; ok {
			return nil, fmt.Errorf("pattern %d: duplicate label %q", i, label)
		}
		seen[label] = struct{}{}
		if len(p.Triggers) == 0 {
			return nil, fmt.Errorf("pattern %q: no triggers", label)
		}
		fragments := make([]string, 0, len(p.Triggers))
		for _, trigger := range p.Triggers {
			fragment, err := compileTrigger(trigger)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", label, err)
			}
			fragments = append(fragments, fragment)
		}
		re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(fragments, "|") + `)`)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", label, err)
		}
		t.labels = append(t.labels, label)
		t.rules = append(t.rules, re)
	}
	return t, nil
}

// MustTable is NewTable for built-in tables; it panics on error.
func MustTable(patterns []Pattern) *Table {
	t, err := NewTable(patterns)
	if err != nil {
		panic(err)
	}
	return t
}

func compileTrigger(trigger string) (string, error) {
	trigger = strings.ToLower(strings.TrimSpace(trigger))
	stem := strings.HasSuffix(trigger, "*")
	trigger = strings.TrimSuffix(trigger, "*")
	words := strings.FieldsFunc(trigger, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if len(words) == 0 {
		return "", fmt.Errorf("empty trigger")
	}
	for i, w := range words {
		if strings.ContainsRune(w, '*') {
			return "", fmt.Errorf("trigger %q: '*' is only allowed at the end", trigger)
		}
		words[i] = regexp.QuoteMeta(w)
	}
	fragment := strings.Join(words, `[\s\-]?`)
	if !stem {
		fragment += `\b`
	}
	return fragment, nil
}

// Labels returns the table's label vocabulary in table order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// Match returns every label whose triggers occur in text, in table order and
// at most once each. Text that matches nothing yields nil.
func (t *Table) Match(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for i, re := range t.rules {
		if re.MatchString(text) {
			out = append(out, t.labels[i])
		}
	}
	return out
}
