package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/accesstwin/accesstwin/internal/model"
)

// Context selects which pattern table classifies a piece of text.
type Context string

// Classification contexts.
const (
	ContextStrength Context = "strength"
	ContextGoal     Context = "goal"
)

// ParseContext maps a flag value to a Context.
func ParseContext(s string) (Context, error) {
	switch Context(strings.ToLower(strings.TrimSpace(s))) {
	case ContextStrength:
		return ContextStrength, nil
	case ContextGoal:
		return ContextGoal, nil
	default:
		return "", fmt.Errorf("unknown theme context %q (want strength or goal)", s)
	}
}

// Classifier holds one table per context. Safe for concurrent use.
type Classifier struct {
	strength *Table
	goal     *Table
}

var defaultClassifier = NewClassifier(
	MustTable(DefaultStrengthPatterns),
	MustTable(DefaultGoalPatterns),
)

// Default returns the classifier built from the built-in tables.
func Default() *Classifier {
	return defaultClassifier
}

// NewClassifier wraps compiled tables.
func NewClassifier(strength, goal *Table) *Classifier {
	return &Classifier{strength: strength, goal: goal}
}

func (c *Classifier) table(ctx Context) *Table {
	switch ctx {
	case ContextStrength:
		return c.strength
	case ContextGoal:
		return c.goal
	default:
		panic(fmt.Sprintf("theme: unknown context %q", ctx))
	}
}

// Classify returns the labels whose triggers occur in text.
func (c *Classifier) Classify(ctx Context, text string) []string {
	return c.table(ctx).Match(text)
}

// Tally counts, per label, how many items mention it.
// Labels no item matched are absent from the result.
func (c *Classifier) Tally(ctx Context, items []model.Item) map[string]int {
	t := c.table(ctx)
	counts := make(map[string]int)
	for _, item := range items {
		for _, label := range t.Match(item.Text) {
			counts[label]++
		}
	}
	return counts
}

// Vocabulary returns every label the context can emit.
func (c *Classifier) Vocabulary(ctx Context) []string {
	return c.table(ctx).Labels()
}

type tableFile struct {
	Strength []Pattern `toml:"strength"`
	Goal     []Pattern `toml:"goal"`
}

// Load builds a classifier from a TOML file of [[strength]] and [[goal]]
// entries. A context the file leaves out keeps its built-in table. An empty
// path returns the default classifier.
func Load(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme tables: %w", err)
	}
	return Parse(string(data))
}

// Parse is Load for in-memory TOML.
func Parse(data string) (*Classifier, error) {
	var file tableFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme tables: %w", err)
	}
	c := &Classifier{strength: defaultClassifier.strength, goal: defaultClassifier.goal}
	if len(file.Strength) > 0 {
		t, err := NewTable(file.Strength)
		if err != nil {
			return nil, fmt.Errorf("strength table: %w", err)
		}
		c.strength = t
	}
	if len(file.Goal) > 0 {
		t, err := NewTable(file.Goal)
		if err != nil {
			return nil, fmt.Errorf("goal table: %w", err)
		}
		c.goal = t
	}
	return c, nil
}
