package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesstwin/accesstwin/internal/model"
)

func items(texts ...string) []model.Item {
	out := make([]model.Item, 0, len(texts))
	for _, t := range texts {
		out = append(out, model.Item{Text: t, Priority: model.PriorityMedium})
	}
	return out
}

func TestDefaultTablesSize(t *testing.T) {
	c := Default()
	assert.Len(t, c.Vocabulary(ContextStrength), 20)
	assert.Len(t, c.Vocabulary(ContextGoal), 10)
}

func TestAuditoryStrengthScenario(t *testing.T) {
	counts := Default().Tally(ContextStrength, items("Excellent auditory memory and listening comprehension"))
	assert.Equal(t, 1, counts["Strong auditory processing"])
	assert.Equal(t, 1, counts["Strong memory skills"])
	assert.Len(t, counts, 2)
}

func TestPostSecondaryGoalScenario(t *testing.T) {
	counts := Default().Tally(ContextGoal, items("Wants to attend a four-year university with disability support services"))
	assert.Equal(t, map[string]int{"Post-secondary education": 1}, counts)
}

func TestLabelCountsOncePerItem(t *testing.T) {
	counts := Default().Tally(ContextStrength, items(
		"Loves painting, music and drawing",
		"Plays music",
	))
	assert.Equal(t, 2, counts["Creative expression"])
}

func TestClassifyMultipleLabelsInTableOrder(t *testing.T) {
	got := Default().Classify(ContextStrength, "Funny, focused and great with computers")
	assert.Equal(t, []string{"Technology proficiency", "Focused attention", "Sense of humour"}, got)
}

func TestUnmatchedTextContributesNothing(t *testing.T) {
	c := Default()
	assert.Empty(t, c.Classify(ContextStrength, "Prefers blue folders"))
	assert.Empty(t, c.Classify(ContextGoal, ""))
	assert.Empty(t, c.Tally(ContextGoal, nil))
}

func TestTriggersRespectWordBoundaries(t *testing.T) {
	c := Default()
	assert.Empty(t, c.Classify(ContextGoal, "Wants a fresh start"), "art inside start")
	assert.Equal(t, []string{"Creative pursuits"}, c.Classify(ContextGoal, "Wants to study ART"))
}

func TestTriggerSeparatorsAreOptional(t *testing.T) {
	c := Default()
	for _, text := range []string{"postsecondary study", "post-secondary study", "Post secondary study"} {
		assert.Equal(t, []string{"Post-secondary education"}, c.Classify(ContextGoal, text), text)
	}
}

func TestLabelsAreFromVocabulary(t *testing.T) {
	c := Default()
	vocab := make(map[string]bool)
	for _, l := range c.Vocabulary(ContextStrength) {
		vocab[l] = true
	}
	counts := c.Tally(ContextStrength, items(
		"My name is Sam and I remember every bus route",
		"Reads graphic novels, asks questions, leads the robotics club",
	))
	for label := range counts {
		assert.True(t, vocab[label], label)
	}
}

func TestNewTableRejectsBadPatterns(t *testing.T) {
	cases := map[string][]Pattern{
		"empty label":     {{Label: " ", Triggers: []string{"x"}}},
		"duplicate label": {{Label: "A", Triggers: []string{"x"}}, {Label: "A", Triggers: []string{"y"}}},
		"no triggers":     {{Label: "A"}},
		"empty trigger":   {{Label: "A", Triggers: []string{" * "}}},
		"inner star":      {{Label: "A", Triggers: []string{"li*sten"}}},
	}
	for name, patterns := range cases {
		_, err := NewTable(patterns)
		assert.Error(t, err, name)
	}
}

func TestParseOverridesOneContext(t *testing.T) {
	c, err := Parse(`
[[strength]]
label = "Music"
triggers = ["music*", "sing*"]

[[strength]]
label = "Puzzles"
triggers = ["puzzle*"]
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Puzzles"}, c.Vocabulary(ContextStrength))
	assert.Equal(t, []string{"Music"}, c.Classify(ContextStrength, "Sings in the choir"))
	assert.Len(t, c.Vocabulary(ContextGoal), 10)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), c)

	path := filepath.Join(t.TempDir(), "themes.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[goal]]\nlabel = \"Travel\"\ntriggers = [\"travel*\"]\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Travel"}, c.Vocabulary(ContextGoal))

	require.NoError(t, os.WriteFile(path, []byte("[[goal]]\nlabel = \"Bad\"\ntriggers = []\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestParseContext(t *testing.T) {
	ctx, err := ParseContext(" Goal ")
	require.NoError(t, err)
	assert.Equal(t, ContextGoal, ctx)

	_, err = ParseContext("history")
	assert.Error(t, err)
}
