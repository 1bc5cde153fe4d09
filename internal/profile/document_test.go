package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesstwin/accesstwin/internal/model"
)

const sampleJSON = `{
  "profile": {
    "id": 7,
    "name": "Ada Example",
    "strengths": ["Excellent auditory memory", {"text": "Draws comics", "priority": "high"}],
    "goals": [{"text": "Attend university", "priority": "non-negotiable"}],
    "history": [null, "Moved schools in grade 4"],
    "hopes": "Wants to feel included"
  },
  "supports": [
    {"id": 1, "category": "Social-Emotional", "subcategory": "regulation",
     "udl_tags": ["7.3"], "pour_tags": ["Operable"], "effectiveness": 4},
    {"id": 2, "category": "sensory", "status": "paused"}
  ],
  "tracking_logs": [
    {"id": 1, "support_id": 1, "logged_by": "teacher", "kind": "outcome",
     "note": "Used twice this week", "logged_at": "2024-03-01T10:00:00Z"}
  ]
}`

const sampleYAML = `
profile:
  id: 7
  name: Ada Example
  strengths:
    - Excellent auditory memory
    - text: Draws comics
      priority: high
supports:
  - id: 1
    category: executive function
    udl_tags: ["6.3"]
tracking_logs:
  - support_id: 1
    logged_by: student
    kind: implementation
    note: Tried the planner
`

func TestParseJSONDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, int64(7), doc.Profile.ID)
	assert.Len(t, doc.Profile.Strengths, 2)
	assert.Equal(t, model.PlainText("Excellent auditory memory"), doc.Profile.Strengths[0])
	assert.Equal(t, model.PriorityItem{Text: "Attend university", Priority: "non-negotiable"}, doc.Profile.Goals[0])
	assert.Nil(t, doc.Profile.History[0])
	assert.Equal(t, "Wants to feel included", doc.Profile.Hopes)

	require.Len(t, doc.Supports, 2)
	assert.Equal(t, model.CategorySocialEmotional, doc.Supports[0].Category)
	require.NotNil(t, doc.Supports[0].Effectiveness)
	assert.Equal(t, 4, *doc.Supports[0].Effectiveness)
	assert.False(t, doc.Supports[1].Active())

	require.Len(t, doc.TrackingLogs, 1)
	assert.Equal(t, model.LogOutcome, doc.TrackingLogs[0].Kind)
	assert.Equal(t, 2024, doc.TrackingLogs[0].LoggedAt.Year())
}

func TestParseYAMLDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, model.PriorityItem{Text: "Draws comics", Priority: "high"}, doc.Profile.Strengths[1])
	require.Len(t, doc.Supports, 1)
	assert.Equal(t, model.CategoryExecutiveFunction, doc.Supports[0].Category)
	assert.Equal(t, model.RoleStudent, doc.TrackingLogs[0].LoggedBy)
}

func TestParseEmptyDocuments(t *testing.T) {
	doc, err := Parse([]byte(`{}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, doc.Supports)

	doc, err = Parse([]byte(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, doc.TrackingLogs)
}

func TestParseRejectsInvalidSupports(t *testing.T) {
	input := `{"supports": [
		{"category": "technology"},
		{"category": "motor", "effectiveness": 9},
		{"category": "motor", "status": "deleted"}
	]}`
	_, err := Parse([]byte(input), FormatJSON)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "supports[0].category")
	assert.Contains(t, msg, "supports[1].effectiveness")
	assert.Contains(t, msg, "supports[2].status")
}

func TestParseRejectsBrokenJSON(t *testing.T) {
	_, err := Parse([]byte(`{"profile": `), FormatJSON)
	require.Error(t, err)
}

func TestLoadPicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "student.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Example", doc.Profile.Name)

	_, err = Load(filepath.Join(dir, "student.txt"))
	require.Error(t, err)
}
