package prompt

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesstwin/accesstwin/internal/aggregate"
	"github.com/accesstwin/accesstwin/internal/model"
)

func fixture(logCount int) (model.ThemeSummary, model.ConfidentialContext) {
	rating := 4
	p := model.StudentProfile{
		Name:         "Jordan Rivera",
		Strengths:    model.ItemList{model.PlainText("Excellent auditory memory")},
		SupportNotes: model.ItemList{model.PriorityItem{Text: "Uses a calm-down space", Priority: model.PriorityNonNegotiable}},
		Goals:        model.ItemList{model.PlainText("Go to university")},
		Stakeholders: model.ItemList{model.PlainText("Aunt Maria")},
		Hopes:        "Be heard",
	}
	supports := []model.SupportEntry{
		{ID: 1, Category: model.CategorySensory, Description: "Noise-cancelling headphones", UDLTags: []string{"7.3"}, POURTags: []string{"Perceivable"}, Effectiveness: &rating},
		{ID: 2, Category: model.CategoryMotor, Subcategory: "fine motor", Description: "Pencil grip", Status: model.StatusArchived},
	}
	logs := make([]model.TrackingLog, 0, logCount)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < logCount; i++ {
		logs = append(logs, model.TrackingLog{
			ID:        int64(i + 1),
			SupportID: 1,
			LoggedBy:  model.RoleTeacher,
			Kind:      model.LogOutcome,
			Note:      fmt.Sprintf("note-%02d %s", i, strings.Repeat("x", 300)),
			LoggedAt:  base.AddDate(0, 0, i),
		})
	}
	return aggregate.Default().Aggregate(p, supports, logs)
}

func TestBuildSignatureHasNoRawDataChannel(t *testing.T) {
	fn := reflect.TypeOf(Build)
	require.Equal(t, 4, fn.NumIn())
	assert.Equal(t, reflect.TypeOf(Kind("")), fn.In(0))
	assert.Equal(t, reflect.TypeOf(model.ThemeSummary{}), fn.In(1))
	assert.Equal(t, reflect.TypeOf(model.ConfidentialContext{}), fn.In(2))
	assert.Equal(t, reflect.TypeOf(Limits{}), fn.In(3))
	assert.False(t, fn.IsVariadic())

	limits := reflect.TypeOf(Limits{})
	for i := 0; i < limits.NumField(); i++ {
		f := limits.Field(i)
		switch f.Type.Kind() {
		case reflect.String, reflect.Slice, reflect.Map, reflect.Interface, reflect.Pointer:
			t.Fatalf("Limits.%s has kind %s", f.Name, f.Type.Kind())
		}
	}
}

func TestBuildWrapsConfidentialBlock(t *testing.T) {
	summary, confidential := fixture(1)
	for _, kind := range Kinds() {
		out, err := Build(kind, summary, confidential, Limits{})
		require.NoError(t, err)

		start := strings.Index(out, ConfidentialStart)
		end := strings.Index(out, ConfidentialEnd)
		require.GreaterOrEqual(t, start, 0, kind)
		require.Greater(t, end, start, kind)

		block := out[start:end]
		assert.Contains(t, block, "Student full name: Jordan Rivera")
		assert.Contains(t, block, "Uses a calm-down space (priority: non_negotiable)")
		assert.Contains(t, block, "Aunt Maria")
		assert.Contains(t, block, "[Sensory/general] Noise-cancelling headphones (effectiveness: 4/5)")
		assert.Contains(t, block, "[Motor/fine motor] Pencil grip (archived)")
		assert.Contains(t, block, "UDL: 7.3")

		// Verbatim text appears nowhere outside the block.
		outside := out[:start] + out[end:]
		assert.NotContains(t, outside, "Jordan Rivera")
		assert.NotContains(t, outside, "calm-down")
		assert.Contains(t, outside, "Never use the student's full name")
	}
}

func TestBuildSectionsInOrder(t *testing.T) {
	summary, confidential := fixture(0)
	out, err := Build(KindCoach, summary, confidential, Limits{})
	require.NoError(t, err)

	prev := -1
	for _, title := range []string{"-- Strengths --", "-- Support Notes --", "-- History --", "-- Goals --", "-- Stakeholders --", "-- Hopes --", "-- Support Entries --"} {
		i := strings.Index(out, title)
		require.Greater(t, i, prev, title)
		prev = i
	}
	assert.NotContains(t, out, "-- Recent Tracking Logs --")
}

func TestBuildAppliesLogLimits(t *testing.T) {
	summary, confidential := fixture(15)

	out, err := Build(KindInsights, summary, confidential, Limits{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTrackingLogs, strings.Count(out, "] support 1: note-"))
	// Newest first.
	assert.Contains(t, out, "note-14")
	assert.NotContains(t, out, "note-04")
	assert.NotContains(t, out, strings.Repeat("x", DefaultMaxNoteChars))

	out, err = Build(KindInsights, summary, confidential, Limits{MaxTrackingLogs: 2, MaxNoteChars: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "] support 1: note-"))
	assert.Contains(t, out, "note-14…")

	// The confidential tier itself is untouched.
	assert.Len(t, confidential.TrackingLogs, 15)
}

func TestBuildIncludesBroadThemes(t *testing.T) {
	summary, confidential := fixture(0)
	out, err := Build(KindCoach, summary, confidential, Limits{})
	require.NoError(t, err)

	assert.Contains(t, out, "Strength themes: Strong auditory processing (1), Strong memory skills (1)")
	assert.Contains(t, out, "Goal themes: Post-secondary education (1)")
	assert.Contains(t, out, "Support categories: Sensory (1), Motor (1)")
	assert.Contains(t, out, "Average effectiveness: Sensory 4.0/5")
	assert.Contains(t, out, "Active supports: 1 of 2")
	assert.Contains(t, out, "UDL coverage: 3% (7.3)")
	assert.Contains(t, out, "POUR coverage: 25% (P)")
}

func TestBuildStudentReportDate(t *testing.T) {
	summary, confidential := fixture(0)
	now := time.Date(2025, 5, 6, 12, 0, 0, 0, time.UTC)

	out, err := Build(KindStudent, summary, confidential, Limits{Now: now})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "=== REPORT GENERATED ===\n\n2025-05-06\n"))

	out, err = Build(KindCoach, summary, confidential, Limits{Now: now})
	require.NoError(t, err)
	assert.NotContains(t, out, "REPORT GENERATED")
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build("therapist", model.ThemeSummary{}, model.ConfidentialContext{}, Limits{})
	require.Error(t, err)
}

func TestBuildEmptyInputs(t *testing.T) {
	summary, confidential := aggregate.Default().Aggregate(model.StudentProfile{}, nil, nil)
	out, err := Build(KindCoach, summary, confidential, Limits{})
	require.NoError(t, err)
	assert.Contains(t, out, "Strength themes: none recorded")
	assert.NotContains(t, out, "Student full name")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Student ")
	require.NoError(t, err)
	assert.Equal(t, KindStudent, k)

	_, err = ParseKind("")
	assert.Error(t, err)
}
