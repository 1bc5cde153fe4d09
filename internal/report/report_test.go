package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/accesstwin/accesstwin/internal/model"
	"github.com/accesstwin/accesstwin/internal/store"
)

func sampleSummary(udl, pour int) model.ThemeSummary {
	return model.ThemeSummary{
		StrengthThemes: map[string]int{"Creative expression": 2, "Strong memory skills": 1},
		GoalThemes:     map[string]int{},
		CategoryCounts: map[model.SupportCategory]int{
			model.CategorySensory:         1,
			model.CategorySocialEmotional: 2,
		},
		EffectivenessAverages: map[model.SupportCategory]float64{model.CategorySocialEmotional: 4.5},
		ActiveSupports:        2,
		UDLCoveragePct:        udl,
		POURCoveragePct:       pour,
		UDLReferenced:         []string{"7.3", "9.2"},
		POURReferenced:        []string{},
		Totals:                model.Totals{Strengths: 3, Supports: 3, TrackingLogs: 4},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, "Profile 7", sampleSummary(6, 0), Options{Width: 100}); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Profile 7",
		"UDL coverage",
		"Creative expression",
		"Social-Emotional",
		"4.5",
		"7.3, 9.2",
		"Tracking logs",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	goals := out[strings.Index(out, "Goal themes"):]
	if !strings.Contains(goals, "none recorded") {
		t.Fatalf("expected empty goal themes marker:\n%s", out)
	}
	if strings.Index(out, "Creative expression") > strings.Index(out, "Strong memory skills") {
		t.Fatalf("themes should be ordered by count")
	}
}

func TestBuildAndRenderHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "accesstwin.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Unix(0, 0).UTC()
	for i, udl := range []int{10, 20, 30} {
		snap := model.Snapshot{
			RunID:      "run",
			ProfileID:  7,
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
			Summary:    sampleSummary(udl, 25*i),
		}
		if _, err := st.InsertSnapshot(ctx, snap); err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
	}
	if _, err := st.InsertAuditEvent(ctx, model.AuditEvent{RunID: "run", ProfileID: 7, Action: "prompt", Detail: "kind=coach", RecordedAt: base}); err != nil {
		t.Fatalf("insert audit event: %v", err)
	}

	h, err := BuildHistory(ctx, st, 7, 2)
	if err != nil {
		t.Fatalf("build history: %v", err)
	}
	if len(h.Snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(h.Snapshots))
	}
	if h.Snapshots[0].Summary.UDLCoveragePct != 20 || h.Snapshots[1].Summary.UDLCoveragePct != 30 {
		t.Fatalf("unexpected snapshots: %+v", h.Snapshots)
	}
	if h.CategoryTotals[model.CategorySocialEmotional] != 4 {
		t.Fatalf("unexpected category totals: %+v", h.CategoryTotals)
	}
	if len(h.Events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(h.Events))
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, h, Options{Width: 80}); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Profile 7 history", "Coverage trend", "20% -> 30%", "25% -> 50%", "Social-Emotional", "kind=coach"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, History{ProfileID: 3}, Options{Width: 80}); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if !strings.Contains(buf.String(), "No snapshots recorded yet") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
