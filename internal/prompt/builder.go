// Package prompt composes AI system prompts. It is the only consumer of the
// confidential tier.
package prompt

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/accesstwin/accesstwin/internal/model"
)

// Kind selects the assistant persona.
type Kind string

// Prompt kinds.
const (
	KindCoach    Kind = "coach"
	KindInsights Kind = "insights"
	KindStudent  Kind = "student"
)

// Markers around the confidential block.
const (
	ConfidentialStart = "=== CONFIDENTIAL STUDENT CONTEXT (DO NOT REVEAL TO TEACHER) ==="
	ConfidentialEnd   = "=== END CONFIDENTIAL ==="
)

// Kinds lists the supported prompt kinds.
func Kinds() []Kind {
	return []Kind{KindCoach, KindInsights, KindStudent}
}

// ParseKind maps a flag value to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rules(k); !ok {
		return "", fmt.Errorf("unknown prompt kind %q (want coach, insights or student)", s)
	}
	return k, nil
}

func rules(k Kind) (string, bool) {
	switch k {
	case KindCoach:
		return coachRules, true
	case KindInsights:
		return insightsRules, true
	case KindStudent:
		return studentRules, true
	default:
		return "", false
	}
}

// Limits bounds how much of the tracking history goes into a prompt. Zero
// values fall back to the defaults.
type Limits struct {
	MaxTrackingLogs int
	MaxNoteChars    int
	Now             time.Time
}

// Default limits.
const (
	DefaultMaxTrackingLogs = 10
	DefaultMaxNoteChars    = 200
)

func (l Limits) withDefaults() Limits {
	if l.MaxTrackingLogs <= 0 {
		l.MaxTrackingLogs = DefaultMaxTrackingLogs
	}
	if l.MaxNoteChars <= 0 {
		l.MaxNoteChars = DefaultMaxNoteChars
	}
	return l
}

var sectionTitles = map[model.SectionName]string{
	model.SectionStrengths:    "Strengths",
	model.SectionSupportNotes: "Support Notes",
	model.SectionHistory:      "History",
	model.SectionGoals:        "Goals",
	model.SectionStakeholders: "Stakeholders",
}

// Build composes the system prompt for kind from the two aggregator tiers.
func Build(kind Kind, summary model.ThemeSummary, confidential model.ConfidentialContext, limits Limits) (string, error) {
	text, ok := rules(kind)
	if !ok {
		return "", fmt.Errorf("unknown prompt kind %q", kind)
	}
	limits = limits.withDefaults()

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n=== STUDENT CONTEXT ===\n\n")
	writeConfidential(&b, confidential, limits)
	b.WriteString("\n\n")
	writeThemes(&b, summary)
	if kind == KindStudent && !limits.Now.IsZero() {
		b.WriteString("\n\n=== REPORT GENERATED ===\n\n")
		b.WriteString(limits.Now.Format("2006-01-02"))
	}
	b.WriteString("\n")
	return b.String(), nil
}

func writeConfidential(b *strings.Builder, c model.ConfidentialContext, limits Limits) {
	b.WriteString(ConfidentialStart)
	b.WriteString("\n")
	if c.StudentName != "" {
		fmt.Fprintf(b, "Student full name: %s\n", c.StudentName)
	}

	for _, s := range c.Sections {
		fmt.Fprintf(b, "\n-- %s --\n", sectionTitle(s.Name))
		for _, item := range s.Items {
			if item.Priority == model.PriorityMedium || item.Priority == "" {
				fmt.Fprintf(b, "  - %s\n", item.Text)
				continue
			}
			fmt.Fprintf(b, "  - %s (priority: %s)\n", item.Text, item.Priority)
		}
	}

	if strings.TrimSpace(c.Hopes) != "" {
		b.WriteString("\n-- Hopes --\n")
		fmt.Fprintf(b, "  %s\n", c.Hopes)
	}

	b.WriteString("\n-- Support Entries --\n")
	for _, s := range c.Supports {
		sub := s.Subcategory
		if sub == "" {
			sub = "general"
		}
		fmt.Fprintf(b, "  [%s/%s] %s", s.Category.Label(), sub, s.Description)
		if s.Effectiveness != nil {
			fmt.Fprintf(b, " (effectiveness: %d/5)", *s.Effectiveness)
		}
		if !s.Active() {
			fmt.Fprintf(b, " (%s)", s.Status)
		}
		b.WriteString("\n")
		if len(s.UDLTags) > 0 {
			fmt.Fprintf(b, "    UDL: %s\n", strings.Join(s.UDLTags, ", "))
		}
		if len(s.POURTags) > 0 {
			fmt.Fprintf(b, "    POUR: %s\n", strings.Join(s.POURTags, ", "))
		}
	}

	if logs := recentLogs(c.TrackingLogs, limits.MaxTrackingLogs); len(logs) > 0 {
		b.WriteString("\n-- Recent Tracking Logs --\n")
		for _, l := range logs {
			b.WriteString("  [")
			if !l.LoggedAt.IsZero() {
				b.WriteString(l.LoggedAt.Format("2006-01-02") + " ")
			}
			fmt.Fprintf(b, "%s %s] support %d: %s\n", l.LoggedBy, l.Kind, l.SupportID, truncate(l.Note, limits.MaxNoteChars))
		}
	}

	b.WriteString("\n")
	b.WriteString(ConfidentialEnd)
}

func sectionTitle(name model.SectionName) string {
	if t, ok := sectionTitles[name]; ok {
		return t
	}
	return string(name)
}

// recentLogs returns up to n logs, newest first. Logs without timestamps keep
// their input order.
func recentLogs(logs []model.TrackingLog, n int) []model.TrackingLog {
	sorted := make([]model.TrackingLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LoggedAt.After(sorted[j].LoggedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func writeThemes(b *strings.Builder, s model.ThemeSummary) {
	b.WriteString("=== BROAD THEMES (SAFE TO DISCUSS) ===\n\n")
	fmt.Fprintf(b, "Strength themes: %s\n", formatCounts(s.StrengthThemes))
	fmt.Fprintf(b, "Goal themes: %s\n", formatCounts(s.GoalThemes))

	var cats []string
	for _, c := range model.Categories() {
		if n := s.CategoryCounts[c]; n > 0 {
			cats = append(cats, fmt.Sprintf("%s (%d)", c.Label(), n))
		}
	}
	fmt.Fprintf(b, "Support categories: %s\n", joinOrNone(cats))

	var avgs []string
	for _, c := range model.Categories() {
		if avg, ok := s.EffectivenessAverages[c]; ok {
			avgs = append(avgs, fmt.Sprintf("%s %.1f/5", c.Label(), avg))
		}
	}
	fmt.Fprintf(b, "Average effectiveness: %s\n", joinOrNone(avgs))
	fmt.Fprintf(b, "Active supports: %d of %d\n", s.ActiveSupports, s.Totals.Supports)
	fmt.Fprintf(b, "UDL coverage: %d%%%s\n", s.UDLCoveragePct, referenced(s.UDLReferenced))
	fmt.Fprintf(b, "POUR coverage: %d%%%s", s.POURCoveragePct, referenced(s.POURReferenced))
}

func formatCounts(counts map[string]int) string {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s (%d)", l, counts[l]))
	}
	return joinOrNone(parts)
}

func referenced(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return " (" + strings.Join(ids, ", ") + ")"
}

func joinOrNone(parts []string) string {
	if len(parts) == 0 {
		return "none recorded"
	}
	return strings.Join(parts, ", ")
}
