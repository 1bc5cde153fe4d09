// Package aggregate splits a student profile into a teacher-safe summary and
// an AI-only confidential context.
package aggregate

import (
	"fmt"
	"math"

	"github.com/accesstwin/accesstwin/internal/coverage"
	"github.com/accesstwin/accesstwin/internal/model"
	"github.com/accesstwin/accesstwin/internal/profile"
	"github.com/accesstwin/accesstwin/internal/theme"
)

// Aggregator is stateless apart from its read-only tables and may be shared
// between goroutines.
type Aggregator struct {
	classifier *theme.Classifier
	udl        coverage.Framework
	pour       coverage.Framework
}

// New returns an aggregator. A nil classifier means the built-in tables.
func New(classifier *theme.Classifier, udl, pour coverage.Framework) *Aggregator {
	if classifier == nil {
		classifier = theme.Default()
	}
	return &Aggregator{classifier: classifier, udl: udl, pour: pour}
}

// Default uses the built-in theme tables and frameworks.
func Default() *Aggregator {
	return New(theme.Default(), coverage.UDL(), coverage.POUR())
}

// Aggregate computes both tiers. It performs no I/O and never modifies its
// inputs. A support whose category is outside the closed set panics.
func (a *Aggregator) Aggregate(
	p model.StudentProfile,
	supports []model.SupportEntry,
	logs []model.TrackingLog,
) (model.ThemeSummary, model.ConfidentialContext) {
	strengths := profile.NormalizeAll(p.Strengths)
	supportNotes := profile.NormalizeAll(p.SupportNotes)
	history := profile.NormalizeAll(p.History)
	goals := profile.NormalizeAll(p.Goals)
	stakeholders := profile.NormalizeAll(p.Stakeholders)

	cov := coverage.Calculate(a.udl, a.pour, supports)
	summary := model.ThemeSummary{
		StrengthThemes:        a.classifier.Tally(theme.ContextStrength, strengths),
		GoalThemes:            a.classifier.Tally(theme.ContextGoal, goals),
		CategoryCounts:        categoryCounts(supports),
		EffectivenessAverages: effectivenessAverages(supports),
		ActiveSupports:        activeSupports(supports),
		UDLCoveragePct:        cov.UDLPct,
		POURCoveragePct:       cov.POURPct,
		UDLReferenced:         cov.UDLReferenced,
		POURReferenced:        cov.POURReferenced,
		Totals: model.Totals{
			Strengths:    len(strengths),
			SupportNotes: len(supportNotes),
			Supports:     len(supports),
			History:      len(history),
			Goals:        len(goals),
			Stakeholders: len(stakeholders),
			TrackingLogs: len(logs),
		},
	}

	confidential := model.ConfidentialContext{
		StudentName: p.Name,
		Sections: []model.Section{
			{Name: model.SectionStrengths, Items: strengths},
			{Name: model.SectionSupportNotes, Items: supportNotes},
			{Name: model.SectionHistory, Items: history},
			{Name: model.SectionGoals, Items: goals},
			{Name: model.SectionStakeholders, Items: stakeholders},
		},
		Hopes:        p.Hopes,
		Supports:     copySupports(supports),
		TrackingLogs: copyLogs(logs),
	}
	return summary, confidential
}

func categoryCounts(supports []model.SupportEntry) map[model.SupportCategory]int {
	counts := make(map[model.SupportCategory]int, len(model.Categories()))
	for _, c := range model.Categories() {
		counts[c] = 0
	}
	for _, s := range supports {
		if !s.Category.Valid() {
			panic(fmt.Sprintf("aggregate: support %d has unknown category %q", s.ID, s.Category))
		}
		counts[s.Category]++
	}
	return counts
}

func activeSupports(supports []model.SupportEntry) int {
	n := 0
	for _, s := range supports {
		if s.Active() {
			n++
		}
	}
	return n
}

func effectivenessAverages(supports []model.SupportEntry) map[model.SupportCategory]float64 {
	sums := make(map[model.SupportCategory]int)
	counts := make(map[model.SupportCategory]int)
	for _, s := range supports {
		if s.Effectiveness == nil {
			continue
		}
		sums[s.Category] += *s.Effectiveness
		counts[s.Category]++
	}
	out := make(map[model.SupportCategory]float64, len(counts))
	for c, n := range counts {
		out[c] = math.Round(float64(sums[c])/float64(n)*10) / 10
	}
	return out
}

func copySupports(in []model.SupportEntry) []model.SupportEntry {
	out := make([]model.SupportEntry, len(in))
	for i, s := range in {
		s.UDLTags = copyStrings(s.UDLTags)
		s.POURTags = copyStrings(s.POURTags)
		if s.Effectiveness != nil {
			v := *s.Effectiveness
			s.Effectiveness = &v
		}
		out[i] = s
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyLogs(in []model.TrackingLog) []model.TrackingLog {
	out := make([]model.TrackingLog, len(in))
	copy(out, in)
	return out
}
