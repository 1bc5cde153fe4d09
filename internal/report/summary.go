// Package report renders teacher-safe summaries and snapshot history for the
// terminal. It only ever sees counts and fixed-vocabulary labels.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/accesstwin/accesstwin/internal/model"
)

// Options controls terminal rendering.
type Options struct {
	Width     int
	Color     bool
	TopThemes int
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

const noneRecorded = "  none recorded"

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func summaryCards(s model.ThemeSummary, width int) string {
	cards := []string{
		metricCard("Supports", strconv.Itoa(s.Totals.Supports)),
		metricCard("Active", strconv.Itoa(s.ActiveSupports)),
		metricCard("UDL coverage", fmt.Sprintf("%d%%", s.UDLCoveragePct)),
		metricCard("POUR coverage", fmt.Sprintf("%d%%", s.POURCoveragePct)),
	}
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// RenderSummary writes one teacher-safe summary.
func RenderSummary(w io.Writer, title string, s model.ThemeSummary, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = TerminalWidth()
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(summaryCards(s, opts.Width))
	b.WriteString("\n")

	writeThemeSection(&b, "Strength themes", s.StrengthThemes, opts)
	writeThemeSection(&b, "Goal themes", s.GoalThemes, opts)

	b.WriteString("\n" + headerStyle.Render("Support categories") + "\n")
	rows := make([][]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		avg := "-"
		if v, ok := s.EffectivenessAverages[c]; ok {
			avg = fmt.Sprintf("%.1f", v)
		}
		rows = append(rows, []string{c.Label(), strconv.Itoa(s.CategoryCounts[c]), avg})
	}
	writeLines(&b, formatTable([]string{"Category", "Count", "Avg rating"}, rows, map[int]bool{1: true, 2: true}))

	b.WriteString("\n" + headerStyle.Render("Framework references") + "\n")
	writeLines(&b, formatTable(nil, [][]string{
		{"UDL", fmt.Sprintf("%d%%", s.UDLCoveragePct), joinIDs(s.UDLReferenced)},
		{"POUR", fmt.Sprintf("%d%%", s.POURCoveragePct), joinIDs(s.POURReferenced)},
	}, map[int]bool{1: true}))

	b.WriteString("\n" + headerStyle.Render("Totals") + "\n")
	t := s.Totals
	writeLines(&b, formatTable(nil, [][]string{
		{"Strengths", strconv.Itoa(t.Strengths)},
		{"Support notes", strconv.Itoa(t.SupportNotes)},
		{"History", strconv.Itoa(t.History)},
		{"Goals", strconv.Itoa(t.Goals)},
		{"Stakeholders", strconv.Itoa(t.Stakeholders)},
		{"Supports", strconv.Itoa(t.Supports)},
		{"Tracking logs", strconv.Itoa(t.TrackingLogs)},
	}, map[int]bool{1: true}))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return nil
}

func writeThemeSection(b *strings.Builder, title string, counts map[string]int, opts Options) {
	b.WriteString("\n" + headerStyle.Render(title) + "\n")
	bars := TopLabels(counts, opts.TopThemes)
	if len(bars) == 0 {
		b.WriteString(noneRecorded + "\n")
		return
	}
	lines := RenderBars(bars, opts.Width-2, opts.Color)
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	writeLines(b, lines)
}

func writeLines(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}
