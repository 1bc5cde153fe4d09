package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/accesstwin/accesstwin/internal/model"
	"github.com/accesstwin/accesstwin/internal/store"
)

const defaultAuditEvents = 10

// History contains precomputed data for history rendering.
type History struct {
	ProfileID      int64
	Snapshots      []model.Snapshot
	CategoryTotals map[model.SupportCategory]int
	Events         []model.AuditEvent
}

// BuildHistory loads a profile's recent snapshots and audit events.
func BuildHistory(ctx context.Context, st *store.Store, profileID int64, last int) (History, error) {
	snapshots, err := st.ListSnapshots(ctx, profileID, last)
	if err != nil {
		return History{}, err
	}
	totals, err := st.CategoryTotals(ctx, profileID, len(snapshots))
	if err != nil {
		return History{}, err
	}
	eventLimit := last
	if eventLimit <= 0 {
		eventLimit = defaultAuditEvents
	}
	events, err := st.ListAuditEvents(ctx, profileID, nil, eventLimit)
	if err != nil {
		return History{}, err
	}
	return History{
		ProfileID:      profileID,
		Snapshots:      snapshots,
		CategoryTotals: totals,
		Events:         events,
	}, nil
}

// RenderHistory writes the snapshot table, coverage sparklines and audit trail.
func RenderHistory(w io.Writer, h History, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = TerminalWidth()
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Profile %d history", h.ProfileID)))
	b.WriteString("\n")
	if len(h.Snapshots) == 0 {
		b.WriteString("No snapshots recorded yet. Run: accesstwin summary FILE\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	rows := make([][]string, 0, len(h.Snapshots))
	udl := make([]int, 0, len(h.Snapshots))
	pour := make([]int, 0, len(h.Snapshots))
	for _, snap := range h.Snapshots {
		s := snap.Summary
		rows = append(rows, []string{
			snap.RecordedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(s.Totals.Supports),
			strconv.Itoa(s.ActiveSupports),
			fmt.Sprintf("%d%%", s.UDLCoveragePct),
			fmt.Sprintf("%d%%", s.POURCoveragePct),
		})
		udl = append(udl, s.UDLCoveragePct)
		pour = append(pour, s.POURCoveragePct)
	}
	b.WriteString("\n")
	writeLines(&b, formatTable([]string{"Recorded", "Supports", "Active", "UDL", "POUR"}, rows, map[int]bool{1: true, 2: true, 3: true, 4: true}))

	sparkWidth := opts.Width - 24
	b.WriteString("\n" + headerStyle.Render("Coverage trend") + "\n")
	writeLines(&b, formatTable(nil, [][]string{
		{"UDL", Sparkline(udl, 100, sparkWidth), trend(udl)},
		{"POUR", Sparkline(pour, 100, sparkWidth), trend(pour)},
	}, nil))

	b.WriteString("\n" + headerStyle.Render(fmt.Sprintf("Supports by category (last %d snapshots)", len(h.Snapshots))) + "\n")
	bars := make([]Bar, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		if n := h.CategoryTotals[c]; n > 0 {
			bars = append(bars, Bar{Label: c.Label(), Value: n})
		}
	}
	if len(bars) == 0 {
		b.WriteString(noneRecorded + "\n")
	} else {
		lines := RenderBars(bars, opts.Width-2, opts.Color)
		for i := range lines {
			lines[i] = "  " + lines[i]
		}
		writeLines(&b, lines)
	}

	if len(h.Events) > 0 {
		b.WriteString("\n" + headerStyle.Render("Audit trail") + "\n")
		events := make([][]string, 0, len(h.Events))
		for _, ev := range h.Events {
			events = append(events, []string{ev.RecordedAt.Local().Format("2006-01-02 15:04"), ev.Action, ev.Detail})
		}
		writeLines(&b, formatTable([]string{"When", "Action", "Detail"}, events, nil))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func trend(values []int) string {
	if len(values) == 0 {
		return ""
	}
	first, last := values[0], values[len(values)-1]
	if len(values) == 1 {
		return fmt.Sprintf("%d%%", last)
	}
	return fmt.Sprintf("%d%% -> %d%%", first, last)
}
