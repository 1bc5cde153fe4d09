package report

import (
	"sort"
)

// TopLabels orders theme counts by count, then label, and keeps the first n.
// n <= 0 keeps all.
func TopLabels(counts map[string]int, n int) []Bar {
	if len(counts) == 0 {
		return nil
	}
	items := make([]Bar, 0, len(counts))
	for label, count := range counts {
		items = append(items, Bar{Label: label, Value: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Value == items[j].Value {
			return items[i].Label < items[j].Label
		}
		return items[i].Value > items[j].Value
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}
