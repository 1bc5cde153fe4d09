// Package profile reads student profile documents and normalizes their items.
package profile

import (
	"strings"

	"github.com/accesstwin/accesstwin/internal/model"
)

// Normalize resolves a stored item to its text and priority. Legacy strings
// read as medium priority; nil or unknown shapes read as ("", medium).
// The stored value is never modified.
func Normalize(item model.RawItem) model.Item {
	switch v := item.(type) {
	case model.PlainText:
		return model.Item{Text: string(v), Priority: model.PriorityMedium}
	case model.PriorityItem:
		return model.Item{Text: v.Text, Priority: model.ParsePriority(string(v.Priority))}
	default:
		return model.Item{Priority: model.PriorityMedium}
	}
}

// IsEmpty reports whether a normalized item carries no text.
func IsEmpty(item model.Item) bool {
	return strings.TrimSpace(item.Text) == ""
}

// NormalizeAll normalizes a sequence, dropping empty results and keeping order.
// The result is never nil.
func NormalizeAll(items model.ItemList) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, raw := range items {
		item := Normalize(raw)
		if IsEmpty(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}
