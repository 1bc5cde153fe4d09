package model

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// RawItem is a profile item in one of its stored shapes: PlainText for
// legacy bare strings or PriorityItem for {text, priority} records.
// A nil RawItem stands for an absent or unreadable entry.
type RawItem interface {
	rawItem()
}

// PlainText is a legacy item stored as a bare string.
type PlainText string

// PriorityItem is an item stored as a {text, priority} record.
// Priority holds the stored spelling and may be empty.
type PriorityItem struct {
	Text     string
	Priority Priority
}

func (PlainText) rawItem()    {}
func (PriorityItem) rawItem() {}

// ItemList is an ordered profile sequence. Decoding never fails on a bad
// element; the element becomes nil instead.
type ItemList []RawItem

// UnmarshalJSON decodes a JSON array of strings and/or records.
func (l *ItemList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		// Not an array: the whole list reads as empty.
		*l = nil
		return nil
	}
	out := make(ItemList, 0, len(raws))
	for _, raw := range raws {
		out = append(out, decodeJSONItem(raw))
	}
	*l = out
	return nil
}

func decodeJSONItem(raw json.RawMessage) RawItem {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return PlainText(s)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil
		}
		textRaw, ok := fields["text"]
		if !ok {
			return nil
		}
		var text string
		if err := json.Unmarshal(textRaw, &text); err != nil {
			return nil
		}
		var priority string
		if p, ok := fields["priority"]; ok {
			// A non-string priority is ignored and reads as medium later.
			_ = json.Unmarshal(p, &priority)
		}
		return PriorityItem{Text: text, Priority: Priority(priority)}
	default:
		return nil
	}
}

// UnmarshalYAML decodes a YAML sequence of strings and/or mappings.
func (l *ItemList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		*l = nil
		return nil
	}
	out := make(ItemList, 0, len(node.Content))
	for _, child := range node.Content {
		out = append(out, decodeYAMLItem(child))
	}
	*l = out
	return nil
}

func decodeYAMLItem(node *yaml.Node) RawItem {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return nil
		}
		return PlainText(node.Value)
	case yaml.MappingNode:
		var (
			text     string
			hasText  bool
			priority string
		)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode || value.Tag != "!!str" {
				continue
			}
			switch key.Value {
			case "text":
				text, hasText = value.Value, true
			case "priority":
				priority = value.Value
			}
		}
		if !hasText {
			return nil
		}
		return PriorityItem{Text: text, Priority: Priority(priority)}
	default:
		return nil
	}
}
