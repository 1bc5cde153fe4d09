package model

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestItemListUnmarshalJSONMixedShapes(t *testing.T) {
	input := `[
		"Loves drawing",
		{"text": "Uses a calm-down space", "priority": "non_negotiable"},
		{"text": "Prefers mornings"},
		null,
		42,
		{"priority": "high"},
		{"text": 7}
	]`
	var list ItemList
	if err := json.Unmarshal([]byte(input), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(list))
	}
	if got, ok := list[0].(PlainText); !ok || got != "Loves drawing" {
		t.Fatalf("unexpected first entry: %#v", list[0])
	}
	want := PriorityItem{Text: "Uses a calm-down space", Priority: PriorityNonNegotiable}
	if got, ok := list[1].(PriorityItem); !ok || got != want {
		t.Fatalf("unexpected second entry: %#v", list[1])
	}
	if got, ok := list[2].(PriorityItem); !ok || got.Priority != "" {
		t.Fatalf("expected record without priority, got %#v", list[2])
	}
	for i := 3; i < 7; i++ {
		if list[i] != nil {
			t.Fatalf("expected entry %d to be nil, got %#v", i, list[i])
		}
	}
}

func TestItemListUnmarshalJSONNotAnArray(t *testing.T) {
	var doc struct {
		Items ItemList `json:"items"`
	}
	if err := json.Unmarshal([]byte(`{"items": "just text"}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Items) != 0 {
		t.Fatalf("expected empty list, got %#v", doc.Items)
	}
}

func TestItemListUnmarshalYAML(t *testing.T) {
	input := `
items:
  - Strong recall
  - text: Needs quiet space
    priority: high
  - 12
  - ~
  - priority: low
`
	var doc struct {
		Items ItemList `yaml:"items"`
	}
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Items) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(doc.Items))
	}
	if got, ok := doc.Items[0].(PlainText); !ok || got != "Strong recall" {
		t.Fatalf("unexpected first entry: %#v", doc.Items[0])
	}
	want := PriorityItem{Text: "Needs quiet space", Priority: PriorityHigh}
	if got, ok := doc.Items[1].(PriorityItem); !ok || got != want {
		t.Fatalf("unexpected second entry: %#v", doc.Items[1])
	}
	for i := 2; i < 5; i++ {
		if doc.Items[i] != nil {
			t.Fatalf("expected entry %d to be nil, got %#v", i, doc.Items[i])
		}
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"low":            PriorityLow,
		"HIGH":           PriorityHigh,
		"non_negotiable": PriorityNonNegotiable,
		"non-negotiable": PriorityNonNegotiable,
		"Non Negotiable": PriorityNonNegotiable,
		"":               PriorityMedium,
		"urgent":         PriorityMedium,
	}
	for in, want := range cases {
		if got := ParsePriority(in); got != want {
			t.Fatalf("ParsePriority(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSupportCategory(t *testing.T) {
	cases := map[string]SupportCategory{
		"sensory":            CategorySensory,
		"Social-Emotional":   CategorySocialEmotional,
		"Executive Function": CategoryExecutiveFunction,
		"environmental":      CategoryEnvironmental,
	}
	for in, want := range cases {
		got, ok := ParseSupportCategory(in)
		if !ok || got != want {
			t.Fatalf("ParseSupportCategory(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseSupportCategory("technology"); ok {
		t.Fatalf("expected technology to be rejected")
	}
	if len(Categories()) != 7 {
		t.Fatalf("expected 7 categories")
	}
	if CategorySocialEmotional.Label() != "Social-Emotional" || CategoryMotor.Label() != "Motor" {
		t.Fatalf("unexpected labels")
	}
}
