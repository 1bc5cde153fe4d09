// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// Priority ranks how important a profile item is to the student.
type Priority string

// Priority levels.
const (
	PriorityLow           Priority = "low"
	PriorityMedium        Priority = "medium"
	PriorityHigh          Priority = "high"
	PriorityNonNegotiable Priority = "non_negotiable"
)

// ParsePriority maps stored priority spellings to a Priority.
// Empty or unknown values read as medium.
func ParsePriority(s string) Priority {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch Priority(key) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityNonNegotiable:
		return Priority(key)
	default:
		return PriorityMedium
	}
}

// Item is the normalized view of one profile item.
type Item struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
}

// StudentProfile is the student-owned accessibility profile.
type StudentProfile struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Strengths    ItemList `json:"strengths"`
	SupportNotes ItemList `json:"supports"`
	History      ItemList `json:"history"`
	Goals        ItemList `json:"goals"`
	Stakeholders ItemList `json:"stakeholders"`
	Hopes        string   `json:"hopes"`
}

// SupportCategory is the closed set of support categories.
type SupportCategory string

// Support categories.
const (
	CategorySensory           SupportCategory = "sensory"
	CategoryMotor             SupportCategory = "motor"
	CategoryCognitive         SupportCategory = "cognitive"
	CategoryCommunication     SupportCategory = "communication"
	CategorySocialEmotional   SupportCategory = "social_emotional"
	CategoryExecutiveFunction SupportCategory = "executive_function"
	CategoryEnvironmental     SupportCategory = "environmental"
)

var categories = []SupportCategory{
	CategorySensory,
	CategoryMotor,
	CategoryCognitive,
	CategoryCommunication,
	CategorySocialEmotional,
	CategoryExecutiveFunction,
	CategoryEnvironmental,
}

// Categories returns every support category in display order.
func Categories() []SupportCategory {
	out := make([]SupportCategory, len(categories))
	copy(out, categories)
	return out
}

// ParseSupportCategory accepts snake_case or display names such as "Social-Emotional".
func ParseSupportCategory(s string) (SupportCategory, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for _, c := range categories {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the seven categories.
func (c SupportCategory) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the category.
func (c SupportCategory) Label() string {
	switch c {
	case CategorySocialEmotional:
		return "Social-Emotional"
	case CategoryExecutiveFunction:
		return "Executive Function"
	}
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SupportStatus tracks whether a support is in use.
type SupportStatus string

// Support statuses. An empty status reads as active.
const (
	StatusActive    SupportStatus = "active"
	StatusPaused    SupportStatus = "paused"
	StatusCompleted SupportStatus = "completed"
	StatusArchived  SupportStatus = "archived"
)

// SupportEntry is one accommodation recorded against a profile.
type SupportEntry struct {
	ID            int64           `json:"id"`
	Category      SupportCategory `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	Description   string          `json:"description,omitempty"`
	UDLTags       []string        `json:"udl_tags,omitempty"`
	POURTags      []string        `json:"pour_tags,omitempty"`
	Effectiveness *int            `json:"effectiveness,omitempty"`
	Status        SupportStatus   `json:"status,omitempty"`
}

// Active reports whether the support is currently in use.
func (s SupportEntry) Active() bool {
	return s.Status == "" || s.Status == StatusActive
}

// Role identifies who wrote a tracking log.
type Role string

// Roles.
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// LogKind distinguishes implementation notes from outcome notes.
type LogKind string

// Log kinds.
const (
	LogImplementation LogKind = "implementation"
	LogOutcome        LogKind = "outcome"
)

// TrackingLog is a timestamped note about one support.
type TrackingLog struct {
	ID        int64     `json:"id"`
	SupportID int64     `json:"support_id"`
	LoggedBy  Role      `json:"logged_by"`
	Kind      LogKind   `json:"kind"`
	Note      string    `json:"note"`
	LoggedAt  time.Time `json:"logged_at"`
}

// Totals counts the non-empty entries of each sequence.
type Totals struct {
	Strengths    int `json:"strengths"`
	SupportNotes int `json:"support_notes"`
	Supports     int `json:"supports"`
	History      int `json:"history"`
	Goals        int `json:"goals"`
	Stakeholders int `json:"stakeholders"`
	TrackingLogs int `json:"tracking_logs"`
}

// ThemeSummary is the teacher-safe tier. None of its fields can carry
// student-authored text: labels come from fixed vocabularies.
type ThemeSummary struct {
	StrengthThemes        map[string]int              `json:"strength_themes"`
	GoalThemes            map[string]int              `json:"goal_themes"`
	CategoryCounts        map[SupportCategory]int     `json:"category_counts"`
	EffectivenessAverages map[SupportCategory]float64 `json:"effectiveness_averages"`
	ActiveSupports        int                         `json:"active_supports"`
	UDLCoveragePct        int                         `json:"udl_coverage_pct"`
	POURCoveragePct       int                         `json:"pour_coverage_pct"`
	UDLReferenced         []string                    `json:"udl_referenced"`
	POURReferenced        []string                    `json:"pour_referenced"`
	Totals                Totals                      `json:"totals"`
}

// SectionName labels where a confidential item came from.
type SectionName string

// Confidential sections in output order.
const (
	SectionStrengths    SectionName = "strengths"
	SectionSupportNotes SectionName = "support_notes"
	SectionHistory      SectionName = "history"
	SectionGoals        SectionName = "goals"
	SectionStakeholders SectionName = "stakeholders"
)

// Section is an ordered run of verbatim items from one profile sequence.
type Section struct {
	Name  SectionName `json:"name"`
	Items []Item      `json:"items"`
}

// ConfidentialContext is the AI-only tier. It must only ever reach the prompt builder.
type ConfidentialContext struct {
	StudentName  string         `json:"student_name"`
	Sections     []Section      `json:"sections"`
	Hopes        string         `json:"hopes"`
	Supports     []SupportEntry `json:"supports"`
	TrackingLogs []TrackingLog  `json:"tracking_logs"`
}

// Section returns the named section, or an empty one.
func (c ConfidentialContext) Section(name SectionName) Section {
	for _, s := range c.Sections {
		if s.Name == name {
			return s
		}
	}
	return Section{Name: name, Items: []Item{}}
}

// Snapshot is a recorded, counts-only copy of a summary.
type Snapshot struct {
	ID         int64
	RunID      string
	ProfileID  int64
	RecordedAt time.Time
	Summary    ThemeSummary
}

// AuditEvent records that a tier was produced or sent somewhere.
type AuditEvent struct {
	ID         int64
	RunID      string
	ProfileID  int64
	Action     string
	Detail     string
	RecordedAt time.Time
}
