// Package coverage computes how much of an accessibility framework a set of
// supports references.
package coverage

import (
	"math"
	"sort"
	"strings"

	"github.com/accesstwin/accesstwin/internal/model"
)

// Checkpoint is one enumerated framework item.
type Checkpoint struct {
	ID        string
	Name      string
	Principle string
}

// Framework is a fixed, read-only enumeration of checkpoints.
type Framework struct {
	Name        string
	Checkpoints []Checkpoint
	index       map[string]string
}

// NewFramework indexes checkpoints by ID and name.
func NewFramework(name string, checkpoints []Checkpoint) Framework {
	index := make(map[string]string, len(checkpoints)*2)
	for _, c := range checkpoints {
		index[strings.ToLower(c.ID)] = c.ID
		index[strings.ToLower(c.Name)] = c.ID
	}
	return Framework{Name: name, Checkpoints: checkpoints, index: index}
}

var udl = NewFramework("UDL", []Checkpoint{
	{"1.1", "Offer ways of customizing the display of information", "Representation"},
	{"1.2", "Offer alternatives for auditory information", "Representation"},
	{"1.3", "Offer alternatives for visual information", "Representation"},
	{"2.1", "Clarify vocabulary and symbols", "Representation"},
	{"2.2", "Clarify syntax and structure", "Representation"},
	{"2.3", "Support decoding of text, mathematical notation, and symbols", "Representation"},
	{"2.4", "Promote understanding across languages", "Representation"},
	{"2.5", "Illustrate through multiple media", "Representation"},
	{"3.1", "Activate or supply background knowledge", "Representation"},
	{"3.2", "Highlight patterns, critical features, big ideas, and relationships", "Representation"},
	{"3.3", "Guide information processing and visualization", "Representation"},
	{"3.4", "Maximize transfer and generalization", "Representation"},
	{"4.1", "Vary the methods for response and navigation", "Action & Expression"},
	{"4.2", "Optimize access to tools and assistive technologies", "Action & Expression"},
	{"5.1", "Use multiple media for communication", "Action & Expression"},
	{"5.2", "Use multiple tools for construction and composition", "Action & Expression"},
	{"5.3", "Build fluencies with graduated levels of support for practice and performance", "Action & Expression"},
	{"6.1", "Guide appropriate goal-setting", "Action & Expression"},
	{"6.2", "Support planning and strategy development", "Action & Expression"},
	{"6.3", "Facilitate managing information and resources", "Action & Expression"},
	{"6.4", "Enhance capacity for monitoring progress", "Action & Expression"},
	{"7.1", "Optimize individual choice and autonomy", "Engagement"},
	{"7.2", "Optimize relevance, value, and authenticity", "Engagement"},
	{"7.3", "Minimize threats and distractions", "Engagement"},
	{"8.1", "Heighten salience of goals and objectives", "Engagement"},
	{"8.2", "Vary demands and resources to optimize challenge", "Engagement"},
	{"8.3", "Foster collaboration and community", "Engagement"},
	{"8.4", "Increase mastery-oriented feedback", "Engagement"},
	{"9.1", "Promote expectations and beliefs that optimize motivation", "Engagement"},
	{"9.2", "Facilitate personal coping skills and strategies", "Engagement"},
	{"9.3", "Develop self-assessment and reflection", "Engagement"},
})

var pour = NewFramework("POUR", []Checkpoint{
	{"P", "Perceivable", "Perceivable"},
	{"O", "Operable", "Operable"},
	{"U", "Understandable", "Understandable"},
	{"R", "Robust", "Robust"},
})

// UDL returns the CAST UDL 2.2 checkpoints.
func UDL() Framework { return udl }

// POUR returns the four WCAG principles.
func POUR() Framework { return pour }

// Size is the number of checkpoints.
func (f Framework) Size() int { return len(f.Checkpoints) }

// Resolve maps a tag (checkpoint ID or name, any case) to a checkpoint ID.
func (f Framework) Resolve(tag string) (string, bool) {
	id, ok := f.index[strings.ToLower(strings.TrimSpace(tag))]
	return id, ok
}

// Referenced returns the distinct checkpoint IDs named by tagSets, sorted.
// Unknown tags are ignored.
func (f Framework) Referenced(tagSets [][]string) []string {
	seen := make(map[string]struct{})
	for _, tags := range tagSets {
		for _, tag := range tags {
			if id, ok := f.Resolve(tag); ok {
				seen[id] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Percent is the share of checkpoints referenced, rounded to the nearest integer.
func (f Framework) Percent(tagSets [][]string) int {
	return percent(len(f.Referenced(tagSets)), f.Size())
}

func percent(n, size int) int {
	if size == 0 || n == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(size) * 100))
}

// Result is the coverage part of a summary.
type Result struct {
	UDLPct         int
	POURPct        int
	UDLReferenced  []string
	POURReferenced []string
}

// Calculate computes UDL and POUR coverage for supports.
func Calculate(udl, pour Framework, supports []model.SupportEntry) Result {
	udlTags := make([][]string, 0, len(supports))
	pourTags := make([][]string, 0, len(supports))
	for _, s := range supports {
		udlTags = append(udlTags, s.UDLTags)
		pourTags = append(pourTags, s.POURTags)
	}
	r := Result{
		UDLReferenced:  udl.Referenced(udlTags),
		POURReferenced: pour.Referenced(pourTags),
	}
	r.UDLPct = percent(len(r.UDLReferenced), udl.Size())
	r.POURPct = percent(len(r.POURReferenced), pour.Size())
	return r
}
