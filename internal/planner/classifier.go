package planner

import (
	"strings"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// KeywordRule files fixed entries under a category when any keyword occurs
// in the lower-cased input.
type KeywordRule struct {
	Category domain.CategoryID  `yaml:"category"`
	Keywords []string           `yaml:"keywords"`
	Entries  []domain.TaskEntry `yaml:"entries"`
}

// Matches reports whether any keyword is a substring of lowered.
func (r KeywordRule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// DefaultKeywordRules returns the offline classification table. No rule
// targets the work category.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{
			Category: domain.CategoryPriority,
			Keywords: []string{"ui", "dashboard", "slides", "presentation"},
			Entries: []domain.TaskEntry{
				{Task: "Finish UI for dashboard", TimeEstimate: "2 hrs"},
				{Task: "Prepare slides for presentation", TimeEstimate: "1.5 hrs"},
			},
		},
		{
			Category: domain.CategoryCommunication,
			Keywords: []string{"client", "follow up", "email", "call"},
			Entries: []domain.TaskEntry{
				{Task: "Follow up with client", TimeEstimate: "15 min"},
			},
		},
		{
			Category: domain.CategoryPersonal,
			Keywords: []string{"grocery", "shopping", "store"},
			Entries: []domain.TaskEntry{
				{Task: "Grocery shopping", TimeEstimate: "45 min"},
			},
		},
	}
}

// FallbackSchedule returns the fixed day outline attached to every offline plan.
func FallbackSchedule() []domain.ScheduleSlot {
	return []domain.ScheduleSlot{
		{Time: "9:00 AM", Task: "Start with priority tasks"},
		{Time: "11:00 AM", Task: "Communication tasks"},
		{Time: "2:00 PM", Task: "Personal tasks"},
		{Time: "4:00 PM", Task: "Review and wrap up"},
	}
}

// FallbackTotalTime is the budget reported by every offline plan.
const FallbackTotalTime = "6 hours"

// ClassifyKeywords builds a plan from text without a language model using
// DefaultKeywordRules.
func ClassifyKeywords(text string) *domain.Plan {
	return ClassifyWithRules(text, DefaultKeywordRules())
}

// ClassifyWithRules builds an offline plan from text. Every canonical
// category is present, in canonical order, even when empty. Rules naming a
// non-canonical category are skipped.
func ClassifyWithRules(text string, rules []KeywordRule) *domain.Plan {
	plan := domain.NewPlan()
	for _, c := range domain.CanonicalCategories() {
		plan.Categories.Set(c.Label(), nil)
	}
	plan.SuggestedSchedule = FallbackSchedule()
	plan.TotalEstimatedTime = FallbackTotalTime

	lowered := strings.ToLower(text)
	for _, rule := range rules {
		if !rule.Matches(lowered) {
			continue
		}
		cat, ok := domain.CategoryByID(rule.Category)
		if !ok {
			continue
		}
		for _, entry := range rule.Entries {
			plan.Categories.Append(cat.Label(), entry)
		}
	}
	return plan
}
