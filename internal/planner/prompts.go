package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// planningSystemPrompt sets the assistant role for every planning call.
const planningSystemPrompt = "You are a productivity assistant that creates structured daily plans."

// Sampling parameters for the planning call.
const (
	planningTemperature = 0.7
	planningMaxTokens   = 1000
)

const planningGuidelines = `Guidelines:
1. Categorize tasks by priority and type
2. Add realistic time estimates (15 min, 30 min, 1 hr, 2 hrs, etc.)
3. Suggest a logical order for the day
4. Focus on the most important tasks first
5. Include breaks and buffer time
6. Total time should be reasonable for a workday (6-8 hours)

Return only the JSON structure, no additional text.`

// BuildPlanningPrompt renders the user's free text into the instruction sent
// to the model. The category list comes from the canonical category table.
func BuildPlanningPrompt(userInput string) string {
	var b strings.Builder

	b.WriteString("You are a productivity assistant. From the following unstructured task list, ")
	b.WriteString("extract and organize the tasks into clear categories. ")
	b.WriteString("Add realistic time estimates and propose a daily schedule order.\n\n")
	b.WriteString("User Input: \"" + userInput + "\"\n\n")
	b.WriteString("Please create a structured daily plan with the following format:\n\n")

	b.WriteString("{\n    \"categories\": {\n")
	cats := domain.CanonicalCategories()
	for i, c := range cats {
		fmt.Fprintf(&b, "        %q: [\n", c.Label())
		b.WriteString("            {\"task\": \"task description\", \"time_estimate\": \"time estimate\"}\n")
		b.WriteString("        ]")
		if i < len(cats)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("    },\n")
	b.WriteString("    \"suggested_schedule\": [\n")
	b.WriteString("        {\"time\": \"9:00 AM\", \"task\": \"description\"},\n")
	b.WriteString("        {\"time\": \"11:00 AM\", \"task\": \"description\"}\n")
	b.WriteString("    ],\n")
	b.WriteString("    \"total_estimated_time\": \"total time\"\n")
	b.WriteString("}\n\n")

	b.WriteString(planningGuidelines)
	return b.String()
}
