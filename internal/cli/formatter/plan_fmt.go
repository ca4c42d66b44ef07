package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/planner"
	"github.com/charmbracelet/lipgloss"
)

// FormatPlanResult renders a plan with its provenance footer.
func FormatPlanResult(res *planner.PlanResult) string {
	var b strings.Builder
	b.WriteString(FormatPlan(res.Plan))

	footer := SourceBadge(res.Source)
	if res.Model != "" {
		footer += Dim("  model " + res.Model)
	}
	if res.ID != "" {
		footer += Dim("  id ") + TruncID(res.ID)
	}
	b.WriteString(footer)
	b.WriteString("\n")
	return b.String()
}

// FormatPlan renders the categories in a box followed by the schedule and
// total. Empty categories are left out; a plan with no tasks says so.
func FormatPlan(plan *domain.Plan) string {
	var b strings.Builder

	b.WriteString(RenderBox("Daily Plan", formatCategories(plan.Categories)))
	b.WriteString("\n\n")

	if len(plan.SuggestedSchedule) > 0 {
		b.WriteString(Header("Suggested Schedule"))
		b.WriteString("\n")
		b.WriteString(formatSchedule(plan.SuggestedSchedule))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s %s\n\n", Dim("Total estimated time:"), Bold(plan.TotalEstimatedTime))
	return b.String()
}

func formatCategories(cats domain.Categories) string {
	if cats.TaskCount() == 0 {
		return Dim("No tasks found.")
	}

	width := 0
	for _, c := range cats {
		for _, t := range c.Tasks {
			width = max(width, lipgloss.Width(t.Task))
		}
	}

	var sections []string
	for _, c := range cats {
		if len(c.Tasks) == 0 {
			continue
		}
		lines := []string{Bold(c.Label)}
		for _, t := range c.Tasks {
			lines = append(lines, fmt.Sprintf("  %s %s  %s",
				StylePurple.Render("•"),
				StyleFg.Render(padRight(t.Task, width)),
				StyleYellow.Render(t.TimeEstimate),
			))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func formatSchedule(slots []domain.ScheduleSlot) string {
	width := 0
	for _, s := range slots {
		width = max(width, lipgloss.Width(s.Time))
	}

	var b strings.Builder
	for _, s := range slots {
		fmt.Fprintf(&b, "  %s  %s\n", StyleBlue.Render(padRight(s.Time, width)), StyleFg.Render(s.Task))
	}
	return b.String()
}
