package planner

import (
	"testing"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructured_IgnoresTextOutsideBraces(t *testing.T) {
	raw := `prefix {"categories": {}, "suggested_schedule": [], "total_estimated_time": "1 hour"} suffix`

	plan, err := ParseStructured(raw)

	require.NoError(t, err)
	assert.Empty(t, plan.Categories)
	assert.NotNil(t, plan.Categories)
	assert.Empty(t, plan.SuggestedSchedule)
	assert.NotNil(t, plan.SuggestedSchedule)
	assert.Equal(t, "1 hour", plan.TotalEstimatedTime)
}

func TestParseStructured_FullPlanKeepsCategoryOrder(t *testing.T) {
	raw := "Here you go:\n```json\n" + `{
  "categories": {
    "💼 Work": [{"task": "Quarterly report", "time_estimate": "2 hrs"}],
    "🎯 Priority Tasks": [{"task": "Finish UI", "time_estimate": "1 hr"}],
    "🧘 Wellness": [{"task": "Yoga"}]
  },
  "suggested_schedule": [
    {"time": "9:00 AM", "task": "Finish UI"},
    {"time": "10:00 AM", "task": "Quarterly report"}
  ],
  "total_estimated_time": "3.5 hours"
}` + "\n```"

	plan, err := ParseStructured(raw)

	require.NoError(t, err)
	assert.Equal(t, []string{"💼 Work", "🎯 Priority Tasks", "🧘 Wellness"}, plan.Categories.Labels())
	wellness, _ := plan.Categories.Get("🧘 Wellness")
	assert.Equal(t, []domain.TaskEntry{{Task: "Yoga", TimeEstimate: "30 min"}}, wellness)
	assert.Equal(t, []domain.ScheduleSlot{
		{Time: "9:00 AM", Task: "Finish UI"},
		{Time: "10:00 AM", Task: "Quarterly report"},
	}, plan.SuggestedSchedule)
	assert.Equal(t, "3.5 hours", plan.TotalEstimatedTime)
}

func TestParseStructured_MissingFieldsTakeDefaults(t *testing.T) {
	plan, err := ParseStructured(`{"categories": {"Work": [{"task": "Deploy (45 min)"}]}}`)

	require.NoError(t, err)
	tasks, _ := plan.Categories.Get("Work")
	assert.Equal(t, []domain.TaskEntry{{Task: "Deploy (45 min)", TimeEstimate: "45 min"}}, tasks)
	assert.Empty(t, plan.SuggestedSchedule)
	assert.Equal(t, domain.DefaultTotalTime, plan.TotalEstimatedTime)
}

func TestParseStructured_CoercesLooseEntries(t *testing.T) {
	raw := `{
  "categories": {"Errands": ["Post office (20 min)", {"task": ""}, 42, {"task": "Bank", "time_estimate": 15}]},
  "suggested_schedule": [{"time": "8:00 AM", "task": "Errands"}, "lunch", {}],
  "total_estimated_time": 6
}`

	plan, err := ParseStructured(raw)

	require.NoError(t, err)
	tasks, _ := plan.Categories.Get("Errands")
	assert.Equal(t, []domain.TaskEntry{
		{Task: "Post office (20 min)", TimeEstimate: "20 min"},
		{Task: "Bank", TimeEstimate: "15"},
	}, tasks)
	assert.Equal(t, []domain.ScheduleSlot{{Time: "8:00 AM", Task: "Errands"}}, plan.SuggestedSchedule)
	assert.Equal(t, "6", plan.TotalEstimatedTime)
}

func TestParseStructured_NullFields(t *testing.T) {
	plan, err := ParseStructured(`{"categories": null, "suggested_schedule": null, "total_estimated_time": null}`)

	require.NoError(t, err)
	assert.Empty(t, plan.Categories)
	assert.Empty(t, plan.SuggestedSchedule)
	assert.Equal(t, domain.DefaultTotalTime, plan.TotalEstimatedTime)
}

func TestParseStructured_Failures(t *testing.T) {
	cases := map[string]string{
		"no braces":              "🎯 Priority:\n- Finish UI",
		"malformed json":         `{"categories": {,}}`,
		"categories not object":  `{"categories": ["a"]}`,
		"category not list":      `{"categories": {"Work": "all of it"}}`,
		"schedule not list":      `{"suggested_schedule": {"time": "9"}}`,
		"total not string":       `{"total_estimated_time": {"hours": 6}}`,
		"stray brace after json": `{"categories": {}} see {note}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStructured(raw)
			assert.ErrorIs(t, err, llm.ErrInvalidOutput)
		})
	}
}

func TestParseText_AssignsBulletsToLatestHeader(t *testing.T) {
	text := `Here is your day.
- orphan bullet before any header

🎯 Priority Tasks: the important stuff
- Finish UI for dashboard (2 hrs)
- Prepare slides
Some commentary line
📨 Communication
- Email the client (15 min)
• Call the bank (10 minutes)
* not a bullet
`

	plan := ParseText(text, domain.DefaultHeaderMarkers())

	assert.Equal(t, []string{"🎯 Priority Tasks", "📨 Communication"}, plan.Categories.Labels())
	priority, _ := plan.Categories.Get("🎯 Priority Tasks")
	assert.Equal(t, []domain.TaskEntry{
		{Task: "Finish UI for dashboard (2 hrs)", TimeEstimate: "2 hrs"},
		{Task: "Prepare slides", TimeEstimate: "30 min"},
	}, priority)
	comms, _ := plan.Categories.Get("📨 Communication")
	assert.Equal(t, []domain.TaskEntry{
		{Task: "Email the client (15 min)", TimeEstimate: "15 min"},
		{Task: "Call the bank (10 minutes)", TimeEstimate: "10 minutes"},
	}, comms)
	assert.Empty(t, plan.SuggestedSchedule)
	assert.Equal(t, "0 hours", plan.TotalEstimatedTime)
}

func TestParseText_ExtraMarkersOpenCategories(t *testing.T) {
	plan := ParseText("🏠 Home:\n- Laundry (1 hr)\n📚 Study:\n- Chapter 3", domain.DefaultHeaderMarkers())

	assert.Equal(t, []string{"🏠 Home", "📚 Study"}, plan.Categories.Labels())
}

func TestParseText_RepeatedHeaderStartsOver(t *testing.T) {
	plan := ParseText("🎯 Focus\n- a\n💼 Work\n- b\n🎯 Focus\n- c", domain.DefaultHeaderMarkers())

	assert.Equal(t, []string{"🎯 Focus", "💼 Work"}, plan.Categories.Labels())
	focus, _ := plan.Categories.Get("🎯 Focus")
	assert.Equal(t, []domain.TaskEntry{{Task: "c", TimeEstimate: "30 min"}}, focus)
}

func TestParseText_CustomMarkers(t *testing.T) {
	plan := ParseText("[W] Work:\n- Ship release\n🎯 Priority:\n- Tag build", []string{"[W]"})

	// Without the emoji in the table its line is ordinary text, so the
	// following bullet stays in the open category.
	assert.Equal(t, []string{"[W] Work"}, plan.Categories.Labels())
	tasks, _ := plan.Categories.Get("[W] Work")
	assert.Equal(t, []domain.TaskEntry{
		{Task: "Ship release", TimeEstimate: "30 min"},
		{Task: "Tag build", TimeEstimate: "30 min"},
	}, tasks)
}

func TestParseText_EmptyBulletSkipped(t *testing.T) {
	plan := ParseText("💼 Work\n-\n-   \n- real", domain.DefaultHeaderMarkers())

	tasks, _ := plan.Categories.Get("💼 Work")
	assert.Equal(t, []domain.TaskEntry{{Task: "real", TimeEstimate: "30 min"}}, tasks)
}

func TestInterpreter_Interpret(t *testing.T) {
	in := NewInterpreter(nil)

	plan, source := in.Interpret(`{"total_estimated_time": "7 hours"}`)
	assert.Equal(t, SourceStructured, source)
	assert.Equal(t, "7 hours", plan.TotalEstimatedTime)

	plan, source = in.Interpret("💼 Work:\n- Deploy (1 hr)")
	assert.Equal(t, SourceText, source)
	tasks, _ := plan.Categories.Get("💼 Work")
	assert.Len(t, tasks, 1)

	// Broken JSON still gets the line parser, not an error.
	plan, source = in.Interpret("{ broken\n💼 Work:\n- Deploy }")
	assert.Equal(t, SourceText, source)
	tasks, _ = plan.Categories.Get("💼 Work")
	assert.Equal(t, []domain.TaskEntry{{Task: "Deploy }", TimeEstimate: "30 min"}}, tasks)
}

func TestParseText_HeaderWithoutLabelOpensNothing(t *testing.T) {
	plan := ParseText(": 🎯 focus\n- dropped\n💼 Work:\n- kept", domain.DefaultHeaderMarkers())

	assert.Equal(t, []string{"💼 Work"}, plan.Categories.Labels())
	tasks, _ := plan.Categories.Get("💼 Work")
	assert.Equal(t, []domain.TaskEntry{{Task: "kept", TimeEstimate: "30 min"}}, tasks)
}

func TestParseText_HeaderWithoutLabelClosesPreviousCategory(t *testing.T) {
	plan := ParseText("💼 Work:\n- a\n📚: notes\n- b", domain.DefaultHeaderMarkers())

	tasks, _ := plan.Categories.Get("💼 Work")
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, plan.Categories.TaskCount())
}
