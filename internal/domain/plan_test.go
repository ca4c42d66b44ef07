package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_MarshalKeepsInsertionOrder(t *testing.T) {
	var cats Categories
	cats.Set("Zeta", nil)
	cats.Append("Alpha", TaskEntry{Task: "write", TimeEstimate: "1 hr"})
	cats.Set("Mid", []TaskEntry{})

	data, err := json.Marshal(cats)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":[],"Alpha":[{"task":"write","time_estimate":"1 hr"}],"Mid":[]}`, string(data))
}

func TestCategories_UnmarshalKeepsDocumentOrder(t *testing.T) {
	var cats Categories
	err := json.Unmarshal([]byte(`{"b":[{"task":"x","time_estimate":"5 min"}],"a":[]}`), &cats)

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, cats.Labels())
	tasks, ok := cats.Get("b")
	require.True(t, ok)
	assert.Equal(t, []TaskEntry{{Task: "x", TimeEstimate: "5 min"}}, tasks)
}

func TestCategories_UnmarshalRejectsArray(t *testing.T) {
	var cats Categories
	err := json.Unmarshal([]byte(`[]`), &cats)
	assert.Error(t, err)
}

func TestCategories_SetExistingKeepsPosition(t *testing.T) {
	var cats Categories
	cats.Append("first", TaskEntry{Task: "a", TimeEstimate: "1 hr"})
	cats.Set("second", nil)
	cats.Set("first", nil)

	assert.Equal(t, []string{"first", "second"}, cats.Labels())
	tasks, _ := cats.Get("first")
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestNewPlan_SerialisesAllFields(t *testing.T) {
	data, err := json.Marshal(NewPlan())
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":{},"suggested_schedule":[],"total_estimated_time":"0 hours"}`, string(data))
}

func TestPlan_NilCategoriesSerialiseAsObject(t *testing.T) {
	data, err := json.Marshal(Plan{SuggestedSchedule: []ScheduleSlot{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":{},"suggested_schedule":[],"total_estimated_time":""}`, string(data))
}

func TestPlan_Validate(t *testing.T) {
	p := NewPlan()
	p.Categories.Append("🎯 Priority Tasks", TaskEntry{Task: "ship", TimeEstimate: "2 hrs"})
	assert.NoError(t, p.Validate())

	p.Categories.Append("🎯 Priority Tasks", TaskEntry{Task: " ", TimeEstimate: "2 hrs"})
	assert.ErrorIs(t, p.Validate(), ErrEmptyTask)

	p = NewPlan()
	p.Categories.Append("Work", TaskEntry{Task: "ship"})
	assert.ErrorIs(t, p.Validate(), ErrEmptyTimeEstimate)
}

func TestCanonicalCategories_Labels(t *testing.T) {
	var labels []string
	for _, c := range CanonicalCategories() {
		labels = append(labels, c.Label())
	}
	assert.Equal(t, []string{"🎯 Priority Tasks", "📨 Communication", "🛒 Personal", "💼 Work"}, labels)
}

func TestCanonicalCategories_ReturnsCopy(t *testing.T) {
	cats := CanonicalCategories()
	cats[0].Name = "changed"

	c, ok := CategoryByID(CategoryPriority)
	require.True(t, ok)
	assert.Equal(t, "Priority Tasks", c.Name)
}

func TestDefaultHeaderMarkers(t *testing.T) {
	markers := DefaultHeaderMarkers()
	assert.Equal(t, []string{"🎯", "📨", "🛒", "💼", "🏠", "📚"}, markers)
	assert.True(t, ContainsAnyMarker("🏠 Home: chores", markers))
	assert.False(t, ContainsAnyMarker("Home: chores", markers))
	assert.False(t, ContainsAnyMarker("anything", []string{""}))
}
