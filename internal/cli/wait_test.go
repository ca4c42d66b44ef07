package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/taskflow/internal/planner"
	"github.com/alexanderramin/taskflow/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanWaitModel_Done(t *testing.T) {
	want := &planner.PlanResult{ID: "abc", Source: planner.SourceKeyword}
	m := newPlanWaitModel("Planning...", nil, func() {})

	model, cmd := m.Update(planDoneMsg{result: want})

	got := model.(planWaitModel)
	assert.True(t, got.done)
	assert.Same(t, want, got.result)
	assert.NoError(t, got.err)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, got.View())
}

func TestPlanWaitModel_DonePropagatesError(t *testing.T) {
	m := newPlanWaitModel("Planning...", nil, func() {})

	model, _ := m.Update(planDoneMsg{err: planner.ErrEmptyInput})

	assert.ErrorIs(t, model.(planWaitModel).err, planner.ErrEmptyInput)
}

func TestPlanWaitModel_CancelKey(t *testing.T) {
	cancelled := false
	m := newPlanWaitModel("Planning...", nil, func() { cancelled = true })

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	got := model.(planWaitModel)
	assert.True(t, cancelled)
	assert.True(t, errors.Is(got.err, context.Canceled))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlanWaitModel_IgnoresOtherKeys(t *testing.T) {
	m := newPlanWaitModel("Planning...", nil, func() { t.Fatal("unexpected cancel") })

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.False(t, model.(planWaitModel).done)
	assert.Nil(t, cmd)
	assert.Contains(t, model.(planWaitModel).View(), "Planning...")
}

func TestValidateNotBlank(t *testing.T) {
	assert.Error(t, validateNotBlank(" \n\t"))
	assert.NoError(t, validateNotBlank("walk the dog"))
}

func TestReadPlanInput_ArgsWinOverStdin(t *testing.T) {
	got, err := readPlanInput(&App{}, nil, []string{"call", "mom"})

	require.NoError(t, err)
	assert.Equal(t, "call mom", got)
}

func TestPlanWaitModel_DrivenToCompletion(t *testing.T) {
	svc := planner.NewPlanService(nil, nil)
	run := func() tea.Msg {
		res, err := svc.CreateDailyPlan(context.Background(), "prepare the presentation slides")
		return planDoneMsg{result: res, err: err}
	}
	d := teatest.New(t, newPlanWaitModel("Planning...", run, func() {}))

	d.DrainInit()

	require.True(t, d.Quitting)
	got := d.Model.(planWaitModel)
	require.NoError(t, got.err)
	require.NotNil(t, got.result)
	assert.Equal(t, planner.SourceKeyword, got.result.Source)
	assert.Empty(t, d.View())
}

func TestPlanWaitModel_CtrlCWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	block := func() tea.Msg {
		<-ctx.Done()
		return planDoneMsg{err: ctx.Err()}
	}
	d := teatest.New(t, newPlanWaitModel("Planning...", block, cancel))

	d.PressCtrlC()

	assert.True(t, d.Quitting)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.ErrorIs(t, d.Model.(planWaitModel).err, context.Canceled)
}
