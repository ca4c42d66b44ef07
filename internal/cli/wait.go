package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/planner"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type planDoneMsg struct {
	result *planner.PlanResult
	err    error
}

var cancelKeys = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

// planWaitModel shows a spinner while a plan is being built.
type planWaitModel struct {
	spinner spinner.Model
	message string
	run     tea.Cmd
	cancel  context.CancelFunc

	result *planner.PlanResult
	err    error
	done   bool
}

func newPlanWaitModel(message string, run tea.Cmd, cancel context.CancelFunc) planWaitModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = formatter.StylePurple
	return planWaitModel{spinner: s, message: message, run: run, cancel: cancel}
}

func (m planWaitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m planWaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planDoneMsg:
		m.result, m.err, m.done = msg.result, msg.err, true
		return m, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, cancelKeys) {
			m.cancel()
			m.err, m.done = context.Canceled, true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m planWaitModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("  %s %s\n", m.spinner.View(), formatter.Dim(m.message))
}

// createPlan builds a plan for text, showing a spinner on out when
// showSpinner is set.
func createPlan(ctx context.Context, svc planner.PlanService, text string, showSpinner bool, out io.Writer) (*planner.PlanResult, error) {
	if !showSpinner {
		return svc.CreateDailyPlan(ctx, text)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := func() tea.Msg {
		res, err := svc.CreateDailyPlan(ctx, text)
		return planDoneMsg{result: res, err: err}
	}
	model := newPlanWaitModel("Planning your day...", run, cancel)

	final, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	if err != nil {
		return nil, fmt.Errorf("running spinner: %w", err)
	}
	m := final.(planWaitModel)
	return m.result, m.err
}
