package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// demoInputs are the sample days run by "taskflow demo".
var demoInputs = []string{
	"I need to finish the UI for the dashboard, follow up with the client, prepare slides for tomorrow, and maybe finally go grocery shopping.",
	"Today I want to clean the house, call my mom, go to the gym, and maybe start reading that book I bought last week.",
	"I have a busy day: finish quarterly report, call marketing team, review budget, and schedule next week's meetings.",
}

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Plan a few sample days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			mode := "keyword classification"
			if app.LLMEnabled {
				mode = "language model"
			}
			fmt.Fprintf(out, "%s\n%s\n\n", formatter.Header("TaskFlow demo"), formatter.Dim("planning with "+mode))

			for i, input := range demoInputs {
				fmt.Fprintf(out, "%s %s\n\n", formatter.Bold(fmt.Sprintf("Example %d:", i+1)), input)

				res, err := app.Planner.CreateDailyPlan(cmd.Context(), input)
				if err != nil {
					return fmt.Errorf("example %d: %w", i+1, err)
				}
				fmt.Fprint(out, formatter.FormatPlanResult(res))
				fmt.Fprintln(out, formatter.Dim(strings.Repeat("─", 50)))
			}
			return nil
		},
	}
}
