package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/planner"
	"github.com/spf13/cobra"
)

type planOptions struct {
	asJSON  bool
	timeout time.Duration
}

// planJSON is the --json output shape.
type planJSON struct {
	ID     string       `json:"id"`
	Source string       `json:"source"`
	Model  string       `json:"model,omitempty"`
	Plan   *domain.Plan `json:"plan"`
}

func newPlanCmd(app *App) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan [text...]",
		Short: "Build a daily plan from a free-text task list",
		Long: "Build a daily plan from a free-text task list.\n\n" +
			"Text is taken from the arguments, then from stdin when it is piped,\n" +
			"then from an interactive prompt when running in a terminal.",
		Example: `  taskflow plan "finish the dashboard UI, call the client, buy groceries"
  echo "review budget and call mom" | taskflow plan --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPlanInput(app, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if opts.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.timeout)
				defer cancel()
			}

			showSpinner := app.interactive() && !opts.asJSON
			res, err := createPlan(ctx, app.Planner, text, showSpinner, cmd.ErrOrStderr())
			if err != nil {
				if errors.Is(err, planner.ErrEmptyInput) {
					return errNoInput
				}
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(planJSON{
					ID:     res.ID,
					Source: string(res.Source),
					Model:  res.Model,
					Plan:   res.Plan,
				})
			}
			fmt.Fprint(out, formatter.FormatPlanResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the plan as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall time limit for building the plan (0 for none)")
	return cmd
}
