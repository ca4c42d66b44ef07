package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/taskflow/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner and web page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = app.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Logger.Info("starting taskflow server",
				zap.String("addr", addr),
				zap.Bool("llm_enabled", app.LLMEnabled),
			)
			srv := server.New(app.Planner, app.Metrics, app.Logger, app.LLMEnabled)
			return srv.Run(ctx, addr, app.Config.Server.ShutdownTimeout())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "listen address (overrides server.addr and TASKFLOW_ADDR)")
	return cmd
}
