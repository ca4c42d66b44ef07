package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/taskflow/internal/config"
	"github.com/alexanderramin/taskflow/internal/llm"
	"github.com/alexanderramin/taskflow/internal/logging"
	"github.com/alexanderramin/taskflow/internal/metrics"
	"github.com/alexanderramin/taskflow/internal/planner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// App holds the services shared by CLI commands. Fields left nil are wired
// from configuration before the first command runs.
type App struct {
	Planner    planner.PlanService
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	Config     config.Config
	LLMEnabled bool

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func addRootFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default ./taskflow.yaml)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
}

// NewRootCmd creates the top-level "taskflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Turn an unstructured task list into a daily plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.wire(opts)
		},
	}
	addRootFlags(root.PersistentFlags(), &opts)

	root.AddCommand(
		newPlanCmd(app),
		newServeCmd(app),
		newDemoCmd(app),
	)

	return root
}

// wire loads configuration and builds the logger, metrics and planner.
// A preset Planner is kept as is.
func (app *App) wire(opts rootOptions) error {
	if app.Planner != nil {
		if app.Logger == nil {
			app.Logger = zap.NewNop()
		}
		if app.Metrics == nil {
			app.Metrics = metrics.New()
		}
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	app.Config = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	app.Logger = logger
	app.Metrics = metrics.New()

	var observer llm.Observer = app.Metrics
	if cfg.LLM.LogCalls {
		observer = llm.MultiObserver{app.Metrics, llm.NewLogObserver(logger)}
	}

	client, err := llm.NewClient(cfg.LLM, observer)
	switch {
	case err == nil:
		app.LLMEnabled = true
		logger.Debug("completion provider ready",
			zap.String("provider", string(client.Provider())),
			zap.String("model", cfg.LLM.ModelName()),
		)
	case errors.Is(err, llm.ErrNotConfigured):
		client = nil
		logger.Info("no completion provider configured, plans use keyword classification", zap.Error(err))
	default:
		return err
	}

	app.Planner = planner.NewPlanService(client, logger,
		planner.WithRecorder(app.Metrics),
		planner.WithHeaderMarkers(cfg.Planner.HeaderMarkers),
		planner.WithKeywordRules(cfg.Planner.KeywordRules),
	)
	return nil
}
