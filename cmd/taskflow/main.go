package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/taskflow/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}

	// Detect interactive terminal for the input prompt and spinner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	err := rootCmd.Execute()
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
	return err
}
