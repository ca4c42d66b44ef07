package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// maxStdinBytes caps piped input.
const maxStdinBytes = 1 << 20

var errNoInput = errors.New("no input provided: pass your tasks as arguments, pipe them on stdin, or run in a terminal")

// readPlanInput picks the task text from args, then piped stdin, then an
// interactive form when stdin is a terminal.
func readPlanInput(app *App, in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !app.interactive() {
		data, err := io.ReadAll(io.LimitReader(in, maxStdinBytes))
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	var text string
	if err := planInputForm(&text).Run(); err != nil {
		return "", err
	}
	return text, nil
}

// planInputForm returns a themed multi-line form for describing the day.
func planInputForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What's on your plate today?").
				Description("Write it the way you'd say it. Ctrl+J for a new line, Enter to plan.").
				Placeholder("finish the dashboard UI, follow up with the client, grocery shopping").
				CharLimit(4000).
				Value(value).
				Validate(validateNotBlank),
		),
	).WithTheme(taskflowHuhTheme()).WithShowHelp(false)
}

func validateNotBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("tell me at least one thing you need to do")
	}
	return nil
}
