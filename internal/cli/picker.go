package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/fluxion/internal/cli/formatter"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errNoTasks = errors.New("no routine tasks to choose from")

func fluxionHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskOptions builds picker options for tasks, skipping completed ones when
// pendingOnly is set.
func taskOptions(tasks []domain.RoutineTask, pendingOnly bool) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(tasks))
	for _, t := range tasks {
		if pendingOnly && t.Completed {
			continue
		}
		mark := "○"
		if t.Completed {
			mark = "✔"
		}
		label := fmt.Sprintf("%s %s  %s (%s)", mark,
			formatter.FormatBlockTime(t.StartHour, t.StartMinute, t.Duration), t.Title, t.Category.Label())
		options = append(options, huh.NewOption(label, t.BlockID))
	}
	return options
}

// pickTask asks the user to choose one of date's routine tasks and returns
// its block id.
func pickTask(ctx context.Context, app *App, title, date string, pendingOnly bool) (string, error) {
	tasks, err := app.Focus.TasksForDate(ctx, date)
	if err != nil {
		return "", err
	}
	options := taskOptions(tasks, pendingOnly)
	if len(options) == 0 {
		return "", errNoTasks
	}

	var blockID string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&blockID),
		),
	).WithTheme(fluxionHuhTheme()).WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return blockID, nil
}
