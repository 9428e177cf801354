package cli

import (
	"log/slog"

	"github.com/alexanderramin/fluxion/internal/config"
	"github.com/alexanderramin/fluxion/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings the commands run against.
type App struct {
	Focus    service.FocusService
	Routines service.RoutineService
	Stats    service.StatsService
	State    service.StateService

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Pickers are only
	// offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) settings() *config.Config {
	if a.Config == nil {
		return config.DefaultConfig()
	}
	return a.Config
}

// NewRootCmd creates the top-level "fluxion" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fluxion",
		Short:         "Focus timer and weekly routine tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTimerCmd(app),
		newRoutineCmd(app),
		newDoneCmd(app),
		newStreakCmd(app),
		newStatsCmd(app),
		newServeCmd(app),
		newStateCmd(app),
	)

	return root
}
