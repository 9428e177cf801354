package cli

import (
	"fmt"

	"github.com/alexanderramin/fluxion/internal/cli/formatter"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Drive the focus timer",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerPauseCmd(app),
		newTimerResumeCmd(app),
		newTimerStopCmd(app),
		newTimerExtendCmd(app),
		newTimerStatusCmd(app),
		newTimerWatchCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	var title, blockID, id string
	var target int
	category := newCategoryValue(domain.CategoryCoding)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start timing a task or today's routine block",
		Long: "Start timing an ad-hoc task with --title, or today's occurrence of a routine\n" +
			"block with --block. With neither flag an interactive picker is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if blockID == "" && title == "" {
				if !app.interactive() {
					return fmt.Errorf("--title or --block is required")
				}
				picked, err := pickTask(ctx, app, "Start which block?", "", true)
				if err != nil {
					return err
				}
				blockID = picked
			}

			var (
				snap timer.Snapshot
				err  error
			)
			if blockID != "" {
				snap, err = app.Focus.StartRoutineTask(ctx, blockID)
			} else {
				if id == "" {
					id = uuid.New().String()
				}
				if target <= 0 {
					target = app.settings().DefaultTarget
				}
				snap, err = app.Focus.StartTask(ctx, domain.ActiveTask{
					ID:            id,
					Title:         title,
					Category:      category.Category(),
					TargetMinutes: target,
				})
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(snap))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().Var(category, "category", "Task category")
	cmd.Flags().IntVar(&target, "target", 0, "Target minutes (default from config)")
	cmd.Flags().StringVar(&id, "id", "", "Task ID (generated when empty)")
	cmd.Flags().StringVar(&blockID, "block", "", "Routine block ID to start for today")
	cmd.MarkFlagsMutuallyExclusive("title", "block")

	return cmd
}

func newTimerPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Focus.PauseTask(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(snap))
			return nil
		},
	}
}

func newTimerResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Focus.ResumeTask(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(snap))
			return nil
		},
	}
}

func newTimerStopCmd(app *App) *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and log the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Focus.StopTask(cmd.Context(), done)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStopResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&done, "done", false, "Mark the matching routine block complete for today")

	return cmd
}

func newTimerExtendCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "extend",
		Short: "Add minutes to the current target",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes <= 0 {
				minutes = app.settings().ExtendMinutes
			}
			snap, err := app.Focus.ExtendTask(cmd.Context(), minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(snap))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Minutes to add (default from config)")

	return cmd
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimer(app.Focus.Timer(cmd.Context())))
			return nil
		},
	}
}

func newTimerWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live countdown with keyboard controls",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newWatchModel(cmd.Context(), app.Focus, app.settings().ExtendMinutes)
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}
			if wm, ok := final.(watchModel); ok && wm.err != nil {
				return wm.err
			}
			return nil
		},
	}
}
