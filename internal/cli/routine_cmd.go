package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/fluxion/internal/cli/formatter"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/routine"
	"github.com/spf13/cobra"
)

func newRoutineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Manage the weekly routine",
	}

	cmd.AddCommand(
		newRoutineAddCmd(app),
		newRoutineListCmd(app),
		newRoutineRemoveCmd(app),
		newRoutineMoveCmd(app),
		newRoutineImportCmd(app),
		newRoutineExportCmd(app),
		newRoutineTodayCmd(app),
		newRoutineHoursCmd(app),
	)

	return cmd
}

func newRoutineAddCmd(app *App) *cobra.Command {
	var title, start string
	var duration float64
	var day weekdayValue
	category := newCategoryValue(domain.CategoryCoding)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a weekly block",
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, minute, err := routine.ParseClock(start)
			if err != nil {
				return err
			}

			b := &domain.RoutineBlock{
				Title:         title,
				Category:      category.Category(),
				Day:           int(day.day),
				StartHour:     hour,
				StartMinute:   minute,
				DurationHours: duration,
			}
			if err := app.Routines.Add(cmd.Context(), b); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s %s (%s)\n",
				formatter.Bold(b.Title), day.day,
				formatter.FormatBlockTime(b.StartHour, b.StartMinute, b.DurationHours), b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Block title")
	cmd.Flags().Var(category, "category", "dsa|coding|project|academic|personal|break")
	cmd.Flags().Var(&day, "day", "Day of week (name or 0-6, 0 = Sunday)")
	cmd.Flags().StringVar(&start, "start", "", "Start time HH:MM")
	cmd.Flags().Float64Var(&duration, "duration", 1, "Duration in hours")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newRoutineListCmd(app *App) *cobra.Command {
	var day weekdayValue

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List weekly blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				blocks []*domain.RoutineBlock
				err    error
			)
			if day.set {
				blocks, err = app.Routines.BlocksForDay(ctx, day.day)
			} else {
				blocks, err = app.Routines.List(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBlocks(blocks))
			return nil
		},
	}

	cmd.Flags().Var(&day, "day", "Only show one day")

	return cmd
}

func newRoutineRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a weekly block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Routines.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed block %s\n", args[0])
			return nil
		},
	}
}

func newRoutineMoveCmd(app *App) *cobra.Command {
	var day weekdayValue
	var hour int

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a block to another day and start hour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := app.Routines.Get(ctx, args[0])
			if err != nil {
				return err
			}

			wd := time.Weekday(current.Day)
			if day.set {
				wd = day.day
			}
			if !cmd.Flags().Changed("hour") {
				hour = current.StartHour
			}

			moved, err := app.Routines.Move(ctx, args[0], wd, hour)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s %s\n",
				formatter.Bold(moved.Title), time.Weekday(moved.Day),
				formatter.FormatBlockTime(moved.StartHour, moved.StartMinute, moved.DurationHours))
			return nil
		},
	}

	cmd.Flags().Var(&day, "day", "New day of week")
	cmd.Flags().IntVar(&hour, "hour", 0, "New start hour (0-23)")

	return cmd
}

// routinePath resolves the file argument, falling back to the configured
// routine file.
func routinePath(app *App, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return app.settings().RoutineFile
}

func newRoutineImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Replace the routine with a YAML catalog (- for stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := routinePath(app, args)
			if path == "" {
				return fmt.Errorf("no file given and routine_file is not configured")
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening routine file: %w", err)
				}
				defer f.Close()
				r = f
			}

			res, err := app.Routines.ImportYAML(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d blocks (replaced %d)\n", res.Imported, res.Replaced)
			return nil
		},
	}
}

func newRoutineExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the routine as YAML (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "-" {
				return app.Routines.ExportYAML(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating routine file: %w", err)
			}
			if err := app.Routines.ExportYAML(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}
}

func newRoutineTodayCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the routine checklist for today (or --date)",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Focus.TasksForDate(cmd.Context(), date)
			if err != nil {
				return err
			}
			label := date
			if label == "" {
				label = "today"
				if len(tasks) > 0 {
					label = tasks[0].Date
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTasks(label, tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")

	return cmd
}

func newRoutineHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hours",
		Short: "Planned weekly hours per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := app.Routines.WeeklyHoursByCategory(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeeklyHours(hours))
			return nil
		},
	}
}
