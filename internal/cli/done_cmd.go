package cli

import (
	"fmt"

	"github.com/alexanderramin/fluxion/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDoneCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "done [BLOCK]",
		Short: "Toggle a routine block's completion for today (or --date)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var blockID string
			switch {
			case len(args) == 1:
				blockID = args[0]
			case app.interactive():
				picked, err := pickTask(ctx, app, "Toggle which block?", date, false)
				if err != nil {
					return err
				}
				blockID = picked
			default:
				return fmt.Errorf("a block ID is required")
			}

			completed, err := app.Focus.ToggleBlock(ctx, blockID, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if completed {
				fmt.Fprintln(out, formatter.StyleGreen.Render("✔ Marked "+blockID+" complete"))
			} else {
				fmt.Fprintln(out, formatter.Dim("○ Marked "+blockID+" not done"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), default today")

	return cmd
}

func newStreakCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the all-tasks-done streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := app.Focus.Streak(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStreak(sum))
			return nil
		},
	}
}
