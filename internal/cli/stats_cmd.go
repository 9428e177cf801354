package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fluxion/internal/cli/formatter"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Focus analytics (overview when run without a subcommand)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := app.Stats.Overview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOverview(ov))
			return nil
		},
	}

	cmd.AddCommand(
		newStatsDailyCmd(app),
		newStatsCategoriesCmd(app),
		newStatsTotalsCmd(app),
		newStatsHeatmapCmd(app),
	)

	return cmd
}

func newStatsDailyCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Focus minutes and completed tasks per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			series, err := app.Stats.DailySeries(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailySeries(series))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days ending today")

	return cmd
}

func newStatsCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "All-time focus hours by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			dist, err := app.Stats.CategoryDistribution(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategories(dist))
			return nil
		},
	}
}

func newStatsTotalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Lifetime totals and 7-day averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			totals, err := app.Stats.Totals(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTotals(totals))
			return nil
		},
	}
}

func newStatsHeatmapCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Monthly activity calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			var m time.Time
			if month != "" {
				parsed, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --month %q (want YYYY-MM)", month)
				}
				m = parsed
			}
			cells, err := app.Stats.MonthHeatmap(cmd.Context(), m)
			if err != nil {
				return err
			}
			if m.IsZero() && len(cells) > 0 {
				m, _ = domain.ParseDateIn(cells[0].Date, time.Local)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHeatmap(m.Format("January 2006"), cells))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM), default current")

	return cmd
}
