package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/service"
)

const chartBarWidth = 24

var heatmapCells = []string{"·", "░", "▒", "▓", "█"}

// FormatDailySeries renders one bar per day scaled to the busiest day.
func FormatDailySeries(days []domain.DailyData) string {
	if len(days) == 0 {
		return Dim("No days requested.")
	}
	peak := 0
	for _, d := range days {
		peak = max(peak, d.FocusMinutes)
	}

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		pct := 0.0
		if peak > 0 {
			pct = float64(d.FocusMinutes) / float64(peak)
		}
		rows = append(rows, []string{
			d.Label,
			RenderCompactBar(pct, chartBarWidth, StyleBlue),
			FormatMinutes(d.FocusMinutes),
			fmt.Sprintf("%d", d.TasksCompleted),
		})
	}
	return RenderTable([]string{"DAY", "FOCUS", "TIME", "TASKS"}, rows)
}

// FormatCategories renders the all-time focus hours split by category.
func FormatCategories(cats []domain.CategoryData) string {
	if len(cats) == 0 {
		return Dim("No focus sessions recorded yet.")
	}
	var total float64
	for _, c := range cats {
		total += c.Hours
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			CategoryBadge(c.Category),
			RenderCompactBar(c.Hours/total, chartBarWidth, CategoryStyle(c.Category)),
			FormatHours(c.Hours),
		})
	}
	return RenderTable([]string{"CATEGORY", "SHARE", "HOURS"}, rows)
}

// FormatTotals renders lifetime totals and the trailing averages.
func FormatTotals(t domain.Totals) string {
	rows := [][]string{
		{"Focus time", Bold(FormatHours(t.TotalFocusHours))},
		{"Tasks completed", Bold(fmt.Sprintf("%d", t.TotalTasksCompleted))},
		{"Productive days", Bold(fmt.Sprintf("%d", t.ProductiveDays))},
		{"Avg focus / day (7d)", FormatMinutes(t.AvgDailyFocus)},
		{"Avg tasks / day (7d)", fmt.Sprintf("%.1f", t.AvgDailyTasks)},
	}
	return RenderTable([]string{"METRIC", "VALUE"}, rows)
}

// FormatHeatmap renders a month as a Sunday-first calendar grid.
func FormatHeatmap(title string, days []domain.HeatmapDay) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(Dim("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")
	if len(days) == 0 {
		return b.String()
	}

	col := days[0].Weekday
	b.WriteString(strings.Repeat("   ", col))
	for _, d := range days {
		level := min(max(d.Intensity, 0), len(heatmapCells)-1)
		cell := heatmapCells[level]
		style := StyleDim
		if level > 0 {
			style = StyleGreen
		}
		b.WriteString(style.Render(cell + cell))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	b.WriteString(Dim("less"))
	b.WriteString(" ")
	for _, c := range heatmapCells {
		b.WriteString(StyleGreen.Render(c))
	}
	b.WriteString(" ")
	b.WriteString(Dim("more"))
	return b.String()
}

// FormatOverview renders the dashboard summary box.
func FormatOverview(o *service.Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Today"), Bold(FormatMinutes(int(o.TodayFocusMinutes))))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Week "), Bold(FormatMinutes(int(o.WeekFocusMinutes))))
	fmt.Fprintf(&b, "%s  %s %s\n", Dim("Goal "),
		RenderProgress(o.Goal.Percent/100, 20),
		Dim(fmt.Sprintf("%d/%dm", o.Goal.FocusMinutes, o.Goal.GoalMinutes)))
	fmt.Fprintf(&b, "%s  %s over %d productive days", Dim("Total"),
		FormatHours(o.Totals.TotalFocusHours), o.Totals.ProductiveDays)
	return RenderBox("Overview", b.String())
}
