package formatter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/service"
)

// FormatBlocks renders the weekly catalog grouped by day, Sunday first.
func FormatBlocks(blocks []*domain.RoutineBlock) string {
	if len(blocks) == 0 {
		return Dim("No routine blocks. Add one with `fluxion routine add`.")
	}

	byDay := make(map[int][]*domain.RoutineBlock)
	for _, b := range blocks {
		byDay[b.Day] = append(byDay[b.Day], b)
	}

	var b strings.Builder
	for day := 0; day < 7; day++ {
		list := byDay[day]
		if len(list) == 0 {
			continue
		}
		b.WriteString(Header(time.Weekday(day).String()))
		b.WriteString("\n")
		rows := make([][]string, 0, len(list))
		for _, blk := range list {
			rows = append(rows, []string{
				FormatBlockTime(blk.StartHour, blk.StartMinute, blk.DurationHours),
				Bold(blk.Title),
				CategoryBadge(blk.Category),
				TruncID(blk.ID),
			})
		}
		b.WriteString(RenderTable([]string{"TIME", "TITLE", "CATEGORY", "ID"}, rows))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTasks renders one day's routine checklist.
func FormatTasks(date string, tasks []domain.RoutineTask) string {
	if len(tasks) == 0 {
		return Dim(fmt.Sprintf("No routine tasks scheduled for %s.", date))
	}

	done := 0
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		check := StyleDim.Render("○")
		title := Bold(t.Title)
		if t.Completed {
			done++
			check = StyleGreen.Render("✔")
			title = Dim(t.Title)
		}
		rows = append(rows, []string{
			check,
			FormatBlockTime(t.StartHour, t.StartMinute, t.Duration),
			title,
			CategoryBadge(t.Category),
			TruncID(t.BlockID),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Routine " + date))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"", "TIME", "TASK", "CATEGORY", "BLOCK"}, rows))
	b.WriteString("\n")
	b.WriteString(RenderProgress(float64(done)/float64(len(tasks)), 20))
	b.WriteString("  ")
	b.WriteString(Dim(fmt.Sprintf("%d/%d done", done, len(tasks))))
	return b.String()
}

// FormatWeeklyHours lists planned hours per category in canonical order.
func FormatWeeklyHours(hours map[domain.Category]float64) string {
	rows := make([][]string, 0, len(domain.TaskCategories)+1)
	var total float64
	cats := append(slices.Clone(domain.TaskCategories), domain.CategoryBreak)
	for _, c := range cats {
		h := hours[c]
		total += h
		rows = append(rows, []string{CategoryBadge(c), FormatHours(h)})
	}
	rows = append(rows, []string{Bold("Total"), Bold(FormatHours(total))})
	return RenderTable([]string{"CATEGORY", "PLANNED"}, rows)
}

// FormatStreak renders the streak summary line set.
func FormatStreak(s *service.StreakSummary) string {
	var b strings.Builder
	flame := StyleDim.Render("Streak")
	if s.Current > 0 {
		flame = StyleHeader.Render("Streak")
	}
	fmt.Fprintf(&b, "%s  %s\n", flame, Bold(fmt.Sprintf("%d day%s", s.Current, plural(s.Current))))
	fmt.Fprintf(&b, "%s  %d/%d\n", Dim("Today "), s.TodayCompleted, s.TodayTotal)
	fmt.Fprintf(&b, "%s  %d\n", Dim("Productive days"), s.ProductiveDays)
	fmt.Fprintf(&b, "%s  %d", Dim("Tasks completed"), s.TotalCompleted)
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
