// Package analytics derives day-bucketed and category-bucketed views from
// the focus session log and the completion ledger. Every read recomputes
// from the logs.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/fluxion/internal/clock"
	"github.com/alexanderramin/fluxion/internal/domain"
)

const (
	// productiveFocusSeconds is the per-date focus total that makes a day
	// productive without any completed routine task.
	productiveFocusSeconds = 300
	// DefaultDailyGoalMinutes is the focus goal used when none is configured.
	DefaultDailyGoalMinutes = 120
	averageWindowDays       = 7
)

type SessionSource interface {
	Sessions(ctx context.Context) ([]domain.FocusSession, error)
}

type CompletionSource interface {
	Records(ctx context.Context) ([]domain.CompletionRecord, error)
}

type Aggregator struct {
	sessions    SessionSource
	completions CompletionSource
	clock       clock.Clock
	goalMinutes int
}

type Option func(*Aggregator)

// WithDailyGoal sets the daily focus goal in minutes. Non-positive values
// keep the default.
func WithDailyGoal(minutes int) Option {
	return func(a *Aggregator) {
		a.goalMinutes = domain.IntOrDefault(minutes, DefaultDailyGoalMinutes)
	}
}

func New(sessions SessionSource, completions CompletionSource, c clock.Clock, opts ...Option) *Aggregator {
	a := &Aggregator{
		sessions:    sessions,
		completions: completions,
		clock:       c,
		goalMinutes: DefaultDailyGoalMinutes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// logs is one read of both sources bucketed by date.
type logs struct {
	sessions       []domain.FocusSession
	secondsByDate  map[string]int
	completedCount map[string]int
	totalCompleted int
}

func (a *Aggregator) load(ctx context.Context) (*logs, error) {
	sessions, err := a.sessions.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading focus sessions: %w", err)
	}
	records, err := a.completions.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading completion records: %w", err)
	}

	l := &logs{
		sessions:       sessions,
		secondsByDate:  make(map[string]int),
		completedCount: make(map[string]int),
	}
	for _, s := range sessions {
		l.secondsByDate[s.Date] += s.DurationSeconds
	}
	for _, r := range records {
		if r.Completed {
			l.completedCount[r.Date]++
			l.totalCompleted++
		}
	}
	return l, nil
}

func (l *logs) day(d time.Time, label string) domain.DailyData {
	date := domain.DateKey(d)
	return domain.DailyData{
		Date:           date,
		Label:          label,
		FocusMinutes:   int(math.Round(float64(l.secondsByDate[date]) / 60)),
		TasksCompleted: l.completedCount[date],
	}
}

func (l *logs) series(today time.Time, days int) []domain.DailyData {
	out := make([]domain.DailyData, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		out = append(out, l.day(d, seriesLabel(d, days)))
	}
	return out
}

// seriesLabel is the short weekday for a week or less, else "Jan 2".
func seriesLabel(d time.Time, days int) string {
	if days <= 7 {
		return d.Format("Mon")
	}
	return d.Format("Jan 2")
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (a *Aggregator) today() time.Time {
	return domain.StartOfDay(a.clock.Now())
}

// DailySeries returns the last days calendar dates including today, oldest
// first. Non-positive days yields an empty series.
func (a *Aggregator) DailySeries(ctx context.Context, days int) ([]domain.DailyData, error) {
	if days <= 0 {
		return []domain.DailyData{}, nil
	}
	l, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return l.series(a.today(), days), nil
}

// CategoryDistribution sums focus hours per category, rounded to one
// decimal. Categories that round to zero are omitted.
func (a *Aggregator) CategoryDistribution(ctx context.Context) ([]domain.CategoryData, error) {
	l, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	seconds := make(map[domain.Category]int)
	for _, s := range l.sessions {
		seconds[s.Category] += s.DurationSeconds
	}

	out := []domain.CategoryData{}
	for cat, secs := range seconds {
		hours := roundTo1(float64(secs) / 3600)
		if hours <= 0 {
			continue
		}
		out = append(out, domain.CategoryData{Category: cat, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		return domain.CategoryLess(out[i].Category, out[j].Category)
	})
	return out, nil
}

// Totals bundles lifetime totals, seven-day averages and the productive-day
// count. A date is productive when it has a completed routine task or at
// least five minutes of summed focus time.
func (a *Aggregator) Totals(ctx context.Context) (domain.Totals, error) {
	l, err := a.load(ctx)
	if err != nil {
		return domain.Totals{}, err
	}

	var totalSeconds int
	for _, s := range l.sessions {
		totalSeconds += s.DurationSeconds
	}

	var weekFocus, weekTasks int
	for _, d := range l.series(a.today(), averageWindowDays) {
		weekFocus += d.FocusMinutes
		weekTasks += d.TasksCompleted
	}

	productive := make(map[string]bool, len(l.completedCount))
	for date := range l.completedCount {
		productive[date] = true
	}
	for date, secs := range l.secondsByDate {
		if secs >= productiveFocusSeconds {
			productive[date] = true
		}
	}

	return domain.Totals{
		TotalFocusHours:     roundTo1(float64(totalSeconds) / 3600),
		TotalTasksCompleted: l.totalCompleted,
		AvgDailyFocus:       int(math.Round(float64(weekFocus) / averageWindowDays)),
		AvgDailyTasks:       roundTo1(float64(weekTasks) / averageWindowDays),
		ProductiveDays:      len(productive),
	}, nil
}

// MonthHeatmap scores every day of the month containing month, or of the
// current month when month is zero. Intensity steps at scores above 0, 3, 6
// and 10 where score = tasks*2 + focusMin/30.
func (a *Aggregator) MonthHeatmap(ctx context.Context, month time.Time) ([]domain.HeatmapDay, error) {
	l, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	if month.IsZero() {
		month = a.today()
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	var out []domain.HeatmapDay
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := domain.DateKey(d)
		score := float64(l.completedCount[date])*2 + float64(l.secondsByDate[date])/60/30
		out = append(out, domain.HeatmapDay{
			Date:      date,
			Weekday:   int(d.Weekday()),
			Intensity: intensity(score),
		})
	}
	return out, nil
}

func intensity(score float64) int {
	switch {
	case score >= 10:
		return 4
	case score >= 6:
		return 3
	case score >= 3:
		return 2
	case score > 0:
		return 1
	default:
		return 0
	}
}

// GoalProgress compares today's focus minutes with the daily goal.
func (a *Aggregator) GoalProgress(ctx context.Context) (domain.GoalProgress, error) {
	l, err := a.load(ctx)
	if err != nil {
		return domain.GoalProgress{}, err
	}
	minutes := l.day(a.today(), "").FocusMinutes
	return domain.GoalProgress{
		FocusMinutes: minutes,
		GoalMinutes:  a.goalMinutes,
		Percent:      math.Min(100, roundTo1(float64(minutes)/float64(a.goalMinutes)*100)),
	}, nil
}
