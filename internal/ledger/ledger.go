// Package ledger records per-day completion of routine blocks and derives
// streak and productive-day counts from those records.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/fluxion/internal/clock"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/store"
)

// maxStreakLookback bounds the backward walk of CurrentStreak.
const maxStreakLookback = 370

// Catalog is the read side of the routine block catalog.
type Catalog interface {
	List(ctx context.Context) ([]*domain.RoutineBlock, error)
}

type Ledger struct {
	store   store.Store
	catalog Catalog
	clock   clock.Clock
}

func New(s store.Store, catalog Catalog, c clock.Clock) *Ledger {
	return &Ledger{store: s, catalog: catalog, clock: c}
}

// Records returns every completion record. A malformed log reads as empty.
func (l *Ledger) Records(ctx context.Context) ([]domain.CompletionRecord, error) {
	var records []domain.CompletionRecord
	if _, err := store.GetJSON(ctx, l.store, store.KeyRoutineCompletion, &records); err != nil {
		return nil, fmt.Errorf("loading completion records: %w", err)
	}
	return records, nil
}

// Today returns today's date key in the clock's location.
func (l *Ledger) Today() string {
	return domain.DateKey(l.clock.Now())
}

// Toggle flips completion of blockID on date (today when empty) and reports
// the resulting state. The block does not have to exist in the catalog.
func (l *Ledger) Toggle(ctx context.Context, blockID, date string) (bool, error) {
	if date == "" {
		date = l.Today()
	} else if _, err := domain.ParseDateIn(date, time.UTC); err != nil {
		return false, err
	}

	records, err := l.Records(ctx)
	if err != nil {
		return false, err
	}

	now := l.clock.Now()
	completed := true
	idx := indexOf(records, blockID, date)
	switch {
	case idx < 0:
		records = append(records, domain.CompletionRecord{
			BlockID:     blockID,
			Date:        date,
			Completed:   true,
			CompletedAt: &now,
		})
	case records[idx].Completed:
		records = append(records[:idx], records[idx+1:]...)
		completed = false
	default:
		records[idx].Completed = true
		records[idx].CompletedAt = &now
	}

	if err := store.SetJSON(ctx, l.store, store.KeyRoutineCompletion, records); err != nil {
		return false, err
	}
	return completed, nil
}

// IsCompleted reports whether blockID has a completed record on date.
func (l *Ledger) IsCompleted(ctx context.Context, blockID, date string) (bool, error) {
	records, err := l.Records(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(records, blockID, date)
	return idx >= 0 && records[idx].Completed, nil
}

func indexOf(records []domain.CompletionRecord, blockID, date string) int {
	for i, r := range records {
		if r.BlockID == blockID && r.Date == date {
			return i
		}
	}
	return -1
}

// snapshot holds one consistent read of the catalog and the records.
type snapshot struct {
	blocks    []*domain.RoutineBlock
	completed map[string]domain.CompletionRecord
}

func (l *Ledger) snapshot(ctx context.Context) (*snapshot, error) {
	blocks, err := l.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing routine blocks: %w", err)
	}
	records, err := l.Records(ctx)
	if err != nil {
		return nil, err
	}
	snap := &snapshot{blocks: blocks, completed: make(map[string]domain.CompletionRecord, len(records))}
	for _, r := range records {
		if r.Completed {
			snap.completed[r.BlockID+"|"+r.Date] = r
		}
	}
	return snap, nil
}

func (s *snapshot) tasksFor(day time.Time) []domain.RoutineTask {
	date := domain.DateKey(day)
	weekday := int(day.Weekday())

	var tasks []domain.RoutineTask
	for _, b := range s.blocks {
		if b.Day != weekday || b.Category.IsBreak() {
			continue
		}
		t := domain.RoutineTask{
			ID:          b.ID + "-" + date,
			BlockID:     b.ID,
			Title:       b.Title,
			Category:    b.Category,
			StartHour:   b.StartHour,
			StartMinute: b.StartMinute,
			Duration:    b.DurationHours,
			Date:        date,
		}
		if rec, ok := s.completed[b.ID+"|"+date]; ok {
			t.Completed = true
			t.CompletedAt = rec.CompletedAt
		}
		tasks = append(tasks, t)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if am, bm := a.StartHour*60+a.StartMinute, b.StartHour*60+b.StartMinute; am != bm {
			return am < bm
		}
		return a.Title < b.Title
	})
	return tasks
}

func (s *snapshot) hasTaskBlocks() bool {
	for _, b := range s.blocks {
		if !b.Category.IsBreak() {
			return true
		}
	}
	return false
}

func allCompleted(tasks []domain.RoutineTask) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return len(tasks) > 0
}

func (l *Ledger) parseDate(date string) (time.Time, error) {
	if date == "" {
		return domain.StartOfDay(l.clock.Now()), nil
	}
	return domain.ParseDateIn(date, l.clock.Now().Location())
}

// TasksForDate resolves the non-break blocks scheduled on date's weekday and
// joins them with their completion state, ordered by start time.
func (l *Ledger) TasksForDate(ctx context.Context, date string) ([]domain.RoutineTask, error) {
	day, err := l.parseDate(date)
	if err != nil {
		return nil, err
	}
	snap, err := l.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.tasksFor(day), nil
}

func (l *Ledger) TodayTasks(ctx context.Context) ([]domain.RoutineTask, error) {
	return l.TasksForDate(ctx, "")
}

func (l *Ledger) TodayCompletedCount(ctx context.Context) (int, error) {
	tasks, err := l.TodayTasks(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n, nil
}

// IsAllCompleted reports whether date has scheduled tasks and all are done.
func (l *Ledger) IsAllCompleted(ctx context.Context, date string) (bool, error) {
	tasks, err := l.TasksForDate(ctx, date)
	if err != nil {
		return false, err
	}
	return allCompleted(tasks), nil
}

// CurrentStreak counts consecutive fully completed days walking back from
// yesterday, plus today once today is complete. Days with nothing scheduled
// are skipped.
func (l *Ledger) CurrentStreak(ctx context.Context) (int, error) {
	snap, err := l.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if !snap.hasTaskBlocks() {
		return 0, nil
	}

	today := domain.StartOfDay(l.clock.Now())
	streak := 0
	day := today.AddDate(0, 0, -1)
	for checked := 0; checked < maxStreakLookback; checked++ {
		tasks := snap.tasksFor(day)
		if len(tasks) > 0 {
			if !allCompleted(tasks) {
				break
			}
			streak++
		}
		day = day.AddDate(0, 0, -1)
	}

	if allCompleted(snap.tasksFor(today)) {
		streak++
	}
	return streak, nil
}

// ProductiveDates returns the distinct dates with at least one completed
// record, sorted ascending.
func (l *Ledger) ProductiveDates(ctx context.Context) ([]string, error) {
	records, err := l.Records(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var dates []string
	for _, r := range records {
		if r.Completed && !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (l *Ledger) ProductiveDays(ctx context.Context) (int, error) {
	dates, err := l.ProductiveDates(ctx)
	if err != nil {
		return 0, err
	}
	return len(dates), nil
}

// TotalCompleted counts completed records across all dates.
func (l *Ledger) TotalCompleted(ctx context.Context) (int, error) {
	records, err := l.Records(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range records {
		if r.Completed {
			n++
		}
	}
	return n, nil
}

// CompletionsForRange summarizes each date in [from, to] against the
// catalog. Records for blocks no longer in the catalog are not counted.
func (l *Ledger) CompletionsForRange(ctx context.Context, from, to string) ([]domain.DayCompletion, error) {
	start, err := l.parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := l.parseDate(to)
	if err != nil {
		return nil, err
	}
	snap, err := l.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.DayCompletion
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		tasks := snap.tasksFor(day)
		dc := domain.DayCompletion{Date: domain.DateKey(day), TotalTasks: len(tasks)}
		for _, t := range tasks {
			if t.Completed {
				dc.TasksCompleted++
			}
		}
		out = append(out, dc)
	}
	return out, nil
}
