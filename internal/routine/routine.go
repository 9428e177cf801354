// Package routine holds the weekly routine catalog rules: block validation,
// overlap detection, per-day ordering, and the YAML catalog format.
package routine

import (
	"sort"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
)

// HasConflict reports whether a block on day starting at startHour for
// durationHours overlaps any of blocks, ignoring excludeID. Overlap is
// computed on whole start hours.
func HasConflict(blocks []*domain.RoutineBlock, day, startHour int, durationHours float64, excludeID string) bool {
	return FindConflict(blocks, day, startHour, durationHours, excludeID) != nil
}

// FindConflict returns the first block that overlaps, or nil.
func FindConflict(blocks []*domain.RoutineBlock, day, startHour int, durationHours float64, excludeID string) *domain.RoutineBlock {
	for _, b := range blocks {
		if b.ID == excludeID {
			continue
		}
		if b.Overlaps(day, startHour, durationHours) {
			return b
		}
	}
	return nil
}

// ForDay returns the blocks scheduled on day ordered by start time.
func ForDay(blocks []*domain.RoutineBlock, day time.Weekday) []*domain.RoutineBlock {
	var out []*domain.RoutineBlock
	for _, b := range blocks {
		if b.Day == int(day) {
			out = append(out, b)
		}
	}
	SortByStart(out)
	return out
}

// SortByStart orders blocks by day, then start time, then title.
func SortByStart(blocks []*domain.RoutineBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if am, bm := a.StartOfDayMinutes(), b.StartOfDayMinutes(); am != bm {
			return am < bm
		}
		return a.Title < b.Title
	})
}

// HoursByCategory sums scheduled hours per category over the week. Every
// known category, break included, is present even when zero.
func HoursByCategory(blocks []*domain.RoutineBlock) map[domain.Category]float64 {
	totals := make(map[domain.Category]float64, len(domain.TaskCategories)+1)
	for _, c := range domain.TaskCategories {
		totals[c] = 0
	}
	totals[domain.CategoryBreak] = 0
	for _, b := range blocks {
		totals[b.Category] += b.DurationHours
	}
	return totals
}

// FromEntry converts a validated catalog entry into a block stamped with id
// and now. Entries without an id get the generated one.
func FromEntry(e BlockEntry, id string, now time.Time) (*domain.RoutineBlock, error) {
	hour, minute, err := ParseClock(e.Start)
	if err != nil {
		return nil, err
	}
	return &domain.RoutineBlock{
		ID:            domain.CoalesceStr(e.ID, id),
		Title:         e.Title,
		Category:      domain.Category(e.Category),
		Day:           int(e.Day),
		StartHour:     hour,
		StartMinute:   minute,
		DurationHours: e.Duration,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Validate returns nil or an ErrInvalidBlock wrapping every problem.
func Validate(b *domain.RoutineBlock) error {
	if errs := ValidateBlock(b); len(errs) > 0 {
		return joinValidation(errs)
	}
	return nil
}

// ValidateFile returns nil or an ErrInvalidBlock wrapping every problem.
func ValidateFile(f *CatalogFile) error {
	if errs := ValidateCatalog(f); len(errs) > 0 {
		return joinValidation(errs)
	}
	return nil
}
