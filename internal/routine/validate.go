package routine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/fluxion/internal/domain"
)

var (
	ErrInvalidBlock = errors.New("invalid routine block")
	ErrConflict     = errors.New("routine block overlaps an existing block")
)

// ValidateBlock returns every problem found with b.
func ValidateBlock(b *domain.RoutineBlock) []error {
	var errs []error
	if strings.TrimSpace(b.Title) == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	if !domain.ValidCategories[string(b.Category)] {
		errs = append(errs, fmt.Errorf("category %q is not one of dsa, coding, project, academic, personal, break", b.Category))
	}
	if b.Day < 0 || b.Day > 6 {
		errs = append(errs, fmt.Errorf("day %d out of range 0-6", b.Day))
	}
	if b.StartHour < 0 || b.StartHour > 23 {
		errs = append(errs, fmt.Errorf("start hour %d out of range 0-23", b.StartHour))
	}
	if b.StartMinute < 0 || b.StartMinute > 59 {
		errs = append(errs, fmt.Errorf("start minute %d out of range 0-59", b.StartMinute))
	}
	if b.DurationHours <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %g", b.DurationHours))
	}
	return errs
}

// ValidateCatalog checks every entry of a catalog file, prefixing errors
// with the entry position.
func ValidateCatalog(f *CatalogFile) []error {
	var errs []error
	if f.Version != 0 && f.Version != catalogVersion {
		errs = append(errs, fmt.Errorf("version %d is not supported", f.Version))
	}
	ids := make(map[string]bool)
	for i, e := range f.Blocks {
		if e.ID != "" {
			if ids[e.ID] {
				errs = append(errs, fmt.Errorf("blocks[%d]: duplicate id %q", i, e.ID))
			}
			ids[e.ID] = true
		}
		hour, minute, err := ParseClock(e.Start)
		if err != nil {
			errs = append(errs, fmt.Errorf("blocks[%d]: %w", i, err))
			continue
		}
		b := &domain.RoutineBlock{
			Title:         e.Title,
			Category:      domain.Category(e.Category),
			Day:           int(e.Day),
			StartHour:     hour,
			StartMinute:   minute,
			DurationHours: e.Duration,
		}
		for _, err := range ValidateBlock(b) {
			errs = append(errs, fmt.Errorf("blocks[%d] (%s): %w", i, e.Title, err))
		}
	}
	return errs
}

func joinValidation(errs []error) error {
	msg := fmt.Sprintf("%d problem(s):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidBlock, msg)
}
