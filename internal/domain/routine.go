package domain

import "time"

// RoutineBlock is a weekly recurring template item.
type RoutineBlock struct {
	ID            string    `json:"id" yaml:"id,omitempty"`
	Title         string    `json:"title" yaml:"title"`
	Category      Category  `json:"category" yaml:"category"`
	Day           int       `json:"day" yaml:"day"`
	StartHour     int       `json:"startHour" yaml:"startHour"`
	StartMinute   int       `json:"startMinute" yaml:"startMinute"`
	DurationHours float64   `json:"duration" yaml:"duration"`
	CreatedAt     time.Time `json:"-" yaml:"-"`
	UpdatedAt     time.Time `json:"-" yaml:"-"`
}

// StartOfDayMinutes returns minutes since midnight at which the block starts.
func (b RoutineBlock) StartOfDayMinutes() int {
	return b.StartHour*60 + b.StartMinute
}

// EndHour returns the fractional hour at which the block ends.
func (b RoutineBlock) EndHour() float64 {
	return float64(b.StartHour) + b.DurationHours
}

// Overlaps reports whether a block on the same day overlaps [startHour, startHour+duration).
func (b RoutineBlock) Overlaps(day, startHour int, durationHours float64) bool {
	if b.Day != day {
		return false
	}
	end := float64(startHour) + durationHours
	return float64(startHour) < b.EndHour() && end > float64(b.StartHour)
}

// RoutineTask is a routine block resolved against a specific date.
type RoutineTask struct {
	ID          string     `json:"id"`
	BlockID     string     `json:"blockId"`
	Title       string     `json:"title"`
	Category    Category   `json:"category"`
	StartHour   int        `json:"startHour"`
	StartMinute int        `json:"startMinute"`
	Duration    float64    `json:"duration"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Date        string     `json:"date"`
}

// CompletionRecord marks a routine block done on a calendar date.
type CompletionRecord struct {
	BlockID     string     `json:"blockId"`
	Date        string     `json:"date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// DayCompletion summarizes routine completion for one date.
type DayCompletion struct {
	Date           string `json:"date"`
	TasksCompleted int    `json:"tasksCompleted"`
	TotalTasks     int    `json:"totalTasks"`
}
