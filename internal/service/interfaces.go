package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/timer"
)

// FocusService drives the active task timer and the completion ledger.
type FocusService interface {
	Timer(ctx context.Context) timer.Snapshot
	StartTask(ctx context.Context, task domain.ActiveTask) (timer.Snapshot, error)
	StartRoutineTask(ctx context.Context, blockID string) (timer.Snapshot, error)
	PauseTask(ctx context.Context) (timer.Snapshot, error)
	ResumeTask(ctx context.Context) (timer.Snapshot, error)
	ExtendTask(ctx context.Context, minutes int) (timer.Snapshot, error)
	StopTask(ctx context.Context, markCompleted bool) (*StopResult, error)

	ToggleBlock(ctx context.Context, blockID, date string) (bool, error)
	TasksForDate(ctx context.Context, date string) ([]domain.RoutineTask, error)
	Streak(ctx context.Context) (*StreakSummary, error)
}

// RoutineService manages the weekly routine catalog.
type RoutineService interface {
	Add(ctx context.Context, b *domain.RoutineBlock) error
	Update(ctx context.Context, b *domain.RoutineBlock) error
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, day time.Weekday, startHour int) (*domain.RoutineBlock, error)
	Get(ctx context.Context, id string) (*domain.RoutineBlock, error)
	List(ctx context.Context) ([]*domain.RoutineBlock, error)
	BlocksForDay(ctx context.Context, day time.Weekday) ([]*domain.RoutineBlock, error)
	HasConflict(ctx context.Context, day time.Weekday, startHour int, durationHours float64, excludeID string) (bool, error)
	WeeklyHoursByCategory(ctx context.Context) (map[domain.Category]float64, error)
	ImportYAML(ctx context.Context, r io.Reader) (*ImportResult, error)
	ExportYAML(ctx context.Context, w io.Writer) error
}

// StatsService exposes the analytics views.
type StatsService interface {
	DailySeries(ctx context.Context, days int) ([]domain.DailyData, error)
	CategoryDistribution(ctx context.Context) ([]domain.CategoryData, error)
	Totals(ctx context.Context) (domain.Totals, error)
	MonthHeatmap(ctx context.Context, month time.Time) ([]domain.HeatmapDay, error)
	GoalProgress(ctx context.Context) (domain.GoalProgress, error)
	Overview(ctx context.Context) (*Overview, error)
}

// StateService moves the persisted key-value state in and out as a
// localStorage-style JSON object.
type StateService interface {
	Export(ctx context.Context, w io.Writer) (int, error)
	Import(ctx context.Context, r io.Reader) ([]string, error)
}

// StopResult reports what a stop did.
type StopResult struct {
	Task           *domain.ActiveTask `json:"task,omitempty"`
	ElapsedSeconds int                `json:"elapsedSeconds"`
	BlockCompleted bool               `json:"blockCompleted"`
}

type StreakSummary struct {
	Current        int `json:"current"`
	ProductiveDays int `json:"productiveDays"`
	TotalCompleted int `json:"totalCompleted"`
	TodayCompleted int `json:"todayCompleted"`
	TodayTotal     int `json:"todayTotal"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Replaced int `json:"replaced"`
}

// Overview is the dashboard bundle: today's focus, goal and weekly totals.
type Overview struct {
	TodayFocusMinutes float64             `json:"todayFocusMinutes"`
	WeekFocusMinutes  float64             `json:"weekFocusMinutes"`
	Goal              domain.GoalProgress `json:"goal"`
	Totals            domain.Totals       `json:"totals"`
}
