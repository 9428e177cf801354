package testutil

import (
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/google/uuid"
)

// RoutineBlock options
type BlockOption func(*domain.RoutineBlock)

func WithCategory(c domain.Category) BlockOption {
	return func(b *domain.RoutineBlock) {
		b.Category = c
	}
}

func WithDay(d time.Weekday) BlockOption {
	return func(b *domain.RoutineBlock) {
		b.Day = int(d)
	}
}

func WithStart(hour, minute int) BlockOption {
	return func(b *domain.RoutineBlock) {
		b.StartHour = hour
		b.StartMinute = minute
	}
}

func WithDuration(hours float64) BlockOption {
	return func(b *domain.RoutineBlock) {
		b.DurationHours = hours
	}
}

func WithBlockID(id string) BlockOption {
	return func(b *domain.RoutineBlock) {
		b.ID = id
	}
}

// NewTestBlock returns a one-hour Monday 09:00 coding block.
func NewTestBlock(title string, opts ...BlockOption) *domain.RoutineBlock {
	now := time.Now().UTC().Truncate(time.Second)
	b := &domain.RoutineBlock{
		ID:            uuid.New().String(),
		Title:         title,
		Category:      domain.CategoryCoding,
		Day:           int(time.Monday),
		StartHour:     9,
		DurationHours: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Task options
type TaskOption func(*domain.ActiveTask)

func WithTarget(minutes int) TaskOption {
	return func(t *domain.ActiveTask) {
		t.TargetMinutes = minutes
	}
}

func WithTaskCategory(c domain.Category) TaskOption {
	return func(t *domain.ActiveTask) {
		t.Category = c
	}
}

func WithScheduledTime(s string) TaskOption {
	return func(t *domain.ActiveTask) {
		t.ScheduledTime = s
	}
}

// NewTestTask returns a 30-minute coding task.
func NewTestTask(id string, opts ...TaskOption) domain.ActiveTask {
	t := domain.ActiveTask{
		ID:            id,
		Title:         "Task " + id,
		Category:      domain.CategoryCoding,
		TargetMinutes: domain.DefaultTargetMinutes,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
