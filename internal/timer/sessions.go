package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/store"
)

// Sessions returns the focus session log in append order. A malformed log
// reads as empty.
func (e *Engine) Sessions(ctx context.Context) ([]domain.FocusSession, error) {
	var sessions []domain.FocusSession
	if _, err := store.GetJSON(ctx, e.store, store.KeyFocusSessions, &sessions); err != nil {
		return nil, fmt.Errorf("loading focus sessions: %w", err)
	}
	return sessions, nil
}

func (e *Engine) appendSession(ctx context.Context, s domain.FocusSession) error {
	sessions, err := e.Sessions(ctx)
	if err != nil {
		return err
	}
	sessions = append(sessions, s)
	return store.SetJSON(ctx, e.store, store.KeyFocusSessions, sessions)
}

// TodayFocusMinutes sums today's focus sessions in minutes.
func (e *Engine) TodayFocusMinutes(ctx context.Context) (float64, error) {
	today := domain.DateKey(e.clock.Now())
	return e.focusMinutes(ctx, func(date string) bool { return date == today })
}

// WeekFocusMinutes sums focus sessions dated within the last seven calendar
// days, today included.
func (e *Engine) WeekFocusMinutes(ctx context.Context) (float64, error) {
	from := domain.DateKey(domain.StartOfDay(e.clock.Now()).AddDate(0, 0, -6))
	return e.focusMinutes(ctx, func(date string) bool { return date >= from })
}

func (e *Engine) focusMinutes(ctx context.Context, match func(date string) bool) (float64, error) {
	sessions, err := e.Sessions(ctx)
	if err != nil {
		return 0, err
	}
	var seconds int
	for _, s := range sessions {
		if match(s.Date) {
			seconds += s.DurationSeconds
		}
	}
	return float64(seconds) / float64(time.Minute/time.Second), nil
}
