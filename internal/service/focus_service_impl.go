package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/ledger"
	"github.com/alexanderramin/fluxion/internal/repository"
	"github.com/alexanderramin/fluxion/internal/timer"
)

type focusService struct {
	engine   *timer.Engine
	ledger   *ledger.Ledger
	observer UseCaseObserver
}

func NewFocusService(engine *timer.Engine, l *ledger.Ledger, observers ...UseCaseObserver) FocusService {
	return &focusService{
		engine:   engine,
		ledger:   l,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *focusService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	observeUseCase(ctx, s.observer, name, startedAt, fields, err)
}

// Timer re-reads the persisted session before reporting it, so a
// long-running view follows changes made by other processes. A failed read
// is logged and the last known state is reported.
func (s *focusService) Timer(ctx context.Context) timer.Snapshot {
	if err := s.engine.Load(ctx); err != nil {
		s.observe(ctx, "refresh-timer", time.Now(), nil, err)
	}
	return s.engine.Snapshot()
}

func (s *focusService) StartTask(ctx context.Context, task domain.ActiveTask) (snap timer.Snapshot, err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": task.ID, "category": string(task.Category)}
	defer func() { s.observe(ctx, "start-task", startedAt, fields, err) }()

	if err = s.engine.Start(ctx, task); err != nil {
		return timer.Snapshot{}, fmt.Errorf("starting task: %w", err)
	}
	snap = s.engine.Snapshot()
	fields["target_min"] = snap.Task.TargetMinutes
	return snap, nil
}

// StartRoutineTask starts the timer on today's occurrence of a routine block.
// The target is the block duration; break blocks are timed as personal.
func (s *focusService) StartRoutineTask(ctx context.Context, blockID string) (snap timer.Snapshot, err error) {
	startedAt := time.Now()
	fields := map[string]any{"block_id": blockID}
	defer func() { s.observe(ctx, "start-routine-task", startedAt, fields, err) }()

	var tasks []domain.RoutineTask
	tasks, err = s.ledger.TodayTasks(ctx)
	if err != nil {
		return timer.Snapshot{}, err
	}
	for _, t := range tasks {
		if t.BlockID != blockID && t.ID != blockID {
			continue
		}
		if t.Completed {
			fields["skipped"] = "already completed"
			return s.Timer(ctx), nil
		}
		category := t.Category
		if category.IsBreak() {
			category = domain.CategoryPersonal
		}
		err = s.engine.Start(ctx, domain.ActiveTask{
			ID:            t.ID,
			Title:         t.Title,
			Category:      category,
			TargetMinutes: int(math.Round(t.Duration * 60)),
			ScheduledTime: FormatScheduledTime(t.StartHour, t.StartMinute),
		})
		if err != nil {
			return timer.Snapshot{}, fmt.Errorf("starting routine task: %w", err)
		}
		return s.engine.Snapshot(), nil
	}
	err = fmt.Errorf("no routine task %s scheduled today: %w", blockID, repository.ErrNotFound)
	return timer.Snapshot{}, err
}

// FormatScheduledTime renders a start time as "9:05 AM".
func FormatScheduledTime(hour, minute int) string {
	return time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC).Format("3:04 PM")
}

func (s *focusService) PauseTask(ctx context.Context) (snap timer.Snapshot, err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "pause-task", startedAt, nil, err) }()

	if err = s.engine.Pause(ctx); err != nil {
		return timer.Snapshot{}, fmt.Errorf("pausing task: %w", err)
	}
	return s.engine.Snapshot(), nil
}

func (s *focusService) ResumeTask(ctx context.Context) (snap timer.Snapshot, err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "resume-task", startedAt, nil, err) }()

	if err = s.engine.Resume(ctx); err != nil {
		return timer.Snapshot{}, fmt.Errorf("resuming task: %w", err)
	}
	return s.engine.Snapshot(), nil
}

func (s *focusService) ExtendTask(ctx context.Context, minutes int) (snap timer.Snapshot, err error) {
	startedAt := time.Now()
	fields := map[string]any{"minutes": minutes}
	defer func() { s.observe(ctx, "extend-task", startedAt, fields, err) }()

	if err = s.engine.AddTime(ctx, minutes); err != nil {
		return timer.Snapshot{}, fmt.Errorf("extending task: %w", err)
	}
	return s.engine.Snapshot(), nil
}

// StopTask stops the timer, then marks the matching routine task complete
// for today when asked to. The two writes are independent; a failed toggle
// leaves the recorded focus session in place.
func (s *focusService) StopTask(ctx context.Context, markCompleted bool) (res *StopResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"mark_completed": markCompleted}
	defer func() { s.observe(ctx, "stop-task", startedAt, fields, err) }()

	if err = s.engine.Load(ctx); err != nil {
		return nil, fmt.Errorf("stopping task: %w", err)
	}
	res = &StopResult{ElapsedSeconds: s.engine.Elapsed()}
	fields["elapsed_sec"] = res.ElapsedSeconds

	res.Task, err = s.engine.Stop(ctx, markCompleted)
	if err != nil {
		return nil, fmt.Errorf("stopping task: %w", err)
	}
	if res.Task == nil {
		return res, nil
	}

	var tasks []domain.RoutineTask
	tasks, err = s.ledger.TodayTasks(ctx)
	if err != nil {
		return res, fmt.Errorf("resolving routine task: %w", err)
	}
	for _, t := range tasks {
		if t.ID != res.Task.ID && t.BlockID != res.Task.ID {
			continue
		}
		if !t.Completed {
			if _, err = s.ledger.Toggle(ctx, t.BlockID, t.Date); err != nil {
				return res, fmt.Errorf("marking routine task complete: %w", err)
			}
		}
		res.BlockCompleted = true
		fields["block_id"] = t.BlockID
		break
	}
	return res, nil
}

func (s *focusService) ToggleBlock(ctx context.Context, blockID, date string) (completed bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{"block_id": blockID, "date": date}
	defer func() { s.observe(ctx, "toggle-block", startedAt, fields, err) }()

	completed, err = s.ledger.Toggle(ctx, blockID, date)
	if err != nil {
		return false, fmt.Errorf("toggling completion: %w", err)
	}
	fields["completed"] = completed
	return completed, nil
}

func (s *focusService) TasksForDate(ctx context.Context, date string) ([]domain.RoutineTask, error) {
	return s.ledger.TasksForDate(ctx, date)
}

func (s *focusService) Streak(ctx context.Context) (*StreakSummary, error) {
	var sum StreakSummary
	var err error
	if sum.Current, err = s.ledger.CurrentStreak(ctx); err != nil {
		return nil, err
	}
	if sum.ProductiveDays, err = s.ledger.ProductiveDays(ctx); err != nil {
		return nil, err
	}
	if sum.TotalCompleted, err = s.ledger.TotalCompleted(ctx); err != nil {
		return nil, err
	}
	today, err := s.ledger.TodayTasks(ctx)
	if err != nil {
		return nil, err
	}
	sum.TodayTotal = len(today)
	for _, t := range today {
		if t.Completed {
			sum.TodayCompleted++
		}
	}
	return &sum, nil
}

// IsNotFound reports whether err means a missing block or task.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
