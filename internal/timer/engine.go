// Package timer implements the single active task timer: start, pause,
// resume, stop and extend, with state persisted on every transition so a
// restarted process picks the session back up.
package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fluxion/internal/clock"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/store"
	"github.com/google/uuid"
)

// Engine owns at most one active session. The store is the source of truth:
// every mutator re-reads it first, so engines in separate processes over one
// database never act on a session another one already stopped. It holds no
// locks; callers with more than one goroutine must serialize access.
type Engine struct {
	store store.Store
	clock clock.Clock
	newID func() string

	task          *domain.ActiveTask
	accumulated   int
	paused        bool
	intervalStart *time.Time
}

type Option func(*Engine)

// WithIDGenerator overrides the focus session id source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New builds an engine and restores any persisted session.
func New(ctx context.Context, s store.Store, c clock.Clock, opts ...Option) (*Engine, error) {
	e := &Engine{
		store: s,
		clock: c,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Load replaces in-memory state with what the store holds. Missing or
// malformed values leave the engine idle. On a read error the in-memory
// state is left as it was.
func (e *Engine) Load(ctx context.Context) error {
	var task domain.ActiveTask
	ok, err := store.GetJSON(ctx, e.store, store.KeyActiveTask, &task)
	if err != nil {
		return fmt.Errorf("loading active task: %w", err)
	}
	if !ok || task.ID == "" {
		e.reset()
		return nil
	}
	task.TargetMinutes = domain.IntOrDefault(task.TargetMinutes, domain.DefaultTargetMinutes)

	var elapsed int
	if _, err := store.GetJSON(ctx, e.store, store.KeyElapsedSeconds, &elapsed); err != nil {
		return fmt.Errorf("loading elapsed seconds: %w", err)
	}
	var paused bool
	if _, err := store.GetJSON(ctx, e.store, store.KeyTimerPaused, &paused); err != nil {
		return fmt.Errorf("loading paused flag: %w", err)
	}
	start, hasStart, err := e.loadIntervalStart(ctx)
	if err != nil {
		return err
	}

	e.reset()
	e.task = &task
	e.accumulated = max(elapsed, 0)
	switch {
	case paused:
		e.paused = true
	case hasStart:
		e.intervalStart = &start
	default:
		// Neither running nor paused on disk: keep the time, wait for resume.
		e.paused = true
	}
	return nil
}

// loadIntervalStart accepts both a JSON string and the bare timestamp the
// browser app wrote.
func (e *Engine) loadIntervalStart(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := e.store.Get(ctx, store.KeyTimerStart)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("loading interval start: %w", err)
	}
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339Nano, strings.Trim(strings.TrimSpace(raw), `"`))
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func (e *Engine) reset() {
	e.task = nil
	e.accumulated = 0
	e.paused = false
	e.intervalStart = nil
}

// Start discards any current session and begins timing task.
func (e *Engine) Start(ctx context.Context, task domain.ActiveTask) error {
	task.TargetMinutes = domain.IntOrDefault(task.TargetMinutes, domain.DefaultTargetMinutes)
	now := e.clock.Now()

	e.task = &task
	e.accumulated = 0
	e.paused = false
	e.intervalStart = &now

	if err := store.SetJSON(ctx, e.store, store.KeyActiveTask, task); err != nil {
		return err
	}
	return e.persistProgress(ctx)
}

// Pause folds the running interval into the accumulated total. No-op unless
// running.
func (e *Engine) Pause(ctx context.Context) error {
	if err := e.Load(ctx); err != nil {
		return err
	}
	if !e.running() {
		return nil
	}
	e.accumulated = e.Elapsed()
	e.intervalStart = nil
	e.paused = true
	return e.persistProgress(ctx)
}

// Resume opens a new running interval. No-op unless paused.
func (e *Engine) Resume(ctx context.Context) error {
	if err := e.Load(ctx); err != nil {
		return err
	}
	if e.task == nil || !e.paused {
		return nil
	}
	now := e.clock.Now()
	e.intervalStart = &now
	e.paused = false
	return e.persistProgress(ctx)
}

// Stop ends the session, appending a focus session when any time was
// recorded. The descriptor is returned only when markCompleted is set.
func (e *Engine) Stop(ctx context.Context, markCompleted bool) (*domain.ActiveTask, error) {
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	if e.task == nil {
		return nil, nil
	}
	elapsed := e.Elapsed()
	task := *e.task

	if elapsed > 0 {
		session := domain.NewFocusSession(e.newID(), e.clock.Now(), elapsed, task.Category)
		if err := e.appendSession(ctx, session); err != nil {
			return nil, err
		}
	}

	e.reset()
	if err := e.store.Remove(ctx, store.KeyActiveTask); err != nil {
		return nil, fmt.Errorf("clearing active task: %w", err)
	}
	if err := e.persistProgress(ctx); err != nil {
		return nil, err
	}

	if !markCompleted {
		return nil, nil
	}
	return &task, nil
}

// AddTime extends the target of the current session. No-op when idle or
// when minutes is not positive.
func (e *Engine) AddTime(ctx context.Context, minutes int) error {
	if err := e.Load(ctx); err != nil {
		return err
	}
	if e.task == nil || minutes <= 0 {
		return nil
	}
	e.task.TargetMinutes += minutes
	return store.SetJSON(ctx, e.store, store.KeyActiveTask, *e.task)
}

func (e *Engine) persistProgress(ctx context.Context) error {
	if err := store.SetJSON(ctx, e.store, store.KeyElapsedSeconds, e.accumulated); err != nil {
		return err
	}
	if err := store.SetJSON(ctx, e.store, store.KeyTimerPaused, e.paused); err != nil {
		return err
	}
	if e.intervalStart == nil {
		if err := e.store.Remove(ctx, store.KeyTimerStart); err != nil {
			return fmt.Errorf("clearing interval start: %w", err)
		}
		return nil
	}
	return store.SetJSON(ctx, e.store, store.KeyTimerStart, e.intervalStart.Format(time.RFC3339Nano))
}

func (e *Engine) running() bool {
	return e.task != nil && !e.paused && e.intervalStart != nil
}

// Elapsed is the accumulated total plus whole seconds of the open interval.
func (e *Engine) Elapsed() int {
	if e.task == nil {
		return 0
	}
	if e.intervalStart == nil {
		return e.accumulated
	}
	delta := int(e.clock.Now().Sub(*e.intervalStart) / time.Second)
	return e.accumulated + max(delta, 0)
}

func (e *Engine) Status() domain.TimerStatus {
	if e.task == nil {
		return domain.TimerIdle
	}
	return domain.DeriveStatus(true, e.paused, e.Elapsed(), e.task.TargetSeconds())
}

func (e *Engine) TimeDisplay() domain.TimeDisplay {
	if e.task == nil {
		return domain.TimeDisplay{}
	}
	return domain.ComputeTimeDisplay(e.Elapsed(), e.task.TargetSeconds())
}

// Active returns a copy of the current descriptor, or nil when idle.
func (e *Engine) Active() *domain.ActiveTask {
	if e.task == nil {
		return nil
	}
	t := *e.task
	return &t
}

// Snapshot bundles the derived view of the timer at one instant.
type Snapshot struct {
	Task    *domain.ActiveTask `json:"task"`
	Status  domain.TimerStatus `json:"status"`
	Paused  bool               `json:"paused"`
	Elapsed int                `json:"elapsedSeconds"`
	Display domain.TimeDisplay `json:"display"`
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Task:    e.Active(),
		Status:  e.Status(),
		Paused:  e.task != nil && e.paused,
		Elapsed: e.Elapsed(),
		Display: e.TimeDisplay(),
	}
}
