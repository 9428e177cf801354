package timer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/store"
	"github.com/alexanderramin/fluxion/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, s store.Store, clk *testutil.FakeClock) *Engine {
	t.Helper()
	n := 0
	e, err := New(context.Background(), s, clk, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}))
	require.NoError(t, err)
	return e
}

func TestEngine_StartsIdle(t *testing.T) {
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, store.NewMemory(), clk)

	assert.Equal(t, domain.TimerIdle, e.Status())
	assert.Nil(t, e.Active())
	assert.Equal(t, 0, e.Elapsed())
	assert.Equal(t, domain.TimeDisplay{}, e.TimeDisplay())
}

func TestEngine_WarningThenOvertimeThenExtend(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, store.NewMemory(), clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1", testutil.WithTarget(25))))
	assert.Equal(t, domain.TimerRunning, e.Status())

	clk.Advance(24*time.Minute + time.Second)
	assert.Equal(t, domain.TimerWarning, e.Status())

	clk.Advance(59 * time.Second)
	assert.Equal(t, 25*60, e.Elapsed())
	assert.Equal(t, domain.TimerOvertime, e.Status())

	require.NoError(t, e.AddTime(ctx, 15))
	assert.Equal(t, 40, e.Active().TargetMinutes)
	assert.Equal(t, domain.TimerRunning, e.Status())
}

func TestEngine_StartWithZeroTargetUsesDefault(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, store.NewMemory(), clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1", testutil.WithTarget(0))))
	assert.Equal(t, domain.DefaultTargetMinutes, e.Active().TargetMinutes)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t2", testutil.WithTarget(-5))))
	assert.Equal(t, domain.DefaultTargetMinutes, e.Active().TargetMinutes)
	assert.Equal(t, "t2", e.Active().ID)
}

func TestEngine_StartDiscardsPriorSession(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, store.NewMemory(), clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1")))
	clk.Advance(10 * time.Minute)
	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t2")))

	assert.Equal(t, 0, e.Elapsed())
	sessions, err := e.Sessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestEngine_PauseReloadResumeStop(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, s, clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1", testutil.WithTaskCategory(domain.CategoryDSA))))
	clk.Advance(10 * time.Minute)
	require.NoError(t, e.Pause(ctx))
	assert.Equal(t, domain.TimerPaused, e.Status())

	// Time spent paused is not counted.
	clk.Advance(2 * time.Hour)
	reloaded := newTestEngine(t, s, clk)
	assert.Equal(t, domain.TimerPaused, reloaded.Status())
	assert.Equal(t, 600, reloaded.Elapsed())

	require.NoError(t, reloaded.Resume(ctx))
	clk.Advance(5 * time.Minute)
	done, err := reloaded.Stop(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.Equal(t, "t1", done.ID)

	sessions, err := reloaded.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 900, sessions[0].DurationSeconds)
	assert.Equal(t, domain.CategoryDSA, sessions[0].Category)
	assert.Equal(t, clk.Now(), sessions[0].EndTime)
	assert.Equal(t, clk.Now().Add(-900*time.Second), sessions[0].StartTime)
	assert.Equal(t, "2024-01-10", sessions[0].Date)
	assert.Equal(t, domain.TimerIdle, reloaded.Status())
}

func TestEngine_ReloadWhileRunningAddsWallClockTime(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, s, clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1", testutil.WithTarget(60))))
	clk.Advance(3 * time.Minute)
	require.NoError(t, e.Pause(ctx))
	require.NoError(t, e.Resume(ctx))
	clk.Advance(2 * time.Minute)
	before := e.Elapsed()

	clk.Advance(3*time.Hour + 17*time.Second)
	reloaded := newTestEngine(t, s, clk)

	assert.InDelta(t, before+3*3600+17, reloaded.Elapsed(), 1)
	assert.Equal(t, domain.TimerOvertime, reloaded.Status())
}

func TestEngine_StopWithoutElapsedAppendsNothing(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, store.NewMemory(), clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1")))
	clk.Advance(500 * time.Millisecond)
	done, err := e.Stop(ctx, false)
	require.NoError(t, err)
	assert.Nil(t, done)

	sessions, err := e.Sessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Equal(t, domain.TimerIdle, e.Status())
}

func TestEngine_InvalidStateCallsAreNoOps(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, s, clk)

	require.NoError(t, e.Pause(ctx))
	require.NoError(t, e.Resume(ctx))
	require.NoError(t, e.AddTime(ctx, 10))
	done, err := e.Stop(ctx, true)
	require.NoError(t, err)
	assert.Nil(t, done)
	assert.Empty(t, s.Snapshot())

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1")))
	clk.Advance(time.Minute)
	require.NoError(t, e.Resume(ctx))
	assert.Equal(t, domain.TimerRunning, e.Status())
	require.NoError(t, e.Pause(ctx))
	require.NoError(t, e.Pause(ctx))
	assert.Equal(t, 60, e.Elapsed())

	require.NoError(t, e.AddTime(ctx, 0))
	require.NoError(t, e.AddTime(ctx, -3))
	assert.Equal(t, domain.DefaultTargetMinutes, e.Active().TargetMinutes)
}

func TestEngine_AddTimeWhilePausedPersists(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, s, clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1", testutil.WithTarget(20))))
	require.NoError(t, e.Pause(ctx))
	require.NoError(t, e.AddTime(ctx, 5))

	reloaded := newTestEngine(t, s, clk)
	assert.Equal(t, 25, reloaded.Active().TargetMinutes)
}

func TestEngine_StopClearsPersistedState(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, s, clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1")))
	clk.Advance(time.Minute)
	_, err := e.Stop(ctx, false)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.NotContains(t, snap, store.KeyActiveTask)
	assert.NotContains(t, snap, store.KeyTimerStart)
	assert.Equal(t, "0", snap[store.KeyElapsedSeconds])
	assert.Equal(t, "false", snap[store.KeyTimerPaused])

	reloaded := newTestEngine(t, s, clk)
	assert.Equal(t, domain.TimerIdle, reloaded.Status())
}

func TestEngine_LoadMalformedStateFallsBackToIdle(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, store.KeyActiveTask, "{not json"))
	require.NoError(t, s.Set(ctx, store.KeyFocusSessions, "[oops"))
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))

	e := newTestEngine(t, s, clk)
	assert.Equal(t, domain.TimerIdle, e.Status())

	sessions, err := e.Sessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestEngine_LoadBrowserFormatStart(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, store.KeyActiveTask, `{"id":"b1","title":"Graphs","category":"dsa","targetMinutes":45}`))
	require.NoError(t, s.Set(ctx, store.KeyElapsedSeconds, "120"))
	require.NoError(t, s.Set(ctx, store.KeyTimerPaused, "false"))
	require.NoError(t, s.Set(ctx, store.KeyTimerStart, "2024-01-10T09:00:00.000Z"))
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 10))

	e := newTestEngine(t, s, clk)
	assert.Equal(t, domain.TimerRunning, e.Status())
	assert.Equal(t, 120+600, e.Elapsed())
	assert.Equal(t, "Graphs", e.Active().Title)
}

func TestEngine_LoadDescriptorWithoutIntervalIsPaused(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, store.KeyActiveTask, `{"id":"b1","title":"Essay","category":"academic","targetMinutes":0}`))
	require.NoError(t, s.Set(ctx, store.KeyElapsedSeconds, "300"))
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))

	e := newTestEngine(t, s, clk)
	assert.Equal(t, domain.TimerPaused, e.Status())
	assert.Equal(t, 300, e.Elapsed())
	assert.Equal(t, domain.DefaultTargetMinutes, e.Active().TargetMinutes)
}

func TestEngine_ClockGoingBackwardsDoesNotShrinkElapsed(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, store.NewMemory(), clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1")))
	clk.Advance(-time.Hour)
	assert.Equal(t, 0, e.Elapsed())
}

func TestEngine_ElapsedNeverDecreases(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, s, clk)
	rng := rand.New(rand.NewSource(42))

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1")))
	last := 0
	for i := 0; i < 500; i++ {
		clk.Advance(time.Duration(rng.Intn(90)) * time.Second)
		switch rng.Intn(5) {
		case 0:
			require.NoError(t, e.Pause(ctx))
		case 1:
			require.NoError(t, e.Resume(ctx))
		case 2:
			require.NoError(t, e.AddTime(ctx, rng.Intn(3)))
		case 3:
			e = newTestEngine(t, s, clk)
		}
		got := e.Elapsed()
		require.GreaterOrEqual(t, got, last, "step %d", i)
		last = got
	}

	_, err := e.Stop(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TimerIdle, e.Status())
}

func TestEngine_FocusMinutesWindows(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	now := testutil.At(2024, 1, 10, 18, 0)
	sessions := []domain.FocusSession{
		domain.NewFocusSession("a", now.Add(-time.Hour), 1800, domain.CategoryCoding),
		domain.NewFocusSession("b", now.AddDate(0, 0, -6), 600, domain.CategoryDSA),
		domain.NewFocusSession("c", now.AddDate(0, 0, -7), 3600, domain.CategoryDSA),
	}
	require.NoError(t, store.SetJSON(ctx, s, store.KeyFocusSessions, sessions))
	e := newTestEngine(t, s, testutil.NewFakeClock(now))

	today, err := e.TodayFocusMinutes(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, today, 1e-9)

	week, err := e.WeekFocusMinutes(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, week, 1e-9)
}

func TestEngine_SnapshotReflectsState(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, store.NewMemory(), clk)

	require.NoError(t, e.Start(ctx, testutil.NewTestTask("t1", testutil.WithTarget(10))))
	clk.Advance(5 * time.Minute)
	require.NoError(t, e.Pause(ctx))

	snap := e.Snapshot()
	require.NotNil(t, snap.Task)
	assert.Equal(t, domain.TimerPaused, snap.Status)
	assert.True(t, snap.Paused)
	assert.Equal(t, 300, snap.Elapsed)
	assert.Equal(t, 300, snap.Display.Remaining)
	assert.InDelta(t, 50.0, snap.Display.Progress, 1e-9)
}

type failingStore struct {
	store.Store
	err error
}

func (f failingStore) Set(context.Context, string, string) error { return f.err }

func TestEngine_StorageErrorsSurface(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	e := newTestEngine(t, failingStore{Store: store.NewMemory(), err: boom}, clk)

	err := e.Start(ctx, testutil.NewTestTask("t1"))
	assert.ErrorIs(t, err, boom)
}

func TestEngine_SharedStoreStopIsRecordedOnce(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	server := newTestEngine(t, s, clk)

	require.NoError(t, server.Start(ctx, testutil.NewTestTask("t1")))
	clk.Advance(10 * time.Minute)

	cli := newTestEngine(t, s, clk)
	_, err := cli.Stop(ctx, false)
	require.NoError(t, err)
	clk.Advance(5 * time.Minute)

	require.NoError(t, server.Pause(ctx))
	assert.Equal(t, domain.TimerIdle, server.Status())
	_, err = server.Stop(ctx, false)
	require.NoError(t, err)

	sessions, err := server.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 600, sessions[0].DurationSeconds)
}

func TestEngine_MutatorsFollowOtherWriters(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	a := newTestEngine(t, s, clk)
	b := newTestEngine(t, s, clk)

	require.NoError(t, a.Start(ctx, testutil.NewTestTask("t1", testutil.WithTarget(20))))
	clk.Advance(4 * time.Minute)
	require.NoError(t, b.Pause(ctx))
	assert.Equal(t, 240, b.Elapsed())

	clk.Advance(time.Hour)
	require.NoError(t, a.AddTime(ctx, 5))
	assert.Equal(t, domain.TimerPaused, a.Status())
	assert.Equal(t, 240, a.Elapsed())
	assert.Equal(t, 25, a.Active().TargetMinutes)

	require.NoError(t, b.Resume(ctx))
	assert.Equal(t, 25, b.Active().TargetMinutes)
}
