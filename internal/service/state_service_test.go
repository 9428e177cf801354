package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/store"
	"github.com/alexanderramin/fluxion/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateService_ImportBrowserDumpRestoresRunningTimer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 10)))

	dump := `{
		"fluxion-active-task": "{\"id\":\"t1\",\"title\":\"Graphs\",\"category\":\"dsa\",\"targetMinutes\":25}",
		"fluxion-elapsed-seconds": "120",
		"fluxion-timer-paused": "false",
		"fluxion-timer-start": "2024-01-10T09:05:00.000Z",
		"fluxion-focus-sessions": [{"id":"s1","startTime":"2024-01-09T10:00:00Z","endTime":"2024-01-09T10:30:00Z","durationSeconds":1800,"category":"coding","date":"2024-01-09"}],
		"theme": "dark"
	}`

	keys, err := f.state.Import(ctx, strings.NewReader(dump))
	require.NoError(t, err)
	assert.Equal(t, []string{
		store.KeyActiveTask, store.KeyElapsedSeconds, store.KeyFocusSessions,
		store.KeyTimerPaused, store.KeyTimerStart,
	}, keys)

	snap := f.focus.Timer(ctx)
	require.NotNil(t, snap.Task)
	assert.Equal(t, "Graphs", snap.Task.Title)
	assert.Equal(t, domain.TimerRunning, snap.Status)
	assert.Equal(t, 120+5*60, snap.Elapsed)

	sessions, err := f.engine.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1800, sessions[0].DurationSeconds)

	_, ok, err := f.kv.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok, "unknown keys are ignored")
	assert.Equal(t, "import-state", f.obs.last().Name)
}

func TestStateService_ImportRemovesMissingKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0)))
	_, err := f.focus.StartTask(ctx, testutil.NewTestTask("t1"))
	require.NoError(t, err)

	keys, err := f.state.Import(ctx, strings.NewReader(`{"fluxion-focus-sessions": "[]"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyFocusSessions}, keys)

	assert.Equal(t, domain.TimerIdle, f.focus.Timer(ctx).Status)
	_, ok, err := f.kv.Get(ctx, store.KeyActiveTask)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateService_ImportRejectsNonObject(t *testing.T) {
	f := newFixture(t, testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0)))

	_, err := f.state.Import(context.Background(), strings.NewReader(`["not", "an", "object"]`))

	require.Error(t, err)
	assert.False(t, f.obs.last().Success)
}

func TestStateService_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock(testutil.At(2024, 1, 10, 9, 0))
	src := newFixture(t, clk)

	_, err := src.focus.StartTask(ctx, testutil.NewTestTask("t1", testutil.WithTarget(45)))
	require.NoError(t, err)
	clk.Advance(10 * time.Minute)
	_, err = src.focus.ToggleBlock(ctx, "b1", "2024-01-10")
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := src.state.Export(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "every key but the session log, which is still empty")

	var exported map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	assert.Contains(t, exported, store.KeyTimerStart)

	dst := newFixture(t, clk)
	_, err = dst.state.Import(ctx, &buf)
	require.NoError(t, err)

	snap := dst.focus.Timer(ctx)
	require.NotNil(t, snap.Task)
	assert.Equal(t, 45, snap.Task.TargetMinutes)
	assert.Equal(t, 600, snap.Elapsed)

	completed, err := dst.ledger.IsCompleted(ctx, "b1", "2024-01-10")
	require.NoError(t, err)
	assert.True(t, completed)
}
