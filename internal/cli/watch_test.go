package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/teatest"
	"github.com/alexanderramin/fluxion/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatchDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newWatchModel(context.Background(), app.Focus, app.settings().ExtendMinutes), teatest.WithSize(80, 24))
	d.DrainInit()
	return d
}

func TestWatch_IdleShowsHint(t *testing.T) {
	app, _ := testApp(t)
	d := newWatchDriver(t, app)

	view := stripANSI(d.View())
	assert.Contains(t, view, "No active task")
	assert.Contains(t, view, "pause")
	assert.Contains(t, view, "quit")
}

func TestWatch_TickRefreshesCountdown(t *testing.T) {
	app, clk := testApp(t)
	_, err := app.Focus.StartTask(context.Background(), testutil.NewTestTask("t1", testutil.WithTarget(2)))
	require.NoError(t, err)
	d := newWatchDriver(t, app)
	assert.Contains(t, stripANSI(d.View()), "02:00")

	clk.Advance(30 * time.Second)
	d.Send(tickMsg(clk.Now()))
	assert.Contains(t, stripANSI(d.View()), "01:30")

	clk.Advance(time.Minute)
	d.Send(tickMsg(clk.Now()))
	assert.Contains(t, stripANSI(d.View()), "WARNING")

	clk.Advance(45 * time.Second)
	d.Send(tickMsg(clk.Now()))
	view := stripANSI(d.View())
	assert.Contains(t, view, "+0:15")
	assert.Contains(t, view, "OVERTIME")
}

func TestWatch_KeysDriveTimer(t *testing.T) {
	app, clk := testApp(t)
	ctx := context.Background()
	id := addWednesdayBlock(t, app, "Graphs", "09:30")
	_, err := app.Focus.StartRoutineTask(ctx, id)
	require.NoError(t, err)
	d := newWatchDriver(t, app)

	clk.Advance(10 * time.Minute)
	d.PressKey('p')
	assert.Equal(t, domain.TimerPaused, app.Focus.Timer(ctx).Status)
	assert.Contains(t, stripANSI(d.View()), "PAUSED")

	clk.Advance(time.Hour)
	d.PressKey('r')
	assert.Equal(t, domain.TimerRunning, app.Focus.Timer(ctx).Status)

	d.PressKey('+')
	assert.Equal(t, 100, app.Focus.Timer(ctx).Task.TargetMinutes)
	assert.Contains(t, stripANSI(d.View()), "Extended by 10 min")

	clk.Advance(5 * time.Minute)
	d.PressKey('c')
	view := stripANSI(d.View())
	assert.Contains(t, view, "Logged 15:00 of focus")
	assert.Contains(t, view, "marked complete")
	assert.Equal(t, domain.TimerIdle, app.Focus.Timer(ctx).Status)

	tasks, err := app.Focus.TasksForDate(ctx, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	assert.False(t, d.Quitting)
}

func TestWatch_StopWithoutComplete(t *testing.T) {
	app, clk := testApp(t)
	ctx := context.Background()
	id := addWednesdayBlock(t, app, "Graphs", "09:30")
	_, err := app.Focus.StartRoutineTask(ctx, id)
	require.NoError(t, err)
	d := newWatchDriver(t, app)

	clk.Advance(time.Minute)
	d.PressKey('s')

	assert.Contains(t, stripANSI(d.View()), "Logged 01:00 of focus")
	tasks, err := app.Focus.TasksForDate(ctx, "")
	require.NoError(t, err)
	assert.False(t, tasks[0].Completed)
}

func TestWatch_QuitLeavesTimerRunning(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	_, err := app.Focus.StartTask(ctx, testutil.NewTestTask("t1"))
	require.NoError(t, err)
	d := newWatchDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.Quitting)
	assert.Equal(t, domain.TimerRunning, app.Focus.Timer(ctx).Status)
}

func TestWatch_CtrlCQuits(t *testing.T) {
	app, _ := testApp(t)
	d := newWatchDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.Quitting)
}

func TestWatch_IgnoresUnboundKeys(t *testing.T) {
	app, _ := testApp(t)
	d := newWatchDriver(t, app)
	before := d.View()

	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Equal(t, before, d.View())
	assert.False(t, d.Quitting)
}
