package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/service"
	"github.com/alexanderramin/fluxion/internal/timer"
)

const timerBarWidth = 30

// TimerClock is the big countdown figure: remaining time, or +overtime once
// the target has passed.
func TimerClock(snap timer.Snapshot) string {
	if snap.Status == domain.TimerOvertime {
		return FormatOvertime(snap.Display.Overtime)
	}
	return FormatClock(snap.Display.Remaining)
}

// FormatTimer renders the timer panel for status output and the watch view.
func FormatTimer(snap timer.Snapshot) string {
	if snap.Task == nil {
		return Dim("No active task. Start one with `fluxion timer start --title` or `--block`.")
	}

	var b strings.Builder
	t := snap.Task
	b.WriteString(Bold(t.Title))
	b.WriteString("  ")
	b.WriteString(CategoryBadge(t.Category))
	if t.ScheduledTime != "" {
		b.WriteString("  ")
		b.WriteString(Dim("@ " + t.ScheduledTime))
	}
	b.WriteString("\n\n")

	style := StatusStyle(snap.Status)
	b.WriteString(style.Bold(true).Render(TimerClock(snap)))
	b.WriteString("  ")
	b.WriteString(StatusIndicator(snap.Status))
	b.WriteString("\n")

	b.WriteString(RenderCompactBar(snap.Display.Progress/100, timerBarWidth, style))
	b.WriteString("  ")
	b.WriteString(Dim(fmt.Sprintf("%s / %s",
		FormatClock(snap.Display.TotalElapsed), FormatMinutes(t.TargetMinutes))))
	b.WriteString("\n")
	return b.String()
}

// FormatStopResult summarizes a stopped session.
func FormatStopResult(res *service.StopResult) string {
	if res == nil || (res.ElapsedSeconds == 0 && res.Task == nil) {
		return Dim("Timer stopped. Nothing recorded.")
	}
	msg := fmt.Sprintf("%s %s %s",
		StyleGreen.Render("✔ Logged"), Bold(FormatClock(res.ElapsedSeconds)), StyleGreen.Render("of focus"))
	if res.BlockCompleted {
		msg += "\n" + StyleGreen.Render("✔ Routine block marked complete")
	}
	return msg
}
