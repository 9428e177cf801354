package domain

import "math"

const (
	// DefaultTargetMinutes replaces non-positive target durations on start.
	DefaultTargetMinutes = 30
	// WarningWindowSeconds is how long before the target the timer warns.
	WarningWindowSeconds = 60
)

// ActiveTask describes the task the timer is tracking.
type ActiveTask struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      Category `json:"category"`
	TargetMinutes int      `json:"targetMinutes"`
	ScheduledTime string   `json:"scheduledTime,omitempty"`
}

func (t ActiveTask) TargetSeconds() int {
	return t.TargetMinutes * 60
}

// TimeDisplay is the derived countdown view of the active session.
type TimeDisplay struct {
	Remaining    int     `json:"remaining"`
	Overtime     int     `json:"overtime"`
	Progress     float64 `json:"progress"`
	TotalElapsed int     `json:"totalElapsed"`
}

// DeriveStatus computes the timer status from raw session state.
// Both thresholds are inclusive.
func DeriveStatus(hasSession, paused bool, elapsedSeconds, targetSeconds int) TimerStatus {
	switch {
	case !hasSession:
		return TimerIdle
	case paused:
		return TimerPaused
	case elapsedSeconds >= targetSeconds:
		return TimerOvertime
	case elapsedSeconds >= targetSeconds-WarningWindowSeconds:
		return TimerWarning
	default:
		return TimerRunning
	}
}

// ComputeTimeDisplay derives remaining, overtime and progress.
func ComputeTimeDisplay(elapsedSeconds, targetSeconds int) TimeDisplay {
	d := TimeDisplay{TotalElapsed: elapsedSeconds}
	if targetSeconds > elapsedSeconds {
		d.Remaining = targetSeconds - elapsedSeconds
	} else {
		d.Overtime = elapsedSeconds - targetSeconds
	}
	if targetSeconds <= 0 {
		d.Progress = 100
		return d
	}
	d.Progress = math.Min(100, float64(elapsedSeconds)/float64(targetSeconds)*100)
	return d
}
