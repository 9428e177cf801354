package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatClock renders seconds as mm:ss, or h:mm:ss from one hour up.
// Negative input renders as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatOvertime renders overtime seconds as "+m:ss".
func FormatOvertime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("+%d:%02d", seconds/60, seconds%60)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours renders fractional hours with one decimal, trimming ".0".
func FormatHours(h float64) string {
	s := fmt.Sprintf("%.1f", h)
	return strings.TrimSuffix(s, ".0") + "h"
}

// FormatBlockTime renders a start and duration as "09:30–11:00".
func FormatBlockTime(hour, minute int, durationHours float64) string {
	start := time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC)
	end := start.Add(time.Duration(durationHours * float64(time.Hour)))
	return start.Format("15:04") + "–" + end.Format("15:04")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanDate renders a YYYY-MM-DD key relative to today's key.
func HumanDate(date, today string) string {
	if date == today {
		return "Today"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	if tt, err := time.Parse("2006-01-02", today); err == nil && tt.AddDate(0, 0, -1).Equal(t) {
		return "Yesterday"
	}
	return t.Format("Mon, Jan 2")
}
