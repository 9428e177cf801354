package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryStyle maps a routine category to its accent color.
func CategoryStyle(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryDSA:
		return StylePurple
	case domain.CategoryCoding:
		return StyleBlue
	case domain.CategoryProject:
		return StyleYellow
	case domain.CategoryAcademic:
		return StyleAqua
	case domain.CategoryPersonal:
		return StyleGreen
	default:
		return StyleDim
	}
}

// CategoryBadge renders the category label in its accent color.
func CategoryBadge(c domain.Category) string {
	return CategoryStyle(c).Render(c.Label())
}

// StatusStyle returns the style for a timer status: red once overtime,
// yellow in the warning window.
func StatusStyle(s domain.TimerStatus) lipgloss.Style {
	switch s {
	case domain.TimerRunning:
		return StyleGreen
	case domain.TimerWarning:
		return StyleYellow
	case domain.TimerOvertime:
		return StyleRed
	case domain.TimerPaused:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored timer status such as "● RUNNING".
func StatusIndicator(s domain.TimerStatus) string {
	symbol := "●"
	switch s {
	case domain.TimerPaused:
		symbol = "❚❚"
	case domain.TimerIdle:
		symbol = "○"
	case domain.TimerOvertime:
		symbol = "▲"
	}
	return StatusStyle(s).Render(fmt.Sprintf("%s %s", symbol, strings.ToUpper(string(s))))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
