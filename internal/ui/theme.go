package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"renshu/internal/progress"
)

// renshu theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconCheck    = "✅"
	IconOpen     = "⬜"
	IconFlame    = "🔥"
	IconSparkle  = "✨"
	IconLoop     = "🔁"
	IconPlus     = "➕"
	IconHidden   = "🙈"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconMorning  = "🌅"
	IconDaytime  = "☀️"
	IconEvening  = "🌙"
	IconCalendar = "📅"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeAllDone = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("DAY COMPLETE")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CheckIcon renders the completion box for a checklist entry.
func CheckIcon(done bool) string {
	if done {
		return IconCheck
	}
	return IconOpen
}

// TimeIcon maps a time-of-day bucket to its emoji.
func TimeIcon(t progress.TimeOfDay) string {
	switch t {
	case progress.TimeMorning:
		return IconMorning
	case progress.TimeAfternoon:
		return IconDaytime
	case progress.TimeEvening:
		return IconEvening
	default:
		return IconDaytime
	}
}

// Streak renders the streak counter with its flame.
func Streak(count int) string {
	if count <= 0 {
		return Muted.Render("no streak yet")
	}
	return Gold.Render(fmt.Sprintf("%s %d day streak", IconFlame, count))
}

// ProgressFraction renders "n/m" colored by completeness.
func ProgressFraction(completed, total int) string {
	s := fmt.Sprintf("%d/%d", completed, total)
	switch {
	case total > 0 && completed == total:
		return Good.Render(s)
	case completed > 0:
		return Warn.Render(s)
	default:
		return Muted.Render(s)
	}
}
