// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, and text styles used across screens

package styles

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#EE4D2D") // Storefront orange
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Strike    = lipgloss.Color("#9CA3AF") // Struck-through old prices

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Price rendering
	Price = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	OldPrice = lipgloss.NewStyle().
			Foreground(Strike).
			Strikethrough(true)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Selection
	SelectedRow = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary)

	DisabledRow = lipgloss.NewStyle().
			Foreground(Muted)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	// Tabs
	ActiveTab = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true)

	InactiveTab = lipgloss.NewStyle().
			Foreground(Muted)
)

// FormatCurrency renders an amount in dong with dot thousand
// separators, matching the storefront's web rendering.
func FormatCurrency(amount int) string {
	s := strconv.Itoa(amount)
	neg := false
	if amount < 0 {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += "."
		}
		out += string(r)
	}
	if neg {
		out = "-" + out
	}
	return "₫" + out
}

// Truncate shortens a string to width runes, appending an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
