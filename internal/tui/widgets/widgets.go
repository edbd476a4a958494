// ABOUTME: Small render helpers shared by the product screens
// ABOUTME: Star ratings and a stock-remaining bar

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	starColor  = lipgloss.Color("#F59E0B")
	emptyColor = lipgloss.Color("#374151")
	stockColor = lipgloss.Color("#10B981")
	lowColor   = lipgloss.Color("#EF4444")
)

// RatingStars renders a five-star rating, rounding half-stars up
func RatingStars(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(rating + 0.5)

	filled := lipgloss.NewStyle().Foreground(starColor).Render(strings.Repeat("★", full))
	empty := lipgloss.NewStyle().Foreground(emptyColor).Render(strings.Repeat("☆", 5-full))
	return filled + empty
}

// StockBar renders how much of a product's stock remains after sales.
// Runs red once less than a tenth of the stock is left.
func StockBar(sold, quantity, width int) string {
	if width <= 0 {
		width = 10
	}
	total := sold + quantity
	if total <= 0 {
		return lipgloss.NewStyle().Foreground(emptyColor).Render(strings.Repeat("░", width))
	}

	remaining := float64(quantity) / float64(total)
	filled := int(remaining * float64(width))
	if filled > width {
		filled = width
	}

	color := stockColor
	if remaining < 0.1 {
		color = lowColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(emptyColor).Render(strings.Repeat("░", width-filled))
}
