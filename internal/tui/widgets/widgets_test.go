// ABOUTME: Tests for the shared render helpers
// ABOUTME: Star counts and stock bar proportions

package widgets

import (
	"strings"
	"testing"
)

func TestRatingStars(t *testing.T) {
	tests := []struct {
		rating float64
		full   int
	}{
		{0, 0},
		{4.6, 5},
		{4.2, 4},
		{5, 5},
		{-1, 0},
		{9, 5},
	}
	for _, tt := range tests {
		got := RatingStars(tt.rating)
		if n := strings.Count(got, "★"); n != tt.full {
			t.Errorf("RatingStars(%v): %d full stars, want %d", tt.rating, n, tt.full)
		}
		if n := strings.Count(got, "☆"); n != 5-tt.full {
			t.Errorf("RatingStars(%v): %d empty stars, want %d", tt.rating, n, 5-tt.full)
		}
	}
}

func TestStockBar(t *testing.T) {
	full := StockBar(0, 100, 10)
	if strings.Count(full, "▓") != 10 {
		t.Errorf("untouched stock should fill the bar: %q", full)
	}

	half := StockBar(50, 50, 10)
	if strings.Count(half, "▓") != 5 {
		t.Errorf("half-sold stock should half-fill the bar: %q", half)
	}

	empty := StockBar(0, 0, 10)
	if strings.Count(empty, "░") != 10 {
		t.Errorf("no stock data should render empty: %q", empty)
	}
}
