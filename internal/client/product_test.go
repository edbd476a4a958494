// ABOUTME: Tests for product query encoding
// ABOUTME: Zero values must stay out of the request URL

package client

import (
	"net/url"
	"testing"
)

func TestProductQueryValues(t *testing.T) {
	tests := []struct {
		name  string
		query ProductQuery
		want  url.Values
	}{
		{
			name:  "zero query",
			query: ProductQuery{},
			want:  url.Values{},
		},
		{
			name:  "paging and sort",
			query: ProductQuery{Page: 2, Limit: 20, SortBy: "price", Order: "asc"},
			want: url.Values{
				"page":    {"2"},
				"limit":   {"20"},
				"sort_by": {"price"},
				"order":   {"asc"},
			},
		},
		{
			name: "filters",
			query: ProductQuery{
				Category:     "cat1",
				RatingFilter: 4,
				PriceMin:     1000,
				PriceMax:     5000,
				Name:         "điện thoại",
			},
			want: url.Values{
				"category":      {"cat1"},
				"rating_filter": {"4"},
				"price_min":     {"1000"},
				"price_max":     {"5000"},
				"name":          {"điện thoại"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.values()
			if got.Encode() != tt.want.Encode() {
				t.Errorf("values() = %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestProductQueryCacheKey_Stable(t *testing.T) {
	a := ProductQuery{Page: 1, Name: "phone", Category: "c1"}
	b := ProductQuery{Category: "c1", Name: "phone", Page: 1}
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("cache keys differ for equal queries: %q vs %q", a.CacheKey(), b.CacheKey())
	}
}
