// ABOUTME: Product catalogue endpoints: listing, detail, categories
// ABOUTME: Read-only calls, safe to serve from the client-side cache

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type productListResponse struct {
	envelope
	Data ProductList `json:"data"`
}

type productResponse struct {
	envelope
	Data Product `json:"data"`
}

type categoriesResponse struct {
	envelope
	Data []Category `json:"data"`
}

// ListProducts fetches a filtered, paginated product listing
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (*ProductList, error) {
	var resp productListResponse
	if err := c.do(ctx, http.MethodGet, "products?"+query.values().Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetProduct fetches one product by id
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "products/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListCategories fetches all product categories
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CacheKey returns a stable key for caching this query's result
func (q ProductQuery) CacheKey() string {
	return q.values().Encode()
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	setInt := func(key, s string) {
		if s != "0" {
			v.Set(key, s)
		}
	}
	setInt("page", strconv.Itoa(q.Page))
	setInt("limit", strconv.Itoa(q.Limit))
	setInt("rating_filter", strconv.Itoa(q.RatingFilter))
	setInt("price_min", strconv.Itoa(q.PriceMin))
	setInt("price_max", strconv.Itoa(q.PriceMax))
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Exclude != "" {
		v.Set("exclude", q.Exclude)
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	return v
}
