// ABOUTME: Purchase endpoints: cart listing, quantity update, delete, buy
// ABOUTME: The server owns the cart; these calls only propose changes

package client

import (
	"context"
	"net/http"
	"strconv"
)

type purchasesResponse struct {
	envelope
	Data []Purchase `json:"data"`
}

type purchaseResponse struct {
	envelope
	Data Purchase `json:"data"`
}

type buyResponse struct {
	envelope
	Data []Purchase `json:"data"`
}

type deleteResponse struct {
	envelope
	Data struct {
		DeletedCount int `json:"deleted_count"`
	} `json:"data"`
}

// ListPurchases fetches purchases filtered by status (StatusInCart for
// the cart view, StatusAll and friends for order history).
func (c *Client) ListPurchases(ctx context.Context, status int) ([]Purchase, error) {
	var resp purchasesResponse
	if err := c.do(ctx, http.MethodGet, "purchases?status="+strconv.Itoa(status), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddToCart puts buyCount units of a product into the cart
func (c *Client) AddToCart(ctx context.Context, productID string, buyCount int) (*Purchase, error) {
	var resp purchaseResponse
	order := Order{ProductID: productID, BuyCount: buyCount}
	if err := c.do(ctx, http.MethodPost, "purchases/add-to-cart", order, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdatePurchase proposes a new quantity for a cart line
func (c *Client) UpdatePurchase(ctx context.Context, productID string, buyCount int) (*Purchase, error) {
	var resp purchaseResponse
	order := Order{ProductID: productID, BuyCount: buyCount}
	if err := c.do(ctx, http.MethodPut, "purchases/update-purchase", order, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeletePurchases removes one or many cart lines in a single call and
// returns how many the server deleted.
func (c *Client) DeletePurchases(ctx context.Context, purchaseIDs []string) (int, error) {
	var resp deleteResponse
	if err := c.do(ctx, http.MethodDelete, "purchases", purchaseIDs, &resp); err != nil {
		return 0, err
	}
	return resp.Data.DeletedCount, nil
}

// BuyProducts submits every order in one batch request and returns the
// server's confirmation message for the success notification.
func (c *Client) BuyProducts(ctx context.Context, orders []Order) (string, []Purchase, error) {
	var resp buyResponse
	if err := c.do(ctx, http.MethodPost, "purchases/buy-products", orders, &resp); err != nil {
		return "", nil, err
	}
	return resp.Message, resp.Data, nil
}
