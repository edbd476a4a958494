// ABOUTME: Domain types for the storefront API
// ABOUTME: Mirrors the remote service's JSON shapes, envelope included

package client

import "github.com/dontuty123/shopctl/internal/session"

// Envelope wraps every successful response body
type envelope struct {
	Message string `json:"message"`
}

// Category is a product category
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Product is a server-owned product record
type Product struct {
	ID                  string   `json:"_id"`
	Name                string   `json:"name"`
	Image               string   `json:"image"`
	Images              []string `json:"images"`
	Description         string   `json:"description"`
	Category            Category `json:"category"`
	Price               int      `json:"price"`
	PriceBeforeDiscount int      `json:"price_before_discount"`
	Quantity            int      `json:"quantity"`
	Sold                int      `json:"sold"`
	View                int      `json:"view"`
	Rating              float64  `json:"rating"`
	CreatedAt           string   `json:"createdAt"`
	UpdatedAt           string   `json:"updatedAt"`
}

// Pagination describes the product list paging state
type Pagination struct {
	Page     int `json:"page"`
	Limit    int `json:"limit"`
	PageSize int `json:"page_size"`
}

// ProductList is the payload of GET products
type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// ProductQuery narrows and orders a product listing. Zero values are
// omitted from the request.
type ProductQuery struct {
	Page         int
	Limit        int
	Order        string // asc | desc
	SortBy       string // createdAt | view | sold | price
	Category     string
	Exclude      string
	RatingFilter int
	PriceMin     int
	PriceMax     int
	Name         string
}

// Purchase statuses understood by the purchases endpoints
const (
	StatusInCart              = -1
	StatusAll                 = 0
	StatusWaitForConfirmation = 1
	StatusWaitForGetting      = 2
	StatusInProgress          = 3
	StatusDelivered           = 4
	StatusCancelled           = 5
)

// Purchase is a server-owned cart/order line. The client never owns
// the authoritative quantity or price; it only proposes changes.
type Purchase struct {
	ID                  string  `json:"_id"`
	BuyCount            int     `json:"buy_count"`
	Price               int     `json:"price"`
	PriceBeforeDiscount int     `json:"price_before_discount"`
	Status              int     `json:"status"`
	User                string  `json:"user"`
	Product             Product `json:"product"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// Order is the body shape for add-to-cart, update and buy calls
type Order struct {
	ProductID string `json:"product_id"`
	BuyCount  int    `json:"buy_count"`
}

// AuthData is the payload of login and register responses
type AuthData struct {
	AccessToken string          `json:"access_token"`
	Expires     string          `json:"expires"`
	User        session.Profile `json:"user"`
}
