package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// ListPublished exposes the raw feed-eligible rows for the XML
	// builders, in recency order.
	ListPublished(ctx context.Context) ([]Product, error)

	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Top(ctx context.Context, limit int) ([]Response, error)

	// Resolve finds a product by a canonical URL path segment (either
	// encoding) or a bare hash id.
	Resolve(ctx context.Context, ref string) (*Response, error)
}

type ListRequest struct {
	Query          string
	StoreID        string
	Brand          string
	DiscountedOnly bool
	SortBy         string
	OrderBy        string
	Limit          int
	Offset         int
}

type ListResponse struct {
	Items  []Response `json:"items"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Response is the public product view: prices resolved, discount computed,
// canonical URL attached, store name joined in.
type Response struct {
	HashID          string     `json:"hash_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	SalePrice       *float64   `json:"sale_price,omitempty"`
	DisplayPrice    *float64   `json:"display_price,omitempty"`
	DiscountPercent *int       `json:"discount_percent,omitempty"`
	Currency        string     `json:"currency"`
	Image           *string    `json:"image,omitempty"`
	Brand           *string    `json:"brand,omitempty"`
	Availability    string     `json:"availability"`
	StoreID         *string    `json:"store_id,omitempty"`
	StoreName       string     `json:"store_name,omitempty"`
	URL             string     `json:"url"`
	AffiliateURL    *string    `json:"affiliate_url,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidRef   = errors.New("invalid_ref")
	ErrInvalidLimit = errors.New("invalid_limit")
	ErrInvalidSort  = errors.New("invalid_sort")
)
