package domain

import (
	"context"

	"gorm.io/gorm"
)

// ListFilter narrows the public catalog listing.
type ListFilter struct {
	Query          string
	StoreID        string
	Brand          string
	DiscountedOnly bool
	SortBy         string
	OrderBy        string
	Limit          int
	Offset         int
}

type Repository interface {
	// ListPublished returns every feed-eligible row: published, with a
	// store association and an image, newest first. Feeds and the sitemap
	// consume this in caller order.
	ListPublished(ctx context.Context, db *gorm.DB) ([]Product, error)

	// List returns a filtered page of published products plus the total
	// count before pagination.
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, int64, error)

	// Top returns the newest published deals, capped at limit.
	Top(ctx context.Context, db *gorm.DB, limit int) ([]Product, error)

	FindByHashID(ctx context.Context, db *gorm.DB, hashID string) (*Product, error)

	// FindByHashPrefix resolves a short-hash URL segment: the first
	// published row whose hash_id starts with the 8-character prefix.
	FindByHashPrefix(ctx context.Context, db *gorm.DB, prefix string) (*Product, error)
}
