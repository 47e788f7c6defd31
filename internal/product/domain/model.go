package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a row of the cleaned_products table maintained by the upstream
// ingestion pipeline. This service only ever reads it.
type Product struct {
	ID                 int64             `json:"-" gorm:"primaryKey"`
	HashID             string            `json:"hash_id" gorm:"column:hash_id;type:text;not null;index"`
	Title              string            `json:"title" gorm:"type:text"`
	Description        *string           `json:"description,omitempty" gorm:"type:text"`
	DescriptionEnglish *string           `json:"description_english,omitempty" gorm:"column:description_english;type:text"`
	Price              *float64          `json:"price,omitempty"`
	SalePrice          *float64          `json:"sale_price,omitempty" gorm:"column:sale_price"`
	Currency           string            `json:"currency" gorm:"type:text;default:EUR"`
	Image              *string           `json:"image,omitempty" gorm:"type:text"`
	Brand              *string           `json:"brand,omitempty" gorm:"type:text"`
	Availability       string            `json:"availability" gorm:"type:text"`
	Status             string            `json:"status" gorm:"type:text;index"`
	StoreID            *string           `json:"store_id,omitempty" gorm:"column:store_id;type:text;index"`
	AffiliateURL       *string           `json:"affiliate_url,omitempty" gorm:"column:affiliate_url;type:text"`
	Metadata           datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	UpdatedAt          *time.Time        `json:"updated_at,omitempty"`
}

func (Product) TableName() string { return "cleaned_products" }

const StatusPublished = "published"

// FeedEligible reports whether the row may appear in the sitemap or the
// shopping feed at all. The published/store/image filters are applied by the
// repository query; this guards the per-row identifier and title.
func (p Product) FeedEligible() bool {
	return p.HashID != "" && p.Title != ""
}

// DisplayPrice returns the price a buyer would pay: the sale price when it
// undercuts the regular price, the regular price otherwise. Nil when the row
// carries no price at all.
func (p Product) DisplayPrice() *float64 {
	if p.OnSale() {
		return p.SalePrice
	}
	return p.Price
}

// OnSale reports a genuine discount: a sale price strictly below the
// regular price.
func (p Product) OnSale() bool {
	return p.SalePrice != nil && p.Price != nil && *p.SalePrice < *p.Price
}

// CurrencyOrDefault falls back to EUR, the catalog's dominant currency.
func (p Product) CurrencyOrDefault() string {
	if p.Currency == "" {
		return "EUR"
	}
	return p.Currency
}

// AvailabilityOrDefault falls back to "in stock".
func (p Product) AvailabilityOrDefault() string {
	if p.Availability == "" {
		return "in stock"
	}
	return p.Availability
}
