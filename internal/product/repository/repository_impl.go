package repository

import (
	"context"
	"strings"

	"github.com/shopshout/shopshout/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// published narrows to the feed-eligible subset: published rows with a store
// association and an image. Mirrors the upstream query the site has always
// used.
func published(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Product{}).
		Where("status = ?", domain.StatusPublished).
		Where("store_id IS NOT NULL").
		Where("image IS NOT NULL")
}

func (r *repo) ListPublished(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := published(db.WithContext(ctx)).
		Order("updated_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

var sortColumns = map[string]bool{
	"updated_at": true,
	"price":      true,
	"sale_price": true,
	"title":      true,
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Product, int64, error) {
	stmt := published(db.WithContext(ctx))

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		stmt = stmt.Where("LOWER(title) LIKE ? OR LOWER(brand) LIKE ?", pattern, pattern)
	}
	if filter.StoreID != "" {
		stmt = stmt.Where("store_id = ?", filter.StoreID)
	}
	if filter.Brand != "" {
		stmt = stmt.Where("LOWER(brand) = ?", strings.ToLower(filter.Brand))
	}
	if filter.DiscountedOnly {
		stmt = stmt.Where("sale_price IS NOT NULL AND price IS NOT NULL AND sale_price < price")
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !sortColumns[sortBy] {
		sortBy = "updated_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.OrderBy, "asc") {
		order = "ASC"
	}
	stmt = stmt.Order(sortBy + " " + order)

	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		stmt = stmt.Offset(filter.Offset)
	}

	var items []domain.Product
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Top(ctx context.Context, db *gorm.DB, limit int) ([]domain.Product, error) {
	var items []domain.Product
	err := published(db.WithContext(ctx)).
		Order("updated_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByHashID(ctx context.Context, db *gorm.DB, hashID string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Where("hash_id = ?", hashID).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindByHashPrefix(ctx context.Context, db *gorm.DB, prefix string) (*domain.Product, error) {
	var p domain.Product
	err := published(db.WithContext(ctx)).
		Where("hash_id LIKE ?", prefix+"%").
		Order("updated_at DESC").
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
