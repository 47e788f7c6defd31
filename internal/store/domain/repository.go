package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]Store, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Store, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]Store, error)
}
