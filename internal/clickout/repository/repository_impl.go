package repository

import (
	"context"

	"github.com/shopshout/shopshout/internal/clickout/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, click *domain.Click) error {
	return db.WithContext(ctx).Create(click).Error
}
