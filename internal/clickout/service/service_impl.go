package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopshout/shopshout/internal/clickout/domain"
	"github.com/shopshout/shopshout/internal/clock"
	"github.com/shopshout/shopshout/internal/observability/logger"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	Products productdomain.Service
	GenID    *snowflake.Node
	Clock    clock.Clock
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	products productdomain.Service
	genID    *snowflake.Node
	clock    clock.Clock
}

func New(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log,
		repo:     p.Repo,
		products: p.Products,
		genID:    p.GenID,
		clock:    p.Clock,
	}
}

func (s *service) Redirect(ctx context.Context, req domain.RedirectRequest) (*domain.RedirectResult, error) {
	product, err := s.products.Resolve(ctx, req.Ref)
	if err != nil {
		if errors.Is(err, productdomain.ErrNotFound) || errors.Is(err, productdomain.ErrInvalidRef) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	target := product.URL
	if product.AffiliateURL != nil && *product.AffiliateURL != "" {
		target = *product.AffiliateURL
	}

	click := &domain.Click{
		ID:        s.genID.Generate().Int64(),
		HashID:    product.HashID,
		StoreID:   product.StoreID,
		Referrer:  req.Referrer,
		UserAgent: req.UserAgent,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, click); err != nil {
		// Losing a click record is acceptable, losing the redirect is not.
		logger.WithContext(ctx, s.log).Warn("record click",
			zap.String("hash_id", product.HashID),
			zap.Error(err),
		)
	}

	result := &domain.RedirectResult{TargetURL: target}
	if product.StoreID != nil {
		result.StoreID = *product.StoreID
	}
	return result, nil
}
