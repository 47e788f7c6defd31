package service

import (
	"context"
	"math"
	"strings"

	"github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/seo"
	storedomain "github.com/shopshout/shopshout/internal/store/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultLimit = 24
	maxLimit     = 100
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Repo   domain.Repository
	Stores storedomain.Service
	URLs   *seo.URLBuilder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   domain.Repository
	stores storedomain.Service
	urls   *seo.URLBuilder
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("product.service"),
		repo:   p.Repo,
		stores: p.Stores,
		urls:   p.URLs,
	}
}

func (s *Service) ListPublished(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListPublished(ctx, s.db)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 0 || limit > maxLimit {
		return nil, domain.ErrInvalidLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Query:          strings.TrimSpace(req.Query),
		StoreID:        strings.TrimSpace(req.StoreID),
		Brand:          strings.TrimSpace(req.Brand),
		DiscountedOnly: req.DiscountedOnly,
		SortBy:         strings.TrimSpace(req.SortBy),
		OrderBy:        strings.TrimSpace(req.OrderBy),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.toResponses(ctx, items)
	if err != nil {
		return nil, err
	}

	return &domain.ListResponse{
		Items:  resp,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *Service) Top(ctx context.Context, limit int) ([]domain.Response, error) {
	if limit <= 0 {
		limit = 9
	}
	if limit > maxLimit {
		return nil, domain.ErrInvalidLimit
	}

	items, err := s.repo.Top(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items)
}

func (s *Service) Resolve(ctx context.Context, ref string) (*domain.Response, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidRef
	}

	var item *domain.Product
	var err error

	if id := seo.ParseMarkerID(ref); id != "" {
		item, err = s.repo.FindByHashID(ctx, s.db, id)
	} else if prefix := seo.ParseShortHashID(ref); prefix != "" {
		item, err = s.repo.FindByHashPrefix(ctx, s.db, prefix)
		if err == nil && item == nil {
			// A bare 8-char hex string is also a plausible full id.
			item, err = s.repo.FindByHashID(ctx, s.db, ref)
		}
	} else {
		// Legacy product.html?id= references carry the id verbatim.
		item, err = s.repo.FindByHashID(ctx, s.db, ref)
	}
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp, err := s.toResponses(ctx, []domain.Product{*item})
	if err != nil {
		return nil, err
	}
	return &resp[0], nil
}

func (s *Service) toResponses(ctx context.Context, items []domain.Product) ([]domain.Response, error) {
	storeIDs := make([]string, 0, len(items))
	for _, item := range items {
		if item.StoreID != nil {
			storeIDs = append(storeIDs, *item.StoreID)
		}
	}

	names, err := s.stores.Names(ctx, storeIDs)
	if err != nil {
		// A missing store name only degrades the listing; log and move on.
		s.log.Warn("store name lookup failed", zap.Error(err))
		names = map[string]string{}
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		r := domain.Response{
			HashID:       item.HashID,
			Title:        item.Title,
			Description:  preferredDescription(&item),
			Price:        item.Price,
			SalePrice:    item.SalePrice,
			DisplayPrice: item.DisplayPrice(),
			Currency:     item.CurrencyOrDefault(),
			Image:        item.Image,
			Brand:        item.Brand,
			Availability: item.AvailabilityOrDefault(),
			StoreID:      item.StoreID,
			URL:          s.urls.ProductURL(item.HashID, item.Title),
			AffiliateURL: item.AffiliateURL,
			UpdatedAt:    item.UpdatedAt,
		}
		if item.StoreID != nil {
			r.StoreName = names[*item.StoreID]
		}
		if item.OnSale() {
			pct := discountPercent(*item.Price, *item.SalePrice)
			r.DiscountPercent = &pct
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func preferredDescription(p *domain.Product) *string {
	if p.DescriptionEnglish != nil && strings.TrimSpace(*p.DescriptionEnglish) != "" {
		return p.DescriptionEnglish
	}
	return p.Description
}

func discountPercent(price, salePrice float64) int {
	return int(math.Round((price - salePrice) / price * 100))
}
