package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopshout/shopshout/internal/config"
	"github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/product/repository"
	"github.com/shopshout/shopshout/internal/seo"
	storedomain "github.com/shopshout/shopshout/internal/store/domain"
	"github.com/shopshout/shopshout/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeStoreService struct {
	names map[string]string
}

func (f *fakeStoreService) List(ctx context.Context) ([]storedomain.Response, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeStoreService) Get(ctx context.Context, id string) (*storedomain.Response, error) {
	_ = ctx
	_ = id
	return nil, storedomain.ErrNotFound
}

func (f *fakeStoreService) Names(ctx context.Context, ids []string) (map[string]string, error) {
	_ = ctx
	_ = ids
	return f.names, nil
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Product{}))

	cfg := config.Config{
		BaseURL:      "https://shopshout.ai",
		SEOURLFormat: config.SEOURLFormatMarker,
		Environment:  "production",
	}

	svc := New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		Repo:   repository.Provide(),
		Stores: &fakeStoreService{names: map[string]string{"store_1": "Acme Store"}},
		URLs:   seo.NewURLBuilder(cfg),
	})
	return svc, conn
}

func strPtr(v string) *string       { return &v }
func floatPtr(v float64) *float64   { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func seedProduct(t *testing.T, conn *gorm.DB, p domain.Product) {
	t.Helper()
	if p.Status == "" {
		p.Status = domain.StatusPublished
	}
	if p.StoreID == nil {
		p.StoreID = strPtr("store_1")
	}
	if p.Image == nil {
		p.Image = strPtr("https://cdn.example.com/p.jpg")
	}
	require.NoError(t, conn.Create(&p).Error)
}

func TestListPublishedFiltersAndOrders(t *testing.T) {
	svc, conn := newTestService(t)

	seedProduct(t, conn, domain.Product{
		HashID:    "hash_old",
		Title:     "Old Deal",
		UpdatedAt: timePtr(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)),
	})
	seedProduct(t, conn, domain.Product{
		HashID:    "hash_new",
		Title:     "New Deal",
		UpdatedAt: timePtr(time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)),
	})
	// Draft rows and rows without a store never reach the feeds.
	seedProduct(t, conn, domain.Product{HashID: "hash_draft", Title: "Draft", Status: "draft"})
	require.NoError(t, conn.Create(&domain.Product{
		HashID: "hash_nostore", Title: "No Store", Status: domain.StatusPublished,
		Image: strPtr("https://cdn.example.com/p.jpg"),
	}).Error)

	items, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "hash_new", items[0].HashID)
	assert.Equal(t, "hash_old", items[1].HashID)
}

func TestListSearchAndDiscountFilter(t *testing.T) {
	svc, conn := newTestService(t)

	seedProduct(t, conn, domain.Product{
		HashID: "hash_sale", Title: "Wireless Headphones",
		Price: floatPtr(100), SalePrice: floatPtr(80),
	})
	seedProduct(t, conn, domain.Product{
		HashID: "hash_full", Title: "Wireless Keyboard",
		Price: floatPtr(50),
	})
	seedProduct(t, conn, domain.Product{
		HashID: "hash_lamp", Title: "Desk Lamp",
		Price: floatPtr(25), SalePrice: floatPtr(20),
	})

	resp, err := svc.List(context.Background(), domain.ListRequest{Query: "wireless"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)

	resp, err = svc.List(context.Background(), domain.ListRequest{Query: "wireless", DiscountedOnly: true})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "hash_sale", resp.Items[0].HashID)

	item := resp.Items[0]
	require.NotNil(t, item.DiscountPercent)
	assert.Equal(t, 20, *item.DiscountPercent)
	require.NotNil(t, item.DisplayPrice)
	assert.Equal(t, 80.0, *item.DisplayPrice)
	assert.Equal(t, "Acme Store", item.StoreName)
	assert.Equal(t, "https://shopshout.ai/product/wireless-headphones--id--hash_sale", item.URL)
}

func TestListPagination(t *testing.T) {
	svc, conn := newTestService(t)

	base := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedProduct(t, conn, domain.Product{
			HashID:    "hash_" + string(rune('a'+i)),
			Title:     "Deal",
			UpdatedAt: timePtr(base.Add(time.Duration(i) * time.Hour)),
		})
	}

	resp, err := svc.List(context.Background(), domain.ListRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "hash_c", resp.Items[0].HashID)
	assert.Equal(t, "hash_b", resp.Items[1].HashID)
}

func TestListRejectsExcessiveLimit(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), domain.ListRequest{Limit: 500})
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestTopDefaultsToNine(t *testing.T) {
	svc, conn := newTestService(t)

	base := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		seedProduct(t, conn, domain.Product{
			HashID:    "hash_" + string(rune('a'+i)),
			Title:     "Deal",
			UpdatedAt: timePtr(base.Add(time.Duration(i) * time.Hour)),
		})
	}

	items, err := svc.Top(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, items, 9)
}

func TestResolveMarkerSlug(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, domain.Product{HashID: "shopify_abc123", Title: "Headphones"})

	resp, err := svc.Resolve(context.Background(), "wireless-headphones--id--shopify_abc123")
	require.NoError(t, err)
	assert.Equal(t, "shopify_abc123", resp.HashID)
}

func TestResolveShortHashSlug(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, domain.Product{HashID: "a1b2c3d4e5f6a7b8", Title: "Headphones"})

	resp, err := svc.Resolve(context.Background(), "wireless-headphones-a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3d4e5f6a7b8", resp.HashID)
}

func TestResolveBareHashID(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, domain.Product{HashID: "shopify_abc123", Title: "Headphones"})

	resp, err := svc.Resolve(context.Background(), "shopify_abc123")
	require.NoError(t, err)
	assert.Equal(t, "shopify_abc123", resp.HashID)
}

func TestResolveUnknownReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), "missing--id--nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveEmptyRefIsInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidRef)
}

func TestResponsePrefersEnglishDescription(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, domain.Product{
		HashID:             "hash_desc",
		Title:              "Headphones",
		Description:        strPtr("Deutsche Beschreibung"),
		DescriptionEnglish: strPtr("English description"),
	})

	resp, err := svc.Resolve(context.Background(), "hash_desc")
	require.NoError(t, err)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "English description", *resp.Description)
}
