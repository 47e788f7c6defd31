package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopshout/shopshout/internal/cache"
	"github.com/shopshout/shopshout/internal/clock"
	"github.com/shopshout/shopshout/internal/config"
	"github.com/shopshout/shopshout/internal/feed"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductService struct {
	published      []productdomain.Product
	publishedErr   error
	publishedCalls int

	resolved   *productdomain.Response
	resolveErr error
	lastRef    string
}

func (f *fakeProductService) ListPublished(ctx context.Context) ([]productdomain.Product, error) {
	f.publishedCalls++
	_ = ctx
	return f.published, f.publishedErr
}

func (f *fakeProductService) List(ctx context.Context, req productdomain.ListRequest) (*productdomain.ListResponse, error) {
	_ = ctx
	_ = req
	return &productdomain.ListResponse{}, nil
}

func (f *fakeProductService) Top(ctx context.Context, limit int) ([]productdomain.Response, error) {
	_ = ctx
	_ = limit
	return nil, nil
}

func (f *fakeProductService) Resolve(ctx context.Context, ref string) (*productdomain.Response, error) {
	_ = ctx
	f.lastRef = ref
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.resolved, nil
}

func floatPtr(v float64) *float64   { return &v }
func strPtr(v string) *string       { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func newFeedTestServer(t *testing.T, products *fakeProductService) *Server {
	t.Helper()

	cfg := config.Config{
		BaseURL:      "https://shopshout.ai",
		SEOURLFormat: config.SEOURLFormatMarker,
		Environment:  "production",
		FeedCacheTTL: time.Hour,
	}
	pages, err := config.NewPagesConfigHolder()
	require.NoError(t, err)

	urls := seo.NewURLBuilder(cfg)
	clk := clock.NewFakeClock(time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC))

	return &Server{
		cfg:         cfg,
		productSvc:  products,
		sitemap:     feed.NewSitemapBuilder(cfg, pages, urls, clk),
		productFeed: feed.NewProductFeedBuilder(cfg, urls, clk),
		feedCache:   cache.NewFeedCache(nil, nil),
		log:         zap.NewNop(),
	}
}

func feedRouter(srv *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/sitemap.xml", srv.Sitemap)
	router.GET("/product-feed.xml", srv.ProductFeed)
	return router
}

func TestSitemapEndpoint(t *testing.T) {
	products := &fakeProductService{
		published: []productdomain.Product{
			{
				HashID:    "shopify_abc123",
				Title:     "Wireless Bluetooth Headphones!!!",
				UpdatedAt: timePtr(time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC)),
			},
		},
	}
	router := feedRouter(newFeedTestServer(t, products))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/xml; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600, s-maxage=3600", resp.Header().Get("Cache-Control"))

	body := resp.Body.String()
	assert.Contains(t, body, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, body, "<loc>https://shopshout.ai/landing.html</loc>")
	assert.Contains(t, body, "<loc>https://shopshout.ai/product/wireless-bluetooth-headphones--id--shopify_abc123</loc>")
	assert.Contains(t, body, "<lastmod>2025-09-10</lastmod>")
}

func TestSitemapServedFromCacheOnSecondRequest(t *testing.T) {
	products := &fakeProductService{
		published: []productdomain.Product{
			{HashID: "shopify_abc123", Title: "Headphones"},
		},
	}
	router := feedRouter(newFeedTestServer(t, products))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, products.publishedCalls)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestSitemapQueryFailureReturnsPlainText500(t *testing.T) {
	products := &fakeProductService{publishedErr: errors.New("connection refused")}
	router := feedRouter(newFeedTestServer(t, products))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Error generating sitemap", resp.Body.String())
	assert.NotContains(t, resp.Body.String(), "<urlset")
}

func TestProductFeedEndpoint(t *testing.T) {
	products := &fakeProductService{
		published: []productdomain.Product{
			{
				HashID:    "shopify_abc123",
				Title:     "Wireless Headphones",
				Price:     floatPtr(100),
				SalePrice: floatPtr(80),
				Currency:  "EUR",
				Image:     strPtr("https://cdn.example.com/p.jpg"),
				Brand:     strPtr("Acme"),
				UpdatedAt: timePtr(time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC)),
			},
			{
				HashID: "shopify_def456",
				Title:  "Desk Lamp <Special> & Co",
				Price:  floatPtr(25),
			},
		},
	}
	router := feedRouter(newFeedTestServer(t, products))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/product-feed.xml", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/xml; charset=utf-8", resp.Header().Get("Content-Type"))

	body := resp.Body.String()
	assert.Contains(t, body, `xmlns:g="http://base.google.com/ns/1.0"`)
	assert.Contains(t, body, "<g:id>shopify_abc123</g:id>")
	assert.Contains(t, body, "<g:price>80.00 EUR</g:price>")
	assert.Contains(t, body, "<g:sale_price>80.00 EUR</g:sale_price>")
	assert.Contains(t, body, "<title>Desk Lamp &lt;Special&gt; &amp; Co</title>")

	// No genuine sale on the second item, so no sale_price element for it.
	assert.Contains(t, body, "<g:price>25.00 EUR</g:price>")
	assert.Equal(t, 1, strings.Count(body, "<g:sale_price>"))
}

func TestProductFeedFailureReturnsPlainText500(t *testing.T) {
	products := &fakeProductService{publishedErr: errors.New("timeout")}
	router := feedRouter(newFeedTestServer(t, products))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/product-feed.xml", nil))

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Error generating product feed", resp.Body.String())
}
