package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/shopshout/shopshout/internal/clock"
	"github.com/shopshout/shopshout/internal/config"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(v time.Time) *time.Time { return &v }

func testConfig() config.Config {
	return config.Config{
		BaseURL:      "https://shopshout.ai",
		SEOURLFormat: config.SEOURLFormatMarker,
		Environment:  "production",
	}
}

func newSitemapBuilder(t *testing.T) *SitemapBuilder {
	t.Helper()
	cfg := testConfig()
	pages, err := config.NewPagesConfigHolder()
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC))
	return NewSitemapBuilder(cfg, pages, seo.NewURLBuilder(cfg), clk)
}

func TestSitemapStaticPagesComeFirst(t *testing.T) {
	b := newSitemapBuilder(t)

	out := b.Build(nil)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "<loc>https://shopshout.ai/</loc>")
	assert.Contains(t, out, "<loc>https://shopshout.ai/landing.html</loc>")
	assert.Contains(t, out, "<loc>https://shopshout.ai/impressum.html</loc>")
	// Static pages carry the build date.
	assert.Contains(t, out, "<lastmod>2025-09-15</lastmod>")
	assert.True(t, strings.HasSuffix(out, "</urlset>"))
}

func TestSitemapProductEntries(t *testing.T) {
	b := newSitemapBuilder(t)

	out := b.Build([]productdomain.Product{
		{
			HashID:    "shopify_abc123",
			Title:     "Wireless Bluetooth Headphones!!!",
			UpdatedAt: timePtr(time.Date(2025, time.September, 10, 8, 30, 0, 0, time.UTC)),
		},
		{HashID: "", Title: "No Hash"},
		{HashID: "hash_notitle", Title: ""},
		{HashID: "hash_nodate", Title: "Fresh Deal"},
	})

	assert.Contains(t, out, "<loc>https://shopshout.ai/product/wireless-bluetooth-headphones--id--shopify_abc123</loc>")
	assert.Contains(t, out, "<lastmod>2025-09-10</lastmod>")
	assert.Contains(t, out, "<changefreq>weekly</changefreq>")
	assert.Contains(t, out, "<priority>0.7</priority>")

	// Rows without hash or title are skipped entirely.
	assert.NotContains(t, out, "No Hash")
	assert.NotContains(t, out, "hash_notitle")

	// Missing updated_at falls back to the clock date.
	assert.Contains(t, out, "<loc>https://shopshout.ai/product/fresh-deal--id--hash_nodate</loc>")

	// Products follow the static pages in caller order.
	first := strings.Index(out, "wireless-bluetooth-headphones")
	second := strings.Index(out, "fresh-deal")
	landing := strings.Index(out, "landing.html")
	assert.Less(t, landing, first)
	assert.Less(t, first, second)
}
