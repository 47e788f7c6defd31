package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/shopshout/shopshout/internal/clock"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/seo"
	"github.com/stretchr/testify/assert"
)

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func newProductFeedBuilder() *ProductFeedBuilder {
	cfg := testConfig()
	clk := clock.NewFakeClock(time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC))
	return NewProductFeedBuilder(cfg, seo.NewURLBuilder(cfg), clk)
}

func TestProductFeedChannelEnvelope(t *testing.T) {
	b := newProductFeedBuilder()

	out := b.Build(nil)

	assert.Contains(t, out, `<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">`)
	assert.Contains(t, out, "<title>ShopShout - AI Deal Platform</title>")
	assert.Contains(t, out, "<link>https://shopshout.ai</link>")
	assert.Contains(t, out, "<language>en</language>")
	assert.Contains(t, out, "<lastBuildDate>Mon, 15 Sep 2025 12:00:00 GMT</lastBuildDate>")
	assert.True(t, strings.HasSuffix(out, "</rss>"))
}

func TestProductFeedItemFields(t *testing.T) {
	b := newProductFeedBuilder()

	out := b.Build([]productdomain.Product{
		{
			HashID:             "shopify_abc123",
			Title:              "Wireless Headphones & Case",
			Description:        strPtr("Deutsche Beschreibung"),
			DescriptionEnglish: strPtr("<p>Great   sound</p>"),
			Price:              floatPtr(100),
			SalePrice:          floatPtr(80),
			Currency:           "EUR",
			Image:              strPtr("https://cdn.example.com/p.jpg?a=1&b=2"),
			Brand:              strPtr("Acme"),
			UpdatedAt:          timePtr(time.Date(2025, time.September, 10, 8, 30, 0, 0, time.UTC)),
		},
	})

	assert.Contains(t, out, "<title>Wireless Headphones &amp; Case</title>")
	assert.Contains(t, out, "<link>https://shopshout.ai/product/wireless-headphones-case--id--shopify_abc123</link>")
	assert.Contains(t, out, "<description>Great sound</description>")
	assert.Contains(t, out, "<pubDate>Wed, 10 Sep 2025 08:30:00 GMT</pubDate>")
	assert.Contains(t, out, `<guid isPermaLink="true">https://shopshout.ai/product/wireless-headphones-case--id--shopify_abc123</guid>`)
	assert.Contains(t, out, "<g:id>shopify_abc123</g:id>")
	assert.Contains(t, out, "<g:price>80.00 EUR</g:price>")
	assert.Contains(t, out, "<g:sale_price>80.00 EUR</g:sale_price>")
	assert.Contains(t, out, "<g:image_link>https://cdn.example.com/p.jpg?a=1&amp;b=2</g:image_link>")
	assert.Contains(t, out, "<g:brand>Acme</g:brand>")
	assert.Contains(t, out, "<g:availability>in stock</g:availability>")
	assert.Contains(t, out, "<g:condition>new</g:condition>")
}

func TestProductFeedOmitsOptionalFields(t *testing.T) {
	b := newProductFeedBuilder()

	out := b.Build([]productdomain.Product{
		{
			HashID: "shopify_min",
			Title:  "Plain Deal",
			Price:  floatPtr(25),
		},
	})

	// Description falls back to the title, price without a genuine sale
	// stays a single element.
	assert.Contains(t, out, "<description>Plain Deal</description>")
	assert.Contains(t, out, "<g:price>25.00 EUR</g:price>")
	assert.NotContains(t, out, "<g:sale_price>")
	assert.NotContains(t, out, "<g:image_link>")
	assert.NotContains(t, out, "<g:brand>")

	// pubDate falls back to the clock.
	assert.Contains(t, out, "<pubDate>Mon, 15 Sep 2025 12:00:00 GMT</pubDate>")
}

func TestProductFeedSalePriceRequiresGenuineDiscount(t *testing.T) {
	b := newProductFeedBuilder()

	out := b.Build([]productdomain.Product{
		{HashID: "hash_equal", Title: "Equal", Price: floatPtr(50), SalePrice: floatPtr(50)},
		{HashID: "hash_higher", Title: "Higher", Price: floatPtr(50), SalePrice: floatPtr(60)},
	})

	assert.NotContains(t, out, "<g:sale_price>")
	assert.Equal(t, 2, strings.Count(out, "<g:price>50.00 EUR</g:price>"))
}
