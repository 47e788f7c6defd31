package feed

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopshout/shopshout/internal/clock"
	"github.com/shopshout/shopshout/internal/config"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/seo"
)

const googleShoppingNamespace = "http://base.google.com/ns/1.0"

const (
	channelTitle       = "ShopShout - AI Deal Platform"
	channelDescription = "Discover the best deals, coupons and offers from verified stores"
	channelLanguage    = "en"
)

// ProductFeedBuilder renders the Google Shopping RSS feed consumed by
// Merchant Center.
type ProductFeedBuilder struct {
	baseURL string
	urls    *seo.URLBuilder
	clock   clock.Clock
}

func NewProductFeedBuilder(cfg config.Config, urls *seo.URLBuilder, clk clock.Clock) *ProductFeedBuilder {
	return &ProductFeedBuilder{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		urls:    urls,
		clock:   clk,
	}
}

func (b *ProductFeedBuilder) Build(products []productdomain.Product) string {
	var xml strings.Builder
	xml.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	xml.WriteString(`<rss version="2.0" xmlns:g="` + googleShoppingNamespace + `">` + "\n")
	xml.WriteString("  <channel>\n")
	xml.WriteString("    <title>" + channelTitle + "</title>\n")
	xml.WriteString("    <link>" + EscapeXML(b.baseURL) + "</link>\n")
	xml.WriteString("    <description>" + channelDescription + "</description>\n")
	xml.WriteString("    <language>" + channelLanguage + "</language>\n")
	xml.WriteString("    <lastBuildDate>" + b.rfc822(nil) + "</lastBuildDate>\n")
	xml.WriteString("\n")

	for _, p := range products {
		if !p.FeedEligible() {
			continue
		}
		b.writeItem(&xml, &p)
	}

	xml.WriteString("  </channel>\n")
	xml.WriteString("</rss>")
	return xml.String()
}

func (b *ProductFeedBuilder) writeItem(xml *strings.Builder, p *productdomain.Product) {
	productURL := b.urls.ProductURL(p.HashID, p.Title)
	currency := p.CurrencyOrDefault()

	xml.WriteString("    <item>\n")
	xml.WriteString("      <title>" + EscapeXML(p.Title) + "</title>\n")
	xml.WriteString("      <link>" + EscapeXML(productURL) + "</link>\n")
	xml.WriteString("      <description>" + EscapeXML(itemDescription(p)) + "</description>\n")
	xml.WriteString("      <pubDate>" + b.rfc822(p.UpdatedAt) + "</pubDate>\n")
	xml.WriteString(`      <guid isPermaLink="true">` + EscapeXML(productURL) + "</guid>\n")

	xml.WriteString("      <g:id>" + EscapeXML(p.HashID) + "</g:id>\n")

	if display := p.DisplayPrice(); display != nil {
		xml.WriteString("      <g:price>" + EscapeXML(formatPrice(*display, currency)) + "</g:price>\n")
	}
	if p.OnSale() {
		xml.WriteString("      <g:sale_price>" + EscapeXML(formatPrice(*p.SalePrice, currency)) + "</g:sale_price>\n")
	}
	if p.Image != nil && *p.Image != "" {
		xml.WriteString("      <g:image_link>" + EscapeXML(*p.Image) + "</g:image_link>\n")
	}
	if p.Brand != nil && *p.Brand != "" {
		xml.WriteString("      <g:brand>" + EscapeXML(*p.Brand) + "</g:brand>\n")
	}
	xml.WriteString("      <g:availability>" + EscapeXML(p.AvailabilityOrDefault()) + "</g:availability>\n")
	xml.WriteString("      <g:condition>new</g:condition>\n")
	xml.WriteString("    </item>\n")
	xml.WriteString("\n")
}

// itemDescription prefers the English localization over the default locale
// over the bare title, reduced to plain bounded text.
func itemDescription(p *productdomain.Product) string {
	raw := p.Title
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		raw = *p.Description
	}
	if p.DescriptionEnglish != nil && strings.TrimSpace(*p.DescriptionEnglish) != "" {
		raw = *p.DescriptionEnglish
	}
	return plainDescription(raw)
}

// rfc822 renders the RSS pubDate format; a missing or zero timestamp falls
// back to the injected clock.
func (b *ProductFeedBuilder) rfc822(t *time.Time) string {
	if t == nil || t.IsZero() {
		return b.clock.Now().UTC().Format(http.TimeFormat)
	}
	return t.UTC().Format(http.TimeFormat)
}
