package feed

import (
	"strings"
	"time"

	"github.com/shopshout/shopshout/internal/clock"
	"github.com/shopshout/shopshout/internal/config"
	productdomain "github.com/shopshout/shopshout/internal/product/domain"
	"github.com/shopshout/shopshout/internal/seo"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

const dateLayout = "2006-01-02"

// SitemapBuilder renders the crawler sitemap: the fixed static pages first,
// then one entry per feed-eligible product in the order supplied by the
// caller (expected newest first; the builder never re-sorts).
type SitemapBuilder struct {
	baseURL string
	pages   *config.PagesConfigHolder
	urls    *seo.URLBuilder
	clock   clock.Clock
}

func NewSitemapBuilder(cfg config.Config, pages *config.PagesConfigHolder, urls *seo.URLBuilder, clk clock.Clock) *SitemapBuilder {
	return &SitemapBuilder{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		pages:   pages,
		urls:    urls,
		clock:   clk,
	}
}

func (b *SitemapBuilder) Build(products []productdomain.Product) string {
	today := b.clock.Now().Format(dateLayout)

	var xml strings.Builder
	xml.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	xml.WriteString(`<urlset xmlns="` + sitemapNamespace + `">` + "\n")

	for _, page := range b.pages.Get().StaticPages {
		writeSitemapEntry(&xml, b.baseURL+page.Path, today, page.ChangeFreq, page.Priority)
	}

	for _, p := range products {
		if !p.FeedEligible() {
			continue
		}
		writeSitemapEntry(&xml, b.urls.ProductURL(p.HashID, p.Title), b.lastmod(p.UpdatedAt), "weekly", "0.7")
	}

	xml.WriteString("</urlset>")
	return xml.String()
}

func (b *SitemapBuilder) lastmod(t *time.Time) string {
	if t == nil {
		return b.clock.Now().Format(dateLayout)
	}
	return t.UTC().Format(dateLayout)
}

func writeSitemapEntry(xml *strings.Builder, loc, lastmod, changefreq, priority string) {
	xml.WriteString("  <url>\n")
	xml.WriteString("    <loc>" + EscapeXML(loc) + "</loc>\n")
	xml.WriteString("    <lastmod>" + lastmod + "</lastmod>\n")
	xml.WriteString("    <changefreq>" + changefreq + "</changefreq>\n")
	xml.WriteString("    <priority>" + priority + "</priority>\n")
	xml.WriteString("  </url>\n")
}
