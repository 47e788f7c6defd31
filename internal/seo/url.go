package seo

import (
	"net/url"
	"strings"

	"github.com/shopshout/shopshout/internal/config"
)

// IDMarker separates the slug from the full product identifier in
// marker-format URLs.
const IDMarker = "--id--"

const shortHashLen = 8

// URLBuilder renders canonical product URLs. Two encodings exist side by
// side in the wild: the marker format embeds the full identifier and is
// losslessly reversible, the short-hash format embeds an 8-character prefix.
// In development both degrade to the legacy product.html?id= query form.
type URLBuilder struct {
	baseURL     string
	format      string
	development bool
}

func NewURLBuilder(cfg config.Config) *URLBuilder {
	return &URLBuilder{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		format:      cfg.SEOURLFormat,
		development: cfg.IsDevelopment(),
	}
}

// ProductURL returns the canonical URL for a product. It never fails: any
// input it cannot encode falls back to the query-parameter form.
func (b *URLBuilder) ProductURL(id, title string) string {
	id = strings.TrimSpace(id)
	if b.development || id == "" {
		return b.fallbackURL(id)
	}

	slug := Slugify(title)
	switch b.format {
	case config.SEOURLFormatShortHash:
		short := id
		if len(short) > shortHashLen {
			short = short[:shortHashLen]
		}
		return b.baseURL + "/product/" + slug + "-" + short
	default:
		return b.baseURL + "/product/" + slug + IDMarker + id
	}
}

// fallbackURL is the legacy query form. Always reversible via plain lookup
// of the id parameter.
func (b *URLBuilder) fallbackURL(id string) string {
	return b.baseURL + "/product.html?id=" + url.QueryEscape(id)
}
