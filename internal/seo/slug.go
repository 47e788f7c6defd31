package seo

import (
	"regexp"
	"strings"
)

// FallbackSlug is used whenever a title produces no usable slug.
const FallbackSlug = "product"

const maxSlugLen = 50

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a product title: lowercase, runs of
// characters outside [a-z0-9] collapse to a single hyphen, no leading or
// trailing hyphens, at most 50 characters. Titles that reduce to nothing
// yield FallbackSlug. Total function, never fails.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	if s == "" {
		return FallbackSlug
	}

	s = nonAlnumRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		// Only ASCII alphanumerics and hyphens remain, so byte
		// truncation cannot split a rune.
		s = s[:maxSlugLen]
		s = strings.TrimRight(s, "-")
	}
	if s == "" {
		return FallbackSlug
	}
	return s
}
