package seo

import (
	"regexp"
	"strings"
)

var shortHashPattern = regexp.MustCompile(`^[a-fA-F0-9]{8}$`)

// ParseMarkerID extracts the full product identifier from a marker-format
// slug segment. Returns "" when the marker is absent or trails nothing;
// no further validation is applied to the identifier.
func ParseMarkerID(slug string) string {
	idx := strings.Index(slug, IDMarker)
	if idx < 0 {
		return ""
	}
	return slug[idx+len(IDMarker):]
}

// ParseShortHashID extracts the 8-character identifier prefix from a
// short-hash-format slug segment. The trailing hyphen-delimited segment must
// be exactly 8 hex characters (either case, case preserved); anything else
// returns "".
func ParseShortHashID(slug string) string {
	if slug == "" {
		return ""
	}
	parts := strings.Split(slug, "-")
	last := parts[len(parts)-1]
	if !shortHashPattern.MatchString(last) {
		return ""
	}
	return last
}

// ParseProductID resolves a product reference from a URL path segment
// produced by either encoding. The two formats are not mutually parseable,
// so it tries the marker form first and accepts the first non-empty result.
func ParseProductID(slug string) string {
	if id := ParseMarkerID(slug); id != "" {
		return id
	}
	return ParseShortHashID(slug)
}
