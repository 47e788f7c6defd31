package feed

import (
	"fmt"
	"regexp"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes the five reserved XML characters. Applied to every
// interpolated value, URLs included.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var (
	markupTags = regexp.MustCompile(`<[^>]*>`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

const maxDescriptionLen = 500

// plainDescription strips markup, collapses whitespace and hard-truncates to
// 500 characters, the limit Google Merchant Center enforces.
func plainDescription(s string) string {
	s = markupTags.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen])
	}
	return s
}

// formatPrice renders "amount CUR" with two decimals, the Google Shopping
// price syntax.
func formatPrice(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}
