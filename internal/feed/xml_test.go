package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "&lt;a&amp;b&gt;&quot;c&apos;", EscapeXML(`<a&b>"c'`))
	assert.Equal(t, "plain text", EscapeXML("plain text"))
	assert.Equal(t, "", EscapeXML(""))
}

func TestEscapeXMLDoesNotDoubleEscape(t *testing.T) {
	// A single pass over already-escaped input still escapes the
	// ampersands; the escaper must not be applied twice by callers.
	assert.Equal(t, "&amp;amp;", EscapeXML("&amp;"))
}

func TestPlainDescriptionStripsMarkupAndTruncates(t *testing.T) {
	long := strings.Repeat("<p>word  of\tthe <b>day</b></p> ", 40)
	got := plainDescription(long)

	assert.Len(t, []rune(got), 500)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.NotContains(t, got, "  ")
}

func TestPlainDescriptionShortInput(t *testing.T) {
	assert.Equal(t, "word of the day", plainDescription("  <p>word  of the <b>day</b></p>  "))
	assert.Equal(t, "", plainDescription("<div><span></span></div>"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "80.00 EUR", formatPrice(80, "EUR"))
	assert.Equal(t, "19.99 USD", formatPrice(19.99, "USD"))
	assert.Equal(t, "100.50 EUR", formatPrice(100.5, "EUR"))
}
