package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarkerID(t *testing.T) {
	cases := []struct {
		name string
		slug string
		want string
	}{
		{"full uuid", "wireless-headphones--id--550e8400-e29b-41d4-a716-446655440000", "550e8400-e29b-41d4-a716-446655440000"},
		{"opaque token", "some-deal--id--shopify_abc123", "shopify_abc123"},
		{"marker absent", "wireless-headphones-550e8400", ""},
		{"marker at end", "wireless-headphones--id--", ""},
		{"empty", "", ""},
		{"id after first marker wins", "a--id--b--id--c", "b--id--c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseMarkerID(tc.slug))
		})
	}
}

func TestParseShortHashID(t *testing.T) {
	cases := []struct {
		name string
		slug string
		want string
	}{
		{"lowercase hex", "wireless-headphones-550e8400", "550e8400"},
		{"uppercase preserved", "deal-ABCDEF01", "ABCDEF01"},
		{"too short", "deal-abc123", ""},
		{"too long", "deal-550e8400a", ""},
		{"not hex", "deal-zzzzzzzz", ""},
		{"no hyphen at all", "550e8400", "550e8400"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseShortHashID(tc.slug))
		})
	}
}

func TestParseProductIDPrefersMarker(t *testing.T) {
	assert.Equal(t, "shopify_abc123", ParseProductID("deal--id--shopify_abc123"))
	assert.Equal(t, "550e8400", ParseProductID("wireless-headphones-550e8400"))
	assert.Equal(t, "", ParseProductID("just-a-slug"))
}
