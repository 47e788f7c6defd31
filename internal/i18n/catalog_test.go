package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogLoadsEmbeddedBundles(t *testing.T) {
	catalog, err := NewCatalog("en", "")
	require.NoError(t, err)

	locales := catalog.Locales()
	assert.Equal(t, "en", locales[0])
	assert.Contains(t, locales, "de")

	assert.Equal(t, "Home", catalog.Bundle("en")["nav.home"])
	assert.Equal(t, "Start", catalog.Bundle("de")["nav.home"])
}

func TestNewCatalogRejectsUnknownDefault(t *testing.T) {
	_, err := NewCatalog("fr", "")
	require.Error(t, err)
}

func TestMatch(t *testing.T) {
	catalog, err := NewCatalog("en", "")
	require.NoError(t, err)

	tests := []struct {
		name           string
		override       string
		acceptLanguage string
		want           string
	}{
		{name: "override wins", override: "de", acceptLanguage: "en-US,en;q=0.9", want: "de"},
		{name: "override region variant", override: "de-AT", acceptLanguage: "", want: "de"},
		{name: "unknown override falls back", override: "zz-!!", acceptLanguage: "de", want: "en"},
		{name: "accept language", override: "", acceptLanguage: "de-DE,de;q=0.9,en;q=0.5", want: "de"},
		{name: "unsupported language falls back", override: "", acceptLanguage: "fr-FR", want: "en"},
		{name: "empty everything", override: "", acceptLanguage: "", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Match(tt.override, tt.acceptLanguage))
		})
	}
}

func TestBundleFallsBackToDefault(t *testing.T) {
	catalog, err := NewCatalog("en", "")
	require.NoError(t, err)

	assert.Equal(t, catalog.Bundle("en")["nav.home"], catalog.Bundle("nope")["nav.home"])
}

func TestOverrideDirMergesOnTopOfEmbedded(t *testing.T) {
	dir := t.TempDir()
	override := "nav.home: \"Startseite\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.yaml"), []byte(override), 0o644))

	catalog, err := NewCatalog("en", dir)
	require.NoError(t, err)

	bundle := catalog.Bundle("de")
	assert.Equal(t, "Startseite", bundle["nav.home"])
	assert.Equal(t, "Deals", bundle["nav.deals"])
}
