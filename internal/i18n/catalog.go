package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog holds the locale dictionaries. Handlers receive it as a
// dependency; there is no package-level lookup state.
type Catalog struct {
	defaultTag language.Tag
	tags       []language.Tag
	matcher    language.Matcher
	bundles    map[string]map[string]string
}

// NewCatalog loads the embedded dictionaries and, when overrideDir is
// non-empty, merges any <locale>.yaml files found there on top of them.
func NewCatalog(defaultLocale, overrideDir string) (*Catalog, error) {
	bundles := make(map[string]map[string]string)

	entries, err := fs.ReadDir(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("read embedded locales: %w", err)
	}
	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		data, err := embeddedLocales.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", locale, err)
		}
		bundle := make(map[string]string)
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", locale, err)
		}
		bundles[locale] = bundle
	}

	if overrideDir != "" {
		if err := mergeOverrides(bundles, overrideDir); err != nil {
			return nil, err
		}
	}

	defaultTag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}
	if _, ok := bundles[defaultLocale]; !ok {
		return nil, fmt.Errorf("no bundle for default locale %q", defaultLocale)
	}

	// The default locale goes first so the matcher falls back to it.
	tags := []language.Tag{defaultTag}
	for locale := range bundles {
		if locale == defaultLocale {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		defaultTag: defaultTag,
		tags:       tags,
		matcher:    language.NewMatcher(tags),
		bundles:    bundles,
	}, nil
}

func mergeOverrides(bundles map[string]map[string]string, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read locale overrides: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read locale override %s: %w", locale, err)
		}
		override := make(map[string]string)
		if err := yaml.Unmarshal(data, &override); err != nil {
			return fmt.Errorf("parse locale override %s: %w", locale, err)
		}
		bundle, ok := bundles[locale]
		if !ok {
			bundle = make(map[string]string)
			bundles[locale] = bundle
		}
		for k, v := range override {
			bundle[k] = v
		}
	}
	return nil
}

// Match picks the best supported locale. The explicit override wins over
// the Accept-Language header; anything unparseable falls back to the
// default locale.
func (c *Catalog) Match(override, acceptLanguage string) string {
	if override != "" {
		if tag, err := language.Parse(override); err == nil {
			_, index, _ := c.matcher.Match(tag)
			return localeKey(c.tags[index])
		}
		return localeKey(c.defaultTag)
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return localeKey(c.defaultTag)
	}
	_, index, _ := c.matcher.Match(tags...)
	return localeKey(c.tags[index])
}

// Bundle returns the dictionary for a locale previously returned by Match.
func (c *Catalog) Bundle(locale string) map[string]string {
	if bundle, ok := c.bundles[locale]; ok {
		return bundle
	}
	return c.bundles[localeKey(c.defaultTag)]
}

// Locales lists the supported locales, default first.
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		locales = append(locales, localeKey(tag))
	}
	return locales
}

func localeKey(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
