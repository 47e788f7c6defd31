package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// StaticPage is a fixed site page emitted at the top of the sitemap.
type StaticPage struct {
	Path       string `mapstructure:"path"`
	Priority   string `mapstructure:"priority"`
	ChangeFreq string `mapstructure:"changefreq"`
}

type PagesConfig struct {
	StaticPages []StaticPage `mapstructure:"staticPages"`
}

// DefaultPagesConfig mirrors the page set the site has always published.
func DefaultPagesConfig() PagesConfig {
	return PagesConfig{
		StaticPages: []StaticPage{
			{Path: "/", Priority: "1.0", ChangeFreq: "weekly"},
			{Path: "/landing.html", Priority: "1.0", ChangeFreq: "weekly"},
			{Path: "/index.html", Priority: "0.9", ChangeFreq: "daily"},
			{Path: "/shops.html", Priority: "0.9", ChangeFreq: "weekly"},
			{Path: "/store.html", Priority: "0.8", ChangeFreq: "weekly"},
			{Path: "/contact.html", Priority: "0.6", ChangeFreq: "monthly"},
			{Path: "/privacy.html", Priority: "0.4", ChangeFreq: "monthly"},
			{Path: "/impressum.html", Priority: "0.4", ChangeFreq: "monthly"},
		},
	}
}

// PagesConfigHolder serves the current static-page list and hot-reloads it
// when the backing file changes.
type PagesConfigHolder struct {
	current atomic.Value // holds PagesConfig
}

func NewPagesConfigHolder() (*PagesConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pages")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/shopshout/config")
	v.AddConfigPath("/etc/shopshout")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHOPSHOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPagesConfig()
		v.SetDefault("sitemap.staticPages", defaults.StaticPages)
	}

	var cfg PagesConfig
	if err := v.UnmarshalKey("sitemap", &cfg); err != nil {
		return nil, err
	}
	if err := validatePagesConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PagesConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PagesConfig
		if err := v.UnmarshalKey("sitemap", &updated); err != nil {
			log.Printf("[pages-config] reload failed: %v", err)
			return
		}
		if err := validatePagesConfig(updated); err != nil {
			log.Printf("[pages-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pages-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PagesConfigHolder) Get() PagesConfig {
	return h.current.Load().(PagesConfig)
}

func validatePagesConfig(cfg PagesConfig) error {
	if len(cfg.StaticPages) == 0 {
		return errors.New("sitemap.staticPages cannot be empty")
	}
	for _, page := range cfg.StaticPages {
		if strings.TrimSpace(page.Path) == "" {
			return errors.New("sitemap.staticPages entries require a path")
		}
	}
	return nil
}
