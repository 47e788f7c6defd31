package i18n

import (
	"github.com/shopshout/shopshout/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("i18n",
	fx.Provide(func(cfg config.Config) (*Catalog, error) {
		return NewCatalog(cfg.DefaultLocale, cfg.LocalesDir)
	}),
)
