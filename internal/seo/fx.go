package seo

import "go.uber.org/fx"

var Module = fx.Module("seo",
	fx.Provide(NewURLBuilder),
)
