package clickout

import (
	"github.com/shopshout/shopshout/internal/clickout/repository"
	"github.com/shopshout/shopshout/internal/clickout/service"
	"go.uber.org/fx"
)

var Module = fx.Module("clickout.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
