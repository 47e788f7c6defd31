package store

import (
	"github.com/shopshout/shopshout/internal/store/repository"
	"github.com/shopshout/shopshout/internal/store/service"
	"go.uber.org/fx"
)

var Module = fx.Module("store.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
