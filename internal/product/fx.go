package product

import (
	"github.com/shopshout/shopshout/internal/product/repository"
	"github.com/shopshout/shopshout/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
