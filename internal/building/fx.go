package building

import (
	"github.com/orgcatalog/catalog/internal/building/repository"
	"github.com/orgcatalog/catalog/internal/building/service"
	"go.uber.org/fx"
)

var Module = fx.Module("building.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(repository.NewLocator),
	fx.Provide(service.NewService),
)
