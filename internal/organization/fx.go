package organization

import (
	"github.com/orgcatalog/catalog/internal/organization/repository"
	"github.com/orgcatalog/catalog/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
