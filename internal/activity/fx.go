package activity

import (
	"github.com/orgcatalog/catalog/internal/activity/repository"
	"github.com/orgcatalog/catalog/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
