package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/orgcatalog/catalog/internal/activity"
	"github.com/orgcatalog/catalog/internal/building"
	"github.com/orgcatalog/catalog/internal/config"
	"github.com/orgcatalog/catalog/internal/migration"
	"github.com/orgcatalog/catalog/internal/observability"
	"github.com/orgcatalog/catalog/internal/organization"
	"github.com/orgcatalog/catalog/internal/server"
	"github.com/orgcatalog/catalog/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		activity.Module,
		building.Module,
		organization.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
