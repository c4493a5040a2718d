package migration

import (
	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
	"github.com/orgcatalog/catalog/internal/config"
	organizationdomain "github.com/orgcatalog/catalog/internal/organization/domain"
	"github.com/orgcatalog/catalog/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite fall back to the model-driven schema.
			err := conn.AutoMigrate(
				&activitydomain.Activity{},
				&buildingdomain.Building{},
				&organizationdomain.Organization{},
				&organizationdomain.PhoneNumber{},
			)
			if err != nil {
				return err
			}
		}

		if cfg.SeedData {
			return seed.EnsureSampleData(conn, node)
		}
		return nil
	}),
)
