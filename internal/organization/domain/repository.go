package domain

import (
	"context"

	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// List pushes the window into SQL; the eager-loaded detail matches
	// the other finders.
	List(ctx context.Context, window pagination.Window) ([]Organization, error)
	FindByID(ctx context.Context, id int64) (*Organization, error)
	FindByBuilding(ctx context.Context, buildingID int64) ([]Organization, error)
	FindByActivity(ctx context.Context, activityID int64) ([]Organization, error)
	SearchByName(ctx context.Context, name string) ([]Organization, error)

	Create(ctx context.Context, org *Organization) error
	UpdateColumns(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id int64) error

	ReplacePhones(ctx context.Context, orgID int64, phones []PhoneNumber) error
	ReplaceActivityLinks(ctx context.Context, orgID int64, activityIDs []int64) error
	DeleteDependents(ctx context.Context, orgID int64) error
}
