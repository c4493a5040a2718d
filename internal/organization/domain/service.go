package domain

import (
	"context"
	"errors"

	"github.com/orgcatalog/catalog/pkg/db/pagination"
)

type Service interface {
	// Search answers the combined organization query. Filters are
	// mutually exclusive with precedence activity > name > area; with no
	// filter it degrades to a plain windowed listing.
	Search(ctx context.Context, req SearchRequest) ([]View, error)

	GetByID(ctx context.Context, id int64) (*View, error)
	ListByBuilding(ctx context.Context, buildingID int64) ([]View, error)
	Create(ctx context.Context, req CreateRequest) (*View, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*View, error)
	Delete(ctx context.Context, id int64) error
}

type SearchRequest struct {
	ActivityID *int64
	Name       string
	Area       *AreaFilter
	Window     pagination.Window
}

type CreateRequest struct {
	Name         string
	BuildingID   int64
	PhoneNumbers []string
	ActivityIDs  []int64
}

type UpdateRequest struct {
	Name         *string
	BuildingID   *int64
	PhoneNumbers *[]string
	ActivityIDs  *[]int64
}

var (
	ErrNotFound         = errors.New("organization_not_found")
	ErrInvalidName      = errors.New("invalid_organization_name")
	ErrBuildingNotFound = errors.New("organization_building_not_found")
)
