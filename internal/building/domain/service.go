package domain

import (
	"context"
	"errors"

	"github.com/orgcatalog/catalog/pkg/db/pagination"
)

type Service interface {
	List(ctx context.Context, window pagination.Window) ([]Building, error)
	GetByID(ctx context.Context, id int64) (*Building, error)
	Create(ctx context.Context, req CreateRequest) (*Building, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Building, error)

	FindInRadius(ctx context.Context, lat, lon, radiusMeters float64) ([]WithDistance, error)
	FindInRectangle(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]Building, error)
}

type CreateRequest struct {
	Address   string
	Latitude  float64
	Longitude float64
}

type UpdateRequest struct {
	Address   *string
	Latitude  *float64
	Longitude *float64
}

var (
	ErrNotFound       = errors.New("building_not_found")
	ErrInvalidAddress = errors.New("invalid_address")
	ErrInvalidRadius  = errors.New("invalid_radius")
)
