package domain

import (
	"context"

	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	List(ctx context.Context, window pagination.Window) ([]Building, error)
	FindByID(ctx context.Context, id int64) (*Building, error)
	Create(ctx context.Context, building *Building) error
	Update(ctx context.Context, building *Building) error
}

// Locator answers spatial predicates over the building table. The scanning
// implementation in the repository package satisfies it; an indexed one can
// replace it without touching callers.
type Locator interface {
	// FindInRadius returns every building within radiusMeters of the
	// center, paired with its haversine distance.
	FindInRadius(ctx context.Context, lat, lon, radiusMeters float64) ([]WithDistance, error)

	// FindInRectangle returns every building inside the inclusive
	// latitude/longitude bounds. No distance is computed.
	FindInRectangle(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]Building, error)
}
