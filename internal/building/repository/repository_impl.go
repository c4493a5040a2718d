package repository

import (
	"context"
	"errors"

	"github.com/orgcatalog/catalog/internal/building/domain"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"github.com/orgcatalog/catalog/pkg/geo"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

// NewLocator exposes the same scanning repository as the spatial lookup
// implementation.
func NewLocator(db *gorm.DB) domain.Locator {
	return &repo{db: db}
}

func (r *repo) WithTx(tx *gorm.DB) domain.Repository {
	return &repo{db: tx}
}

func (r *repo) List(ctx context.Context, window pagination.Window) ([]domain.Building, error) {
	var buildings []domain.Building
	err := r.db.WithContext(ctx).
		Scopes(window.Scope()).
		Order("id").
		Find(&buildings).Error
	if err != nil {
		return nil, err
	}
	return buildings, nil
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Building, error) {
	var building domain.Building
	err := r.db.WithContext(ctx).
		First(&building, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *repo) Create(ctx context.Context, building *domain.Building) error {
	return r.db.WithContext(ctx).Create(building).Error
}

func (r *repo) Update(ctx context.Context, building *domain.Building) error {
	return r.db.WithContext(ctx).
		Model(&domain.Building{}).
		Where("id = ?", building.ID).
		Updates(map[string]any{
			"address":   building.Address,
			"latitude":  building.Latitude,
			"longitude": building.Longitude,
		}).Error
}

// FindInRadius scans the whole table and filters by haversine distance.
// Correct for catalog-sized data; swap the Locator for an indexed
// implementation when the table outgrows a scan.
func (r *repo) FindInRadius(ctx context.Context, lat, lon, radiusMeters float64) ([]domain.WithDistance, error) {
	var buildings []domain.Building
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&buildings).Error
	if err != nil {
		return nil, err
	}

	matches := make([]domain.WithDistance, 0)
	for _, building := range buildings {
		distance := geo.Haversine(lat, lon, building.Latitude, building.Longitude)
		if distance <= radiusMeters {
			d := distance
			matches = append(matches, domain.WithDistance{
				Building: building,
				Distance: &d,
			})
		}
	}
	return matches, nil
}

func (r *repo) FindInRectangle(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Building, error) {
	var buildings []domain.Building
	err := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLon, maxLon).
		Order("id").
		Find(&buildings).Error
	if err != nil {
		return nil, err
	}
	return buildings, nil
}
