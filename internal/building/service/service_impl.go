package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/orgcatalog/catalog/internal/building/domain"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type service struct {
	db      *gorm.DB
	repo    domain.Repository
	locator domain.Locator
	genID   *snowflake.Node
}

func NewService(db *gorm.DB, repo domain.Repository, locator domain.Locator, genID *snowflake.Node) domain.Service {
	return &service{
		db:      db,
		repo:    repo,
		locator: locator,
		genID:   genID,
	}
}

func (s *service) List(ctx context.Context, window pagination.Window) ([]domain.Building, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, window)
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Building, error) {
	building, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, domain.ErrNotFound
	}
	return building, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Building, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, domain.ErrInvalidAddress
	}

	building := domain.Building{
		ID:        s.genID.Generate().Int64(),
		Address:   address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.repo.Create(ctx, &building); err != nil {
		return nil, err
	}
	return &building, nil
}

func (s *service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.Building, error) {
	building, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, domain.ErrNotFound
	}

	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, domain.ErrInvalidAddress
		}
		building.Address = address
	}
	if req.Latitude != nil {
		building.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		building.Longitude = *req.Longitude
	}

	if err := s.repo.Update(ctx, building); err != nil {
		return nil, err
	}
	return building, nil
}

func (s *service) FindInRadius(ctx context.Context, lat, lon, radiusMeters float64) ([]domain.WithDistance, error) {
	if radiusMeters <= 0 {
		return nil, domain.ErrInvalidRadius
	}
	return s.locator.FindInRadius(ctx, lat, lon, radiusMeters)
}

func (s *service) FindInRectangle(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Building, error) {
	return s.locator.FindInRectangle(ctx, minLat, maxLat, minLon, maxLon)
}
