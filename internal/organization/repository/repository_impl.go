package repository

import (
	"context"
	"errors"

	"github.com/orgcatalog/catalog/internal/organization/domain"
	pkgdb "github.com/orgcatalog/catalog/pkg/db"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) WithTx(tx *gorm.DB) domain.Repository {
	return &repo{db: tx}
}

func (r *repo) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Building").
		Preload("PhoneNumbers").
		Preload("Activities")
}

func (r *repo) List(ctx context.Context, window pagination.Window) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.detailed(ctx).
		Scopes(window.Scope()).
		Order("id").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Organization, error) {
	var org domain.Organization
	err := r.detailed(ctx).
		First(&org, "organizations.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *repo) FindByBuilding(ctx context.Context, buildingID int64) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.detailed(ctx).
		Where("building_id = ?", buildingID).
		Order("id").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repo) FindByActivity(ctx context.Context, activityID int64) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.detailed(ctx).
		Where("organizations.id IN (?)",
			r.db.Table("organization_activities").
				Select("organization_id").
				Where("activity_id = ?", activityID),
		).
		Order("id").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

// SearchByName does a case-insensitive substring match. LOWER/LIKE is used
// instead of ILIKE so the same query runs on postgres, mysql and sqlite.
func (r *repo) SearchByName(ctx context.Context, name string) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.detailed(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("id").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repo) Create(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).
		Omit("Building", "PhoneNumbers", "Activities").
		Create(org).Error
}

func (r *repo) UpdateColumns(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("id = ?", org.ID).
		Updates(map[string]any{
			"name":        org.Name,
			"building_id": org.BuildingID,
		}).Error
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Organization{}, "id = ?", id).Error
}

func (r *repo) ReplacePhones(ctx context.Context, orgID int64, phones []domain.PhoneNumber) error {
	if err := r.db.WithContext(ctx).
		Exec(`DELETE FROM phone_numbers WHERE organization_id = ?`, orgID).Error; err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&phones).Error
}

func (r *repo) ReplaceActivityLinks(ctx context.Context, orgID int64, activityIDs []int64) error {
	if err := r.db.WithContext(ctx).
		Exec(`DELETE FROM organization_activities WHERE organization_id = ?`, orgID).Error; err != nil {
		return err
	}
	for _, activityID := range activityIDs {
		err := r.db.WithContext(ctx).Exec(
			`INSERT INTO organization_activities (organization_id, activity_id) VALUES (?, ?)`,
			orgID, activityID,
		).Error
		if err != nil {
			// The join table has a composite primary key; a repeated pair
			// is already the desired state.
			if pkgdb.IsDuplicateKeyErr(err) {
				continue
			}
			return err
		}
	}
	return nil
}

func (r *repo) DeleteDependents(ctx context.Context, orgID int64) error {
	if err := r.db.WithContext(ctx).
		Exec(`DELETE FROM organization_activities WHERE organization_id = ?`, orgID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Exec(`DELETE FROM phone_numbers WHERE organization_id = ?`, orgID).Error
}
