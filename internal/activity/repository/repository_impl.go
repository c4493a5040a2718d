package repository

import (
	"context"
	"errors"

	"github.com/orgcatalog/catalog/internal/activity/domain"
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

func (r *repo) FindAll(ctx context.Context) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	var activity domain.Activity
	err := r.db.WithContext(ctx).
		First(&activity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *repo) FindChildren(ctx context.Context, id int64) ([]domain.Activity, error) {
	var children []domain.Activity
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		Order("id").
		Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

func (r *repo) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repo) Update(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("id = ?", activity.ID).
		Updates(map[string]any{
			"name":      activity.Name,
			"parent_id": activity.ParentID,
		}).Error
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Activity{}, "id = ?", id).Error
}

func (r *repo) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repo) CountOrganizations(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("organization_activities").
		Where("activity_id = ?", id).
		Count(&count).Error
	return count, err
}
