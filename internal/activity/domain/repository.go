package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// FindAll returns the whole forest in id order; hierarchy queries
	// index it by parent id instead of issuing per-node fetches.
	FindAll(ctx context.Context) ([]Activity, error)
	FindByID(ctx context.Context, id int64) (*Activity, error)
	FindChildren(ctx context.Context, id int64) ([]Activity, error)

	Create(ctx context.Context, activity *Activity) error
	Update(ctx context.Context, activity *Activity) error
	Delete(ctx context.Context, id int64) error

	CountChildren(ctx context.Context, id int64) (int64, error)
	CountOrganizations(ctx context.Context, id int64) (int64, error)
}
