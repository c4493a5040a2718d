package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/orgcatalog/catalog/internal/building/domain"
	"github.com/orgcatalog/catalog/internal/building/repository"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"github.com/orgcatalog/catalog/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Building{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewService(db, repository.NewRepository(db), repository.NewLocator(db), node), db
}

func seedBuildings(t *testing.T, db *gorm.DB) {
	t.Helper()
	buildings := []domain.Building{
		{ID: 1, Address: "Moscow center", Latitude: 55.7558, Longitude: 37.6173},
		{ID: 2, Address: "Moscow nearby", Latitude: 55.7600, Longitude: 37.6200},
		{ID: 3, Address: "Saint Petersburg", Latitude: 59.9343, Longitude: 30.3351},
		{ID: 4, Address: "Equator corner", Latitude: 0, Longitude: 0},
	}
	require.NoError(t, db.Create(&buildings).Error)
}

func TestFindInRadius(t *testing.T) {
	svc, db := newTestService(t)
	seedBuildings(t, db)
	ctx := context.Background()

	t.Run("rejects non-positive radius", func(t *testing.T) {
		_, err := svc.FindInRadius(ctx, 55.7558, 37.6173, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRadius)
		_, err = svc.FindInRadius(ctx, 55.7558, 37.6173, -100)
		assert.ErrorIs(t, err, domain.ErrInvalidRadius)
	})

	t.Run("membership matches the distance contract", func(t *testing.T) {
		const radius = 1000.0
		matches, err := svc.FindInRadius(ctx, 55.7558, 37.6173, radius)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		for _, match := range matches {
			require.NotNil(t, match.Distance)
			want := geo.Haversine(55.7558, 37.6173, match.Latitude, match.Longitude)
			assert.InDelta(t, want, *match.Distance, 1e-9)
			assert.LessOrEqual(t, *match.Distance, radius)
		}
	})

	t.Run("tight radius keeps only the center", func(t *testing.T) {
		matches, err := svc.FindInRadius(ctx, 55.7558, 37.6173, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, int64(1), matches[0].ID)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		matches, err := svc.FindInRadius(ctx, 40.0, -74.0, 1000)
		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	})
}

func TestFindInRectangle(t *testing.T) {
	svc, db := newTestService(t)
	seedBuildings(t, db)
	ctx := context.Background()

	t.Run("bounds are inclusive", func(t *testing.T) {
		buildings, err := svc.FindInRectangle(ctx, 55.7558, 55.7600, 37.6173, 37.6200)
		require.NoError(t, err)
		require.Len(t, buildings, 2)
		assert.Equal(t, int64(1), buildings[0].ID)
		assert.Equal(t, int64(2), buildings[1].ID)
	})

	t.Run("zero coordinates are real coordinates", func(t *testing.T) {
		buildings, err := svc.FindInRectangle(ctx, -1, 1, -1, 1)
		require.NoError(t, err)
		require.Len(t, buildings, 1)
		assert.Equal(t, int64(4), buildings[0].ID)
	})

	t.Run("empty rectangle", func(t *testing.T) {
		buildings, err := svc.FindInRectangle(ctx, 10, 20, 10, 20)
		require.NoError(t, err)
		assert.Empty(t, buildings)
	})
}

func TestListAndGet(t *testing.T) {
	svc, db := newTestService(t)
	seedBuildings(t, db)
	ctx := context.Background()

	t.Run("windowed listing", func(t *testing.T) {
		buildings, err := svc.List(ctx, pagination.Window{Skip: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, buildings, 2)
		assert.Equal(t, int64(2), buildings[0].ID)
		assert.Equal(t, int64(3), buildings[1].ID)
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := svc.List(ctx, pagination.Window{Skip: -1, Limit: 10})
		assert.ErrorIs(t, err, pagination.ErrInvalidWindow)
	})

	t.Run("get by id", func(t *testing.T) {
		building, err := svc.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Saint Petersburg", building.Address)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCreateAndUpdate(t *testing.T) {
	svc, db := newTestService(t)
	seedBuildings(t, db)
	ctx := context.Background()

	t.Run("create trims the address", func(t *testing.T) {
		building, err := svc.Create(ctx, domain.CreateRequest{
			Address:   "  Yekaterinburg, Lenina 25  ",
			Latitude:  56.8380,
			Longitude: 60.5970,
		})
		require.NoError(t, err)
		assert.Equal(t, "Yekaterinburg, Lenina 25", building.Address)
		assert.NotZero(t, building.ID)
	})

	t.Run("create rejects blank address", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateRequest{Address: "   "})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("partial update", func(t *testing.T) {
		lat := 55.7559
		building, err := svc.Update(ctx, 1, domain.UpdateRequest{Latitude: &lat})
		require.NoError(t, err)
		assert.Equal(t, 55.7559, building.Latitude)
		assert.Equal(t, "Moscow center", building.Address)
	})

	t.Run("update unknown id", func(t *testing.T) {
		addr := "X"
		_, err := svc.Update(ctx, 999999, domain.UpdateRequest{Address: &addr})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
