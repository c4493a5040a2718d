package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
	"github.com/orgcatalog/catalog/internal/organization/domain"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type service struct {
	db           *gorm.DB
	repo         domain.Repository
	activities   activitydomain.Service
	activityRepo activitydomain.Repository
	buildings    buildingdomain.Service
	genID        *snowflake.Node
}

func NewService(
	db *gorm.DB,
	repo domain.Repository,
	activities activitydomain.Service,
	activityRepo activitydomain.Repository,
	buildings buildingdomain.Service,
	genID *snowflake.Node,
) domain.Service {
	return &service{
		db:           db,
		repo:         repo,
		activities:   activities,
		activityRepo: activityRepo,
		buildings:    buildings,
		genID:        genID,
	}
}

func (s *service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.View, error) {
	if err := req.Window.Validate(); err != nil {
		return nil, err
	}

	switch {
	case req.ActivityID != nil:
		return s.searchByActivity(ctx, *req.ActivityID, req.Window)
	case req.Name != "":
		orgs, err := s.repo.SearchByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		return domain.NewViews(pagination.Slice(orgs, req.Window)), nil
	case req.Area != nil:
		return s.searchByArea(ctx, req.Area, req.Window)
	default:
		orgs, err := s.repo.List(ctx, req.Window)
		if err != nil {
			return nil, err
		}
		return domain.NewViews(orgs), nil
	}
}

// searchByActivity resolves the full descendant set first, then collects
// organizations per descendant id. An unknown activity id yields an empty
// result on purpose; only the direct activity lookup reports not-found.
func (s *service) searchByActivity(ctx context.Context, activityID int64, window pagination.Window) ([]domain.View, error) {
	descendants, err := s.activities.AllDescendants(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if len(descendants) == 0 {
		return []domain.View{}, nil
	}

	agg := newAggregator()
	for _, id := range descendants {
		orgs, err := s.repo.FindByActivity(ctx, id)
		if err != nil {
			return nil, err
		}
		agg.extend(orgs)
	}
	return domain.NewViews(pagination.Slice(agg.result(), window)), nil
}

// searchByArea resolves buildings spatially, then collects organizations
// per building. Aggregated modes paginate in memory because the total
// result size is unknown until every source was consulted.
func (s *service) searchByArea(ctx context.Context, area *domain.AreaFilter, window pagination.Window) ([]domain.View, error) {
	var buildingIDs []int64
	switch area.Kind {
	case domain.AreaCircle:
		matches, err := s.buildings.FindInRadius(ctx, area.Lat, area.Lon, area.RadiusMeters)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			buildingIDs = append(buildingIDs, match.ID)
		}
	case domain.AreaRectangle:
		matches, err := s.buildings.FindInRectangle(ctx, area.MinLat, area.MaxLat, area.MinLon, area.MaxLon)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			buildingIDs = append(buildingIDs, match.ID)
		}
	default:
		return nil, domain.ErrInvalidArea
	}

	agg := newAggregator()
	for _, buildingID := range buildingIDs {
		orgs, err := s.repo.FindByBuilding(ctx, buildingID)
		if err != nil {
			return nil, err
		}
		agg.extend(orgs)
	}
	return domain.NewViews(pagination.Slice(agg.result(), window)), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.View, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	view := domain.NewView(*org)
	return &view, nil
}

func (s *service) ListByBuilding(ctx context.Context, buildingID int64) ([]domain.View, error) {
	orgs, err := s.repo.FindByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	return domain.NewViews(orgs), nil
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.View, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if _, err := s.buildings.GetByID(ctx, req.BuildingID); err != nil {
		if err == buildingdomain.ErrNotFound {
			return nil, domain.ErrBuildingNotFound
		}
		return nil, err
	}

	org := domain.Organization{
		ID:         s.genID.Generate().Int64(),
		Name:       name,
		BuildingID: req.BuildingID,
	}

	// Organization, phones and activity links land atomically.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, &org); err != nil {
			return err
		}
		if err := repo.ReplacePhones(ctx, org.ID, s.newPhones(org.ID, req.PhoneNumbers)); err != nil {
			return err
		}
		linkIDs, err := s.existingActivityIDs(ctx, tx, req.ActivityIDs)
		if err != nil {
			return err
		}
		return repo.ReplaceActivityLinks(ctx, org.ID, linkIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, org.ID)
}

func (s *service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.View, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		org.Name = name
	}
	if req.BuildingID != nil {
		if _, err := s.buildings.GetByID(ctx, *req.BuildingID); err != nil {
			if err == buildingdomain.ErrNotFound {
				return nil, domain.ErrBuildingNotFound
			}
			return nil, err
		}
		org.BuildingID = *req.BuildingID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateColumns(ctx, org); err != nil {
			return err
		}
		if req.PhoneNumbers != nil {
			if err := repo.ReplacePhones(ctx, org.ID, s.newPhones(org.ID, *req.PhoneNumbers)); err != nil {
				return err
			}
		}
		if req.ActivityIDs != nil {
			linkIDs, err := s.existingActivityIDs(ctx, tx, *req.ActivityIDs)
			if err != nil {
				return err
			}
			if err := repo.ReplaceActivityLinks(ctx, org.ID, linkIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if org == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteDependents(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func (s *service) newPhones(orgID int64, numbers []string) []domain.PhoneNumber {
	phones := make([]domain.PhoneNumber, 0, len(numbers))
	for _, number := range numbers {
		number = strings.TrimSpace(number)
		if number == "" {
			continue
		}
		phones = append(phones, domain.PhoneNumber{
			ID:             s.genID.Generate().Int64(),
			Number:         number,
			OrganizationID: orgID,
		})
	}
	return phones
}

// existingActivityIDs keeps only ids present in the activities table,
// matching the source behavior of silently dropping unknown links.
func (s *service) existingActivityIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	activityRepo := s.activityRepo.WithTx(tx)
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		activity, err := activityRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if activity != nil {
			out = append(out, id)
		}
	}
	return out, nil
}
