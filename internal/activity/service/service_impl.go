package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/orgcatalog/catalog/internal/activity/domain"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(db *gorm.DB, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		db:    db,
		repo:  repo,
		genID: genID,
	}
}

// forestIndex is a one-fetch snapshot of the activity table keyed for
// structural queries.
type forestIndex struct {
	byID     map[int64]domain.Activity
	children map[int64][]domain.Activity
	roots    []domain.Activity
}

func (s *service) loadForest(ctx context.Context) (*forestIndex, error) {
	activities, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := &forestIndex{
		byID:     make(map[int64]domain.Activity, len(activities)),
		children: make(map[int64][]domain.Activity),
	}
	for _, a := range activities {
		idx.byID[a.ID] = a
	}
	for _, a := range activities {
		if a.ParentID == nil {
			idx.roots = append(idx.roots, a)
			continue
		}
		if _, ok := idx.byID[*a.ParentID]; !ok {
			// Orphaned subtree; surface it as a root rather than
			// dropping it from the forest.
			idx.roots = append(idx.roots, a)
			continue
		}
		idx.children[*a.ParentID] = append(idx.children[*a.ParentID], a)
	}
	return idx, nil
}

func (s *service) Tree(ctx context.Context, maxDepth int) ([]domain.TreeNode, error) {
	if maxDepth < domain.MinTreeDepth || maxDepth > domain.MaxTreeDepth {
		return nil, domain.ErrInvalidDepth
	}

	idx, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}

	forest := make([]domain.TreeNode, 0, len(idx.roots))
	visited := make(map[int64]bool, len(idx.byID))
	for _, root := range idx.roots {
		forest = append(forest, buildSubtree(idx, root, 0, maxDepth, visited))
	}
	return forest, nil
}

// buildSubtree truncates at depth == maxDepth: the node is emitted but its
// children list stays empty regardless of stored rows. The visited set
// stops descent if the stored graph turns out to be cyclic.
func buildSubtree(idx *forestIndex, node domain.Activity, depth, maxDepth int, visited map[int64]bool) domain.TreeNode {
	out := domain.TreeNode{
		ID:       node.ID,
		Name:     node.Name,
		ParentID: node.ParentID,
		Children: []domain.TreeNode{},
	}
	if depth >= maxDepth || visited[node.ID] {
		return out
	}
	visited[node.ID] = true
	for _, child := range idx.children[node.ID] {
		out.Children = append(out.Children, buildSubtree(idx, child, depth+1, maxDepth, visited))
	}
	return out
}

func (s *service) AllDescendants(ctx context.Context, id int64) ([]int64, error) {
	idx, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := idx.byID[id]; !ok {
		return []int64{}, nil
	}

	// Breadth-first walk over the children index. The parent graph is
	// acyclic by invariant but not enforced on write, so revisits are
	// treated as a no-op instead of trusted.
	visited := map[int64]bool{id: true}
	ids := []int64{id}
	queue := []int64{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range idx.children[current] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids, nil
}

func (s *service) Depth(ctx context.Context, id int64) (int, error) {
	idx, err := s.loadForest(ctx)
	if err != nil {
		return 0, err
	}
	node, ok := idx.byID[id]
	if !ok {
		return 0, domain.ErrNotFound
	}

	depth := 0
	visited := map[int64]bool{id: true}
	for node.ParentID != nil {
		parent, ok := idx.byID[*node.ParentID]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		node = parent
		depth++
	}
	return depth, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Detail, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrNotFound
	}
	return s.detail(ctx, activity)
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Detail, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if err := s.resolveParent(ctx, req.ParentID); err != nil {
		return nil, err
	}

	activity := domain.Activity{
		ID:       s.genID.Generate().Int64(),
		Name:     name,
		ParentID: req.ParentID,
	}
	if err := s.repo.Create(ctx, &activity); err != nil {
		return nil, err
	}
	return &domain.Detail{
		ID:       activity.ID,
		Name:     activity.Name,
		ParentID: activity.ParentID,
		Children: []domain.Simple{},
	}, nil
}

func (s *service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.Detail, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		activity.Name = name
	}
	if req.ParentID != nil {
		if err := s.resolveParent(ctx, req.ParentID); err != nil {
			return nil, err
		}
		activity.ParentID = req.ParentID
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return s.detail(ctx, activity)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if activity == nil {
		return domain.ErrNotFound
	}

	// The guard is shallow: only direct children and direct organization
	// associations block deletion.
	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return domain.ErrHasChildren
	}
	organizations, err := s.repo.CountOrganizations(ctx, id)
	if err != nil {
		return err
	}
	if organizations > 0 {
		return domain.ErrInUse
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) resolveParent(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if *parentID <= 0 {
		return domain.ErrInvalidParent
	}
	parent, err := s.repo.FindByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return domain.ErrParentNotFound
	}
	return nil
}

func (s *service) detail(ctx context.Context, activity *domain.Activity) (*domain.Detail, error) {
	children, err := s.repo.FindChildren(ctx, activity.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountOrganizations(ctx, activity.ID)
	if err != nil {
		return nil, err
	}

	simple := make([]domain.Simple, 0, len(children))
	for _, child := range children {
		simple = append(simple, domain.Simple{ID: child.ID, Name: child.Name})
	}
	return &domain.Detail{
		ID:                 activity.ID,
		Name:               activity.Name,
		ParentID:           activity.ParentID,
		Children:           simple,
		OrganizationsCount: count,
	}, nil
}
