package domain

import (
	"context"
	"errors"
)

const (
	// MinTreeDepth and MaxTreeDepth bound the presentation depth of the
	// activity forest. Depth is not enforced on writes.
	MinTreeDepth = 1
	MaxTreeDepth = 3
)

type Service interface {
	// Tree returns every root activity as a tree of depth at most
	// maxDepth. Nodes at the cutoff carry an empty children list even
	// when deeper rows exist.
	Tree(ctx context.Context, maxDepth int) ([]TreeNode, error)

	// AllDescendants returns the activity id plus every transitive
	// descendant id, in breadth-first order. Unknown ids yield an empty
	// slice, not an error.
	AllDescendants(ctx context.Context, id int64) ([]int64, error)

	// Depth reports the distance from the activity to its nearest root
	// ancestor (root = 0).
	Depth(ctx context.Context, id int64) (int, error)

	GetByID(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, req CreateRequest) (*Detail, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Detail, error)
	Delete(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Name     string
	ParentID *int64
}

type UpdateRequest struct {
	Name     *string
	ParentID *int64
}

var (
	ErrNotFound       = errors.New("activity_not_found")
	ErrInvalidName    = errors.New("invalid_activity_name")
	ErrInvalidParent  = errors.New("invalid_parent_id")
	ErrParentNotFound = errors.New("parent_activity_not_found")
	ErrInvalidDepth   = errors.New("invalid_max_depth")
	ErrHasChildren    = errors.New("activity_has_children")
	ErrInUse          = errors.New("activity_in_use")
)
