// Package domain contains persistence models and contracts for the
// business-activity hierarchy.
package domain

// Activity is a node in the business-category forest. The parent link is
// stored flat; children are derived at query time.
type Activity struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:text;not null;index" json:"name"`
	ParentID *int64 `gorm:"index" json:"parent_id"`

	Children []Activity `gorm:"foreignKey:ParentID" json:"-"`
}

// TableName sets the database table name.
func (Activity) TableName() string { return "activities" }

// Simple is the compact activity view embedded in other payloads.
type Simple struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TreeNode is one node of the bounded-depth forest returned by Tree.
type TreeNode struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	ParentID *int64     `json:"parent_id"`
	Children []TreeNode `json:"children"`
}

// Detail is the single-activity view with direct children only.
type Detail struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	ParentID           *int64   `json:"parent_id"`
	Children           []Simple `json:"children"`
	OrganizationsCount int64    `json:"organizations_count"`
}
