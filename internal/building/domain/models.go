// Package domain contains persistence models and contracts for buildings.
package domain

// Building is a physical address with coordinates in decimal degrees.
type Building struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	Address   string  `gorm:"type:text;not null" json:"address"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

// TableName sets the database table name.
func (Building) TableName() string { return "buildings" }

// WithDistance pairs a building with its great-circle distance to a search
// center. Distance is nil for rectangle searches, which never compute one.
type WithDistance struct {
	Building
	Distance *float64 `json:"distance"`
}
