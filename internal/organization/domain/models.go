// Package domain contains persistence models and contracts for
// organizations and their owned phone numbers.
package domain

import (
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
)

// Organization occupies exactly one building and carries a set of
// activities plus exclusively owned phone numbers.
type Organization struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:text;not null;index" json:"name"`
	BuildingID int64  `gorm:"not null;index" json:"building_id"`

	Building     *buildingdomain.Building  `gorm:"foreignKey:BuildingID" json:"-"`
	PhoneNumbers []PhoneNumber             `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"phone_numbers"`
	Activities   []activitydomain.Activity `gorm:"many2many:organization_activities" json:"-"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// PhoneNumber is owned by exactly one organization and dies with it.
type PhoneNumber struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	Number         string `gorm:"type:text;not null" json:"number"`
	OrganizationID int64  `gorm:"not null;index" json:"-"`
}

// TableName sets the database table name.
func (PhoneNumber) TableName() string { return "phone_numbers" }

// PhoneView is the wire shape of one phone number.
type PhoneView struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}

// View is the wire shape of an organization with its attached detail.
type View struct {
	ID           int64                   `json:"id"`
	Name         string                  `json:"name"`
	BuildingID   int64                   `json:"building_id"`
	PhoneNumbers []PhoneView             `json:"phone_numbers"`
	Activities   []activitydomain.Simple `json:"activities"`
}

// NewView projects a loaded organization onto the wire shape.
func NewView(org Organization) View {
	phones := make([]PhoneView, 0, len(org.PhoneNumbers))
	for _, phone := range org.PhoneNumbers {
		phones = append(phones, PhoneView{ID: phone.ID, Number: phone.Number})
	}
	activities := make([]activitydomain.Simple, 0, len(org.Activities))
	for _, activity := range org.Activities {
		activities = append(activities, activitydomain.Simple{ID: activity.ID, Name: activity.Name})
	}
	return View{
		ID:           org.ID,
		Name:         org.Name,
		BuildingID:   org.BuildingID,
		PhoneNumbers: phones,
		Activities:   activities,
	}
}

// NewViews projects a slice of organizations in order.
func NewViews(orgs []Organization) []View {
	views := make([]View, 0, len(orgs))
	for _, org := range orgs {
		views = append(views, NewView(org))
	}
	return views
}
