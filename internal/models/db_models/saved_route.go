package db_models

import (
	"gorm.io/datatypes"
)

// SavedRoute is a computed route an owner chose to keep. RouteData holds
// the validated routeData document verbatim.
type SavedRoute struct {
	BaseModel
	OwnerID     string `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description *string
	Start       string         `gorm:"not null"`
	Goal        string         `gorm:"not null"`
	RouteData   datatypes.JSON `gorm:"type:jsonb;not null"`
}

func (SavedRoute) TableName() string { return "saved_routes" }
