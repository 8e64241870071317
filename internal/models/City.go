package models

import (
	"gorm.io/gorm"
)

// City is immutable reference data managed by administrators.
// Routes keep a snapshot of the city name at creation time, so renaming a
// city does not rewrite existing routes.
type City struct {
	gorm.Model

	Name string `json:"name" binding:"required" gorm:"index"`
}
