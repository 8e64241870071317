package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Bus is an independent vehicle entity; schedules reference it by id.
type Bus struct {
	gorm.Model

	Name      string `json:"name" binding:"required"`
	RegNumber string `json:"reg_number"`

	ContactNumbers pq.StringArray `json:"contact_numbers" gorm:"type:text[]"`
}
