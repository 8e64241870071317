package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RotationSchedule is a route-level recurring timetable. The compact
// start/end/interval/duration description is expanded into concrete
// TimeTableEntry rows at authoring time.
type RotationSchedule struct {
	gorm.Model

	RouteID uint `json:"route_id" gorm:"index"`

	ContactNumbers pq.StringArray `json:"contact_numbers" gorm:"type:text[]"`

	Enabled bool `json:"enabled" gorm:"default:true"`

	TimeTable []TimeTableEntry `gorm:"foreignKey:RotationScheduleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"time_table,omitempty"`
}

// TimeTableEntry is one expanded run of a rotation schedule.
// Seq keeps the generated order.
type TimeTableEntry struct {
	gorm.Model

	RotationScheduleID uint `json:"rotation_schedule_id" gorm:"index"`
	Seq                int  `json:"seq"`

	DepartureTime time.Time  `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`
}
