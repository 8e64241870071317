package models

import (
	"time"

	"gorm.io/gorm"
)

// Schedule is one concrete daily run of a Route at fixed wall-clock times.
// Only the hour and minute of the stored times are meaningful.
type Schedule struct {
	gorm.Model

	RouteID uint  `json:"route_id" gorm:"index"`
	BusID   *uint `json:"bus_id,omitempty"`

	Enabled bool `json:"enabled" gorm:"default:true"`

	DepartureTime time.Time  `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`

	// Time-of-day at which this run passes each transit city of the owning route
	TransitTimes []TransitTime `gorm:"foreignKey:ScheduleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"transit_times,omitempty"`
}

// TransitTime records when a schedule passes one transit city.
// The city id must be on the owning route's transit list; writes are
// validated against it.
type TransitTime struct {
	gorm.Model

	ScheduleID uint      `json:"schedule_id" gorm:"index"`
	CityID     uint      `json:"city_id"`
	Time       time.Time `json:"time"`
}

// TransitTimeFor returns the time-of-day at which the schedule passes the
// given transit city, or nil when no entry exists for it.
func (s *Schedule) TransitTimeFor(cityID uint) *time.Time {
	for i := range s.TransitTimes {
		if s.TransitTimes[i].CityID == cityID {
			return &s.TransitTimes[i].Time
		}
	}
	return nil
}
