package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Route represents a fixed published road service between two cities,
// optionally passing through transit cities.
// The departure/arrival city names are snapshots taken when the route is
// written, not live foreign keys.
type Route struct {
	gorm.Model

	DepartureCityID   uint   `json:"departure_city_id"`
	DepartureCityName string `json:"departure_city_name"`
	ArrivalCityID     uint   `json:"arrival_city_id"`
	ArrivalCityName   string `json:"arrival_city_name"`

	RouteNumber string `json:"route_number"`

	// Legacy single fare; ignored whenever Fares is non-empty
	Price string `json:"price"`

	// Intermediate stops in travel order from departure to arrival.
	// Never contains the departure or arrival city id.
	TransitCityIDs pq.Int64Array `json:"transit_city_ids" gorm:"type:bigint[]"`

	// Optional road path stored as WKB; GeoJSON at the API boundary
	Geometry []byte `json:"-" gorm:"type:bytea"`

	// Associations
	Fares []Fare `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fares,omitempty"`
}

// Fare is one priced service class on a route, e.g. "Luxury" or "Super Luxury".
// Seq keeps the display order.
type Fare struct {
	gorm.Model

	RouteID     uint   `json:"route_id" gorm:"index"`
	Seq         int    `json:"seq"`
	Price       string `json:"price" binding:"required"`
	ServiceType string `json:"service_type"`
}

// HasTransitCity reports whether the given city is one of the route's
// intermediate stops.
func (r *Route) HasTransitCity(cityID uint) bool {
	return r.TransitCityIndex(cityID) > -1
}

// TransitCityIndex returns the position of the city within the transit
// sequence, or -1 when the city is not a transit stop.
func (r *Route) TransitCityIndex(cityID uint) int {
	for i, id := range r.TransitCityIDs {
		if uint(id) == cityID {
			return i
		}
	}
	return -1
}
