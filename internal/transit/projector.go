package transit

import (
	"fmt"
	"strings"
	"time"

	"expressway_portal/internal/models"
)

// CityRef identifies a requested city together with its display name.
type CityRef struct {
	ID   uint
	Name string
}

// Projection is the rider-relevant view of one schedule: the departure and
// arrival city/time for the rider's leg, plus the route's own fixed
// endpoints for "full route" context.
type Projection struct {
	DepartureCity string     `json:"departure_city"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	ArrivalCity   string     `json:"arrival_city"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`

	RouteDepartureCity string     `json:"route_departure_city"`
	RouteDepartureTime *time.Time `json:"route_departure_time,omitempty"`
	RouteArrivalCity   string     `json:"route_arrival_city"`
	RouteArrivalTime   *time.Time `json:"route_arrival_time,omitempty"`
}

// ProjectSchedule computes the displayed departure/arrival city and time for
// a schedule when the rider's cities may be transit stops rather than the
// route's fixed endpoints. A schedule with no transit-time entry for a
// requested city yields a nil time, which renders blank; that is a valid
// state, not an error.
func ProjectSchedule(route models.Route, schedule models.Schedule, departure, arrival CityRef) Projection {
	departureTime := schedule.DepartureTime
	p := Projection{
		DepartureCity: route.DepartureCityName,
		DepartureTime: &departureTime,
		ArrivalCity:   route.ArrivalCityName,
		ArrivalTime:   schedule.ArrivalTime,

		RouteDepartureCity: route.DepartureCityName,
		RouteDepartureTime: &departureTime,
		RouteArrivalCity:   route.ArrivalCityName,
		RouteArrivalTime:   schedule.ArrivalTime,
	}

	if departure.ID != route.DepartureCityID {
		p.DepartureCity = departure.Name
		p.DepartureTime = schedule.TransitTimeFor(departure.ID)
	}

	if arrival.ID != route.ArrivalCityID {
		p.ArrivalCity = arrival.Name
		p.ArrivalTime = schedule.TransitTimeFor(arrival.ID)
	}

	return p
}

// FareDisplay renders the route's fares as a single display string.
// Multiple fares render as "<price>/=(<service type initials>)" joined by
// " | "; a single fare renders its price alone; with no fares the legacy
// Price field is used.
func FareDisplay(route models.Route) string {
	if len(route.Fares) > 1 {
		parts := make([]string, 0, len(route.Fares))
		for _, fare := range route.Fares {
			parts = append(parts, fmt.Sprintf("%s/=(%s)", fare.Price, FirstLetters(fare.ServiceType)))
		}
		return strings.Join(parts, " | ")
	}
	if len(route.Fares) == 1 {
		return route.Fares[0].Price + "/="
	}
	return route.Price + "/="
}
