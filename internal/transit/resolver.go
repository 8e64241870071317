package transit

import (
	"expressway_portal/internal/models"
)

// FindRoutesByCityIDs matches a rider's requested departure/arrival pair
// against the route catalog. Four strategies are tried in order and the
// first one that yields any match wins; later tiers are never merged in.
//
//  1. exact endpoints
//  2. departure endpoint, arrival is a transit stop
//  3. arrival endpoint, departure is a transit stop
//  4. both are transit stops, in travel order
//
// Catalog order is preserved within a tier. An empty result means no usable
// route, which is not an error.
func FindRoutesByCityIDs(departureCityID, arrivalCityID uint, catalog []models.Route) []models.Route {
	var matches []models.Route

	for _, route := range catalog {
		if route.DepartureCityID == departureCityID && route.ArrivalCityID == arrivalCityID {
			matches = append(matches, route)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	for _, route := range catalog {
		if route.DepartureCityID == departureCityID && route.HasTransitCity(arrivalCityID) {
			matches = append(matches, route)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	for _, route := range catalog {
		if route.ArrivalCityID == arrivalCityID && route.HasTransitCity(departureCityID) {
			matches = append(matches, route)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	// A route is never usable backwards, so the boarding stop must come
	// before the alighting stop.
	for _, route := range catalog {
		departureIndex := route.TransitCityIndex(departureCityID)
		arrivalIndex := route.TransitCityIndex(arrivalCityID)
		if departureIndex > -1 && arrivalIndex > -1 && departureIndex < arrivalIndex {
			matches = append(matches, route)
		}
	}
	return matches
}
