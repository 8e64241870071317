package transit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expressway_portal/internal/models"
)

func makeSchedule(departure time.Time, arrival *time.Time, transitTimes ...models.TransitTime) models.Schedule {
	return models.Schedule{
		DepartureTime: departure,
		ArrivalTime:   arrival,
		TransitTimes:  transitTimes,
	}
}

func TestProjectionUsesRouteEndpointsDirectly(t *testing.T) {
	route := makeRoute(1, cityA, cityB, cityX)
	route.DepartureCityName = "Colombo"
	route.ArrivalCityName = "Matara"

	arrivalTime := clock(11, 30)
	schedule := makeSchedule(clock(9, 0), &arrivalTime)

	p := ProjectSchedule(route, schedule, CityRef{ID: cityA, Name: "Colombo"}, CityRef{ID: cityB, Name: "Matara"})

	assert.Equal(t, "Colombo", p.DepartureCity)
	require.NotNil(t, p.DepartureTime)
	assert.Equal(t, clock(9, 0), *p.DepartureTime)
	assert.Equal(t, "Matara", p.ArrivalCity)
	require.NotNil(t, p.ArrivalTime)
	assert.Equal(t, clock(11, 30), *p.ArrivalTime)
}

func TestProjectionLooksUpTransitTimes(t *testing.T) {
	route := makeRoute(1, cityA, cityB, cityX, cityY)
	route.DepartureCityName = "Colombo"
	route.ArrivalCityName = "Matara"

	arrivalTime := clock(11, 30)
	schedule := makeSchedule(clock(9, 0), &arrivalTime,
		models.TransitTime{CityID: cityX, Time: clock(9, 45)},
		models.TransitTime{CityID: cityY, Time: clock(10, 30)},
	)

	p := ProjectSchedule(route, schedule, CityRef{ID: cityX, Name: "Galle"}, CityRef{ID: cityY, Name: "Weligama"})

	assert.Equal(t, "Galle", p.DepartureCity)
	require.NotNil(t, p.DepartureTime)
	assert.Equal(t, clock(9, 45), *p.DepartureTime)
	assert.Equal(t, "Weligama", p.ArrivalCity)
	require.NotNil(t, p.ArrivalTime)
	assert.Equal(t, clock(10, 30), *p.ArrivalTime)

	// route context stays on the fixed endpoints
	assert.Equal(t, "Colombo", p.RouteDepartureCity)
	assert.Equal(t, "Matara", p.RouteArrivalCity)
	require.NotNil(t, p.RouteDepartureTime)
	assert.Equal(t, clock(9, 0), *p.RouteDepartureTime)
}

func TestProjectionMissingTransitTimeRendersBlank(t *testing.T) {
	route := makeRoute(1, cityA, cityB, cityX)
	schedule := makeSchedule(clock(9, 0), nil)

	p := ProjectSchedule(route, schedule, CityRef{ID: cityX, Name: "Galle"}, CityRef{ID: cityB, Name: "Matara"})

	assert.Equal(t, "Galle", p.DepartureCity)
	assert.Nil(t, p.DepartureTime)
	assert.Nil(t, p.ArrivalTime)
}

func TestFareDisplayMultipleFares(t *testing.T) {
	route := models.Route{
		Price: "900",
		Fares: []models.Fare{
			{Price: "100", ServiceType: "Luxury"},
			{Price: "150", ServiceType: "Super Luxury"},
		},
	}

	assert.Equal(t, "100/=(L) | 150/=(SL)", FareDisplay(route))
}

func TestFareDisplaySingleFare(t *testing.T) {
	route := models.Route{
		Price: "900",
		Fares: []models.Fare{{Price: "1200", ServiceType: "Luxury"}},
	}

	assert.Equal(t, "1200/=", FareDisplay(route))
}

func TestFareDisplayFallsBackToLegacyPrice(t *testing.T) {
	route := models.Route{Price: "900"}

	assert.Equal(t, "900/=", FareDisplay(route))
}
