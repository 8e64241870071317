package transit

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"expressway_portal/internal/models"
)

const (
	cityA uint = 1
	cityB uint = 2
	cityX uint = 10
	cityY uint = 11
	cityZ uint = 12
)

func makeRoute(id uint, departureCityID, arrivalCityID uint, transitCityIDs ...uint) models.Route {
	ids := make(pq.Int64Array, 0, len(transitCityIDs))
	for _, cityID := range transitCityIDs {
		ids = append(ids, int64(cityID))
	}
	return models.Route{
		Model:           gorm.Model{ID: id},
		DepartureCityID: departureCityID,
		ArrivalCityID:   arrivalCityID,
		TransitCityIDs:  ids,
	}
}

func TestExactMatchWinsOverTransitMatch(t *testing.T) {
	exact := makeRoute(1, cityA, cityB)
	viaTransit := makeRoute(2, cityA, cityZ, cityB)
	catalog := []models.Route{viaTransit, exact}

	matches := FindRoutesByCityIDs(cityA, cityB, catalog)

	assert.Len(t, matches, 1)
	assert.Equal(t, exact.ID, matches[0].ID)
}

func TestArrivalIsTransitMatch(t *testing.T) {
	route := makeRoute(1, cityA, cityZ, cityX, cityB)
	catalog := []models.Route{route}

	matches := FindRoutesByCityIDs(cityA, cityB, catalog)

	assert.Len(t, matches, 1)
	assert.Equal(t, route.ID, matches[0].ID)
}

func TestDepartureIsTransitMatch(t *testing.T) {
	route := makeRoute(1, cityZ, cityB, cityA, cityX)
	catalog := []models.Route{route}

	matches := FindRoutesByCityIDs(cityA, cityB, catalog)

	assert.Len(t, matches, 1)
	assert.Equal(t, route.ID, matches[0].ID)
}

func TestBothTransitMatchRespectsTravelOrder(t *testing.T) {
	route := makeRoute(1, cityA, cityB, cityX, cityY, cityZ)
	catalog := []models.Route{route}

	forward := FindRoutesByCityIDs(cityX, cityZ, catalog)
	assert.Len(t, forward, 1)

	backward := FindRoutesByCityIDs(cityZ, cityX, catalog)
	assert.Empty(t, backward)
}

func TestReversedTransitPairReturnsEmpty(t *testing.T) {
	route := makeRoute(1, cityA, cityB, cityX, cityY, cityZ)
	catalog := []models.Route{route}

	matches := FindRoutesByCityIDs(cityY, cityX, catalog)

	assert.Empty(t, matches)
}

func TestNoMatchReturnsEmptyNotError(t *testing.T) {
	catalog := []models.Route{
		makeRoute(1, cityA, cityB, cityX),
		makeRoute(2, cityB, cityA),
	}

	matches := FindRoutesByCityIDs(98, 99, catalog)

	assert.Empty(t, matches)
}

func TestCatalogOrderPreservedWithinTier(t *testing.T) {
	first := makeRoute(1, cityA, cityB)
	second := makeRoute(2, cityA, cityB)
	catalog := []models.Route{first, second}

	matches := FindRoutesByCityIDs(cityA, cityB, catalog)

	assert.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].ID)
	assert.Equal(t, second.ID, matches[1].ID)
}

func TestFirstNonEmptyTierIsNotMergedWithLaterTiers(t *testing.T) {
	// arrival-is-transit (tier 2) should suppress the departure-is-transit
	// route (tier 3)
	tier2 := makeRoute(1, cityA, cityZ, cityB)
	tier3 := makeRoute(2, cityZ, cityB, cityA)
	catalog := []models.Route{tier3, tier2}

	matches := FindRoutesByCityIDs(cityA, cityB, catalog)

	assert.Len(t, matches, 1)
	assert.Equal(t, tier2.ID, matches[0].ID)
}
