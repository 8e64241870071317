package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"expressway_portal/internal/models"
)

// stubCatalog is an in-memory repository.Catalog for handler tests.
type stubCatalog struct {
	routes    []models.Route
	schedules []models.Schedule
	cities    map[uint]models.City
	buses     map[uint]models.Bus

	busLookups int
}

func (s *stubCatalog) ListRoutes() ([]models.Route, error) {
	return s.routes, nil
}

func (s *stubCatalog) ListSchedulesByRouteIDs(routeIDs []uint) ([]models.Schedule, error) {
	wanted := map[uint]bool{}
	for _, id := range routeIDs {
		wanted[id] = true
	}
	var result []models.Schedule
	for _, schedule := range s.schedules {
		if wanted[schedule.RouteID] && schedule.Enabled {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func (s *stubCatalog) GetRouteByID(id uint) (*models.Route, error) {
	for i := range s.routes {
		if s.routes[i].ID == id {
			return &s.routes[i], nil
		}
	}
	return nil, nil
}

func (s *stubCatalog) GetCityByID(id uint) (*models.City, error) {
	if city, ok := s.cities[id]; ok {
		return &city, nil
	}
	return nil, nil
}

func (s *stubCatalog) GetBusByID(id uint) (*models.Bus, error) {
	s.busLookups++
	if bus, ok := s.buses[id]; ok {
		return &bus, nil
	}
	return nil, nil
}

func searchTestCatalog() *stubCatalog {
	busID := uint(7)
	departure := time.Date(2023, time.January, 1, 8, 0, 0, 0, time.UTC)
	arrival := time.Date(2023, time.January, 1, 11, 0, 0, 0, time.UTC)
	galleTime := time.Date(2023, time.January, 1, 9, 15, 0, 0, time.UTC)

	return &stubCatalog{
		routes: []models.Route{
			{
				Model:             gorm.Model{ID: 1},
				DepartureCityID:   1,
				DepartureCityName: "Colombo",
				ArrivalCityID:     2,
				ArrivalCityName:   "Matara",
				RouteNumber:       "EX-1",
				TransitCityIDs:    pq.Int64Array{3},
				Fares: []models.Fare{
					{Price: "100", ServiceType: "Luxury"},
					{Price: "150", ServiceType: "Super Luxury"},
				},
			},
		},
		schedules: []models.Schedule{
			{
				Model:         gorm.Model{ID: 21},
				RouteID:       1,
				BusID:         &busID,
				Enabled:       true,
				DepartureTime: departure,
				ArrivalTime:   &arrival,
				TransitTimes:  []models.TransitTime{{CityID: 3, Time: galleTime}},
			},
			{
				Model:         gorm.Model{ID: 22},
				RouteID:       1,
				BusID:         &busID,
				Enabled:       true,
				DepartureTime: departure.Add(2 * time.Hour),
			},
		},
		cities: map[uint]models.City{
			1: {Model: gorm.Model{ID: 1}, Name: "Colombo"},
			2: {Model: gorm.Model{ID: 2}, Name: "Matara"},
			3: {Model: gorm.Model{ID: 3}, Name: "Galle"},
		},
		buses: map[uint]models.Bus{
			7: {Model: gorm.Model{ID: 7}, Name: "Rosa", RegNumber: "ND-1234", ContactNumbers: pq.StringArray{"0712345678"}},
		},
	}
}

func newSearchEngine(catalog *stubCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/search/schedules", NewSearchController(catalog).SearchSchedules)
	return r
}

type searchResponse struct {
	Data    []ScheduleCard `json:"data"`
	Message string         `json:"message"`
}

func doSearch(t *testing.T, r *gin.Engine, url string) (int, searchResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var body searchResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestSearchSchedulesExactMatch(t *testing.T) {
	catalog := searchTestCatalog()
	r := newSearchEngine(catalog)

	code, body := doSearch(t, r, "/search/schedules?departure_city_id=1&arrival_city_id=2")

	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Data, 2)

	card := body.Data[0]
	assert.Equal(t, uint(21), card.ScheduleID)
	assert.Equal(t, "Colombo", card.DepartureCity)
	assert.Equal(t, "Matara", card.ArrivalCity)
	assert.Equal(t, "100/=(L) | 150/=(SL)", card.Price)
	require.NotNil(t, card.Bus)
	assert.Equal(t, "Rosa", card.Bus.Name)
	assert.Equal(t, []string{"07-123 45678"}, card.Bus.ContactNumbers)

	// both schedules share one bus; the lookup must be memoized
	assert.Equal(t, 1, catalog.busLookups)
}

func TestSearchSchedulesTransitLeg(t *testing.T) {
	r := newSearchEngine(searchTestCatalog())

	code, body := doSearch(t, r, "/search/schedules?departure_city_id=1&arrival_city_id=3")

	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Data, 2)

	withTransitTime := body.Data[0]
	assert.Equal(t, "Galle", withTransitTime.ArrivalCity)
	require.NotNil(t, withTransitTime.ArrivalTime)
	assert.Equal(t, 9, withTransitTime.ArrivalTime.Hour())
	assert.Equal(t, 15, withTransitTime.ArrivalTime.Minute())

	// schedule 22 has no transit entry for Galle; its leg time is blank
	withoutTransitTime := body.Data[1]
	assert.Equal(t, "Galle", withoutTransitTime.ArrivalCity)
	assert.Nil(t, withoutTransitTime.ArrivalTime)

	// the full-route context is still the fixed endpoints
	assert.Equal(t, "Matara", withTransitTime.RouteArrivalCity)
}

func TestSearchSchedulesNoMatchIsEmptyNotError(t *testing.T) {
	catalog := searchTestCatalog()
	catalog.cities[8] = models.City{Model: gorm.Model{ID: 8}, Name: "Kandy"}
	catalog.cities[9] = models.City{Model: gorm.Model{ID: 9}, Name: "Jaffna"}
	r := newSearchEngine(catalog)

	code, body := doSearch(t, r, "/search/schedules?departure_city_id=8&arrival_city_id=9")

	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body.Data)
	assert.Equal(t, "No schedules", body.Message)
}

func TestSearchSchedulesRejectsBadParams(t *testing.T) {
	r := newSearchEngine(searchTestCatalog())

	code, _ := doSearch(t, r, "/search/schedules?departure_city_id=1")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doSearch(t, r, "/search/schedules?departure_city_id=1&arrival_city_id=1")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doSearch(t, r, "/search/schedules?departure_city_id=404&arrival_city_id=2")
	assert.Equal(t, http.StatusBadRequest, code)
}
