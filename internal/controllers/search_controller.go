package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"expressway_portal/internal/models"
	"expressway_portal/internal/repository"
	"expressway_portal/internal/transit"
)

// SearchController serves the public schedule search. It depends only on
// the injected catalog, so it is testable against a stub.
type SearchController struct {
	catalog repository.Catalog
}

func NewSearchController(catalog repository.Catalog) *SearchController {
	return &SearchController{catalog: catalog}
}

// ScheduleCard is one search result: the rider's leg, the full route
// context, the fare string and the assigned bus, if any.
type ScheduleCard struct {
	ScheduleID  uint   `json:"schedule_id"`
	RouteID     uint   `json:"route_id"`
	RouteNumber string `json:"route_number,omitempty"`

	transit.Projection

	Price string        `json:"price"`
	Fares []models.Fare `json:"fares,omitempty"`

	Bus *BusDetails `json:"bus,omitempty"`
}

// BusDetails is the bus info shown on a card, with display-formatted
// contact numbers.
type BusDetails struct {
	Name           string   `json:"name"`
	RegNumber      string   `json:"reg_number"`
	ContactNumbers []string `json:"contact_numbers"`
}

// SearchSchedules resolves the requested city pair against the route
// catalog and projects every enabled schedule of the matched routes onto
// the rider's leg. An empty result is a normal "no schedules" answer.
func (sc *SearchController) SearchSchedules(c *gin.Context) {
	departureCityID, err1 := strconv.ParseUint(c.Query("departure_city_id"), 10, 32)
	arrivalCityID, err2 := strconv.ParseUint(c.Query("arrival_city_id"), 10, 32)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure_city_id and arrival_city_id are required"})
		return
	}
	if departureCityID == arrivalCityID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure and arrival city must differ"})
		return
	}

	departureCity, err := sc.catalog.GetCityByID(uint(departureCityID))
	if err != nil {
		logrus.WithError(err).Error("SearchSchedules: departure city lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	arrivalCity, err := sc.catalog.GetCityByID(uint(arrivalCityID))
	if err != nil {
		logrus.WithError(err).Error("SearchSchedules: arrival city lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	if departureCity == nil || arrivalCity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown city"})
		return
	}

	catalog, err := sc.catalog.ListRoutes()
	if err != nil {
		logrus.WithError(err).Error("SearchSchedules: route catalog fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	routes := transit.FindRoutesByCityIDs(uint(departureCityID), uint(arrivalCityID), catalog)
	if len(routes) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": []ScheduleCard{}, "message": "No schedules"})
		return
	}

	routesByID := make(map[uint]models.Route, len(routes))
	routeIDs := make([]uint, 0, len(routes))
	for _, route := range routes {
		routesByID[route.ID] = route
		routeIDs = append(routeIDs, route.ID)
	}

	schedules, err := sc.catalog.ListSchedulesByRouteIDs(routeIDs)
	if err != nil {
		logrus.WithError(err).Error("SearchSchedules: schedule fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	departure := transit.CityRef{ID: departureCity.ID, Name: departureCity.Name}
	arrival := transit.CityRef{ID: arrivalCity.ID, Name: arrivalCity.Name}

	busCache := map[uint]*models.Bus{}
	cards := make([]ScheduleCard, 0, len(schedules))
	for _, schedule := range schedules {
		route, ok := routesByID[schedule.RouteID]
		if !ok {
			continue
		}

		card := ScheduleCard{
			ScheduleID:  schedule.ID,
			RouteID:     route.ID,
			RouteNumber: route.RouteNumber,
			Projection:  transit.ProjectSchedule(route, schedule, departure, arrival),
			Price:       transit.FareDisplay(route),
			Fares:       route.Fares,
		}

		if schedule.BusID != nil {
			card.Bus = sc.busDetails(*schedule.BusID, busCache)
		}

		cards = append(cards, card)
	}

	response := gin.H{"data": cards}
	if len(cards) == 0 {
		response["message"] = "No schedules"
	}
	c.JSON(http.StatusOK, response)
}

// busDetails resolves a bus by id, memoized per search request. A bus that
// no longer exists leaves the card without bus details.
func (sc *SearchController) busDetails(busID uint, cache map[uint]*models.Bus) *BusDetails {
	bus, seen := cache[busID]
	if !seen {
		var err error
		bus, err = sc.catalog.GetBusByID(busID)
		if err != nil {
			logrus.WithError(err).Error("SearchSchedules: bus lookup failed")
			bus = nil
		}
		cache[busID] = bus
	}
	if bus == nil {
		return nil
	}

	contactNumbers := make([]string, 0, len(bus.ContactNumbers))
	for _, no := range bus.ContactNumbers {
		contactNumbers = append(contactNumbers, transit.FormatMobileNo(no))
	}
	return &BusDetails{
		Name:           bus.Name,
		RegNumber:      bus.RegNumber,
		ContactNumbers: contactNumbers,
	}
}
