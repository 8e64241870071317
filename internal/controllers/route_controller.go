package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"expressway_portal/internal/config"
	"expressway_portal/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RouteResponse mirrors models.Route but carries the path as a GeoJSON
// string for API output
type RouteResponse struct {
	ID                uint           `json:"ID"`
	CreatedAt         time.Time      `json:"CreatedAt"`
	UpdatedAt         time.Time      `json:"UpdatedAt"`
	DeletedAt         gorm.DeletedAt `json:"DeletedAt,omitempty"`
	DepartureCityID   uint           `json:"departure_city_id"`
	DepartureCityName string         `json:"departure_city_name"`
	ArrivalCityID     uint           `json:"arrival_city_id"`
	ArrivalCityName   string         `json:"arrival_city_name"`
	RouteNumber       string         `json:"route_number"`
	Price             string         `json:"price"`
	TransitCityIDs    []int64        `json:"transit_city_ids"`
	Geometry          string         `json:"geometry,omitempty"`
	Fares             []models.Fare  `json:"fares"`
}

func toRouteResponse(route models.Route) RouteResponse {
	jsonGeom, _ := convertWKBToGeoJSON(route.Geometry)
	return RouteResponse{
		ID:                route.ID,
		CreatedAt:         route.CreatedAt,
		UpdatedAt:         route.UpdatedAt,
		DeletedAt:         route.DeletedAt,
		DepartureCityID:   route.DepartureCityID,
		DepartureCityName: route.DepartureCityName,
		ArrivalCityID:     route.ArrivalCityID,
		ArrivalCityName:   route.ArrivalCityName,
		RouteNumber:       route.RouteNumber,
		Price:             route.Price,
		TransitCityIDs:    route.TransitCityIDs,
		Geometry:          jsonGeom,
		Fares:             route.Fares,
	}
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type fareInput struct {
	Price       string `json:"price" binding:"required"`
	ServiceType string `json:"service_type"`
}

type createRouteInput struct {
	DepartureCityID uint        `json:"departure_city_id" binding:"required"`
	ArrivalCityID   uint        `json:"arrival_city_id" binding:"required"`
	RouteNumber     string      `json:"route_number"`
	Price           string      `json:"price"`
	Fares           []fareInput `json:"fares"`
	TransitCityIDs  []uint      `json:"transit_city_ids"`
	Geometry        string      `json:"geometry"`
}

// validateTransitCityIDs rejects transit lists containing an endpoint city.
// The order of the list is the actual travel order and is stored as given.
func validateTransitCityIDs(transitCityIDs []uint, departureCityID, arrivalCityID uint) error {
	for _, id := range transitCityIDs {
		if id == departureCityID || id == arrivalCityID {
			return errors.New("transit cities must not include the departure or arrival city")
		}
	}
	return nil
}

// CreateRoute registers a new route. The departure/arrival city names are
// snapshotted from the cities table at this point and stay as written even
// if the city is later renamed.
func CreateRoute(c *gin.Context) {
	var input createRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.DepartureCityID == input.ArrivalCityID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure and arrival city must differ"})
		return
	}
	if err := validateTransitCityIDs(input.TransitCityIDs, input.DepartureCityID, input.ArrivalCityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var departureCity, arrivalCity models.City
	if err := config.DB.First(&departureCity, input.DepartureCityID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Departure city not found"})
		return
	}
	if err := config.DB.First(&arrivalCity, input.ArrivalCityID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arrival city not found"})
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	transitCityIDs := make(pq.Int64Array, 0, len(input.TransitCityIDs))
	for _, id := range input.TransitCityIDs {
		transitCityIDs = append(transitCityIDs, int64(id))
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	route := models.Route{
		DepartureCityID:   departureCity.ID,
		DepartureCityName: departureCity.Name,
		ArrivalCityID:     arrivalCity.ID,
		ArrivalCityName:   arrivalCity.Name,
		RouteNumber:       input.RouteNumber,
		Price:             input.Price,
		TransitCityIDs:    transitCityIDs,
		Geometry:          wkbGeom,
	}
	if err := tx.Create(&route).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}

	for i, f := range input.Fares {
		fare := models.Fare{RouteID: route.ID, Seq: i, Price: f.Price, ServiceType: f.ServiceType}
		if err := tx.Create(&fare).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create fare failed: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	config.DB.Preload("Fares").First(&route, route.ID)
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}

// ListRoutes returns all routes with their fares, ordered by the departure
// city name snapshot
func ListRoutes(c *gin.Context) {
	var routes []models.Route
	if err := config.DB.Preload("Fares", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).Order("departure_city_name").Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing routes: " + err.Error()})
		return
	}

	routeResponses := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		routeResponses = append(routeResponses, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": routeResponses})
}

// GetRoute returns a single route with its fares
func GetRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.Preload("Fares", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).First(&route, rID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

type updateRouteInput struct {
	DepartureCityID *uint        `json:"departure_city_id"`
	ArrivalCityID   *uint        `json:"arrival_city_id"`
	RouteNumber     *string      `json:"route_number"`
	Price           *string      `json:"price"`
	Fares           *[]fareInput `json:"fares"`
	TransitCityIDs  *[]uint      `json:"transit_city_ids"`
	Geometry        *string      `json:"geometry"`
}

// UpdateRoute handles updating an existing route. Changing an endpoint city
// re-snapshots its name; nothing else refreshes the stored names.
func UpdateRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: Invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var existingRoute models.Route
	if err := config.DB.First(&existingRoute, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("UpdateRoute: Database error fetching route")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input updateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: Invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := applyRouteUpdates(&existingRoute, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Save(&existingRoute).Error; err != nil {
		tx.Rollback()
		logrus.WithError(err).Error("UpdateRoute: Failed to save updated route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	if input.Fares != nil {
		if err := tx.Where("route_id = ?", existingRoute.ID).Delete(&models.Fare{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace fares: " + err.Error()})
			return
		}
		for i, f := range *input.Fares {
			fare := models.Fare{RouteID: existingRoute.ID, Seq: i, Price: f.Price, ServiceType: f.ServiceType}
			if err := tx.Create(&fare).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace fares: " + err.Error()})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	config.DB.Preload("Fares", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).First(&existingRoute, existingRoute.ID)
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(existingRoute)})
}

// applyRouteUpdates updates the route fields based on the input
func applyRouteUpdates(route *models.Route, input *updateRouteInput) error {
	if input.DepartureCityID != nil {
		var city models.City
		if err := config.DB.First(&city, *input.DepartureCityID).Error; err != nil {
			return errors.New("departure city not found")
		}
		route.DepartureCityID = city.ID
		route.DepartureCityName = city.Name
	}
	if input.ArrivalCityID != nil {
		var city models.City
		if err := config.DB.First(&city, *input.ArrivalCityID).Error; err != nil {
			return errors.New("arrival city not found")
		}
		route.ArrivalCityID = city.ID
		route.ArrivalCityName = city.Name
	}
	if route.DepartureCityID == route.ArrivalCityID {
		return errors.New("departure and arrival city must differ")
	}
	if input.RouteNumber != nil {
		route.RouteNumber = *input.RouteNumber
	}
	if input.Price != nil {
		route.Price = *input.Price
	}
	if input.TransitCityIDs != nil {
		if err := validateTransitCityIDs(*input.TransitCityIDs, route.DepartureCityID, route.ArrivalCityID); err != nil {
			return err
		}
		transitCityIDs := make(pq.Int64Array, 0, len(*input.TransitCityIDs))
		for _, id := range *input.TransitCityIDs {
			transitCityIDs = append(transitCityIDs, int64(id))
		}
		route.TransitCityIDs = transitCityIDs
	}
	if input.Geometry != nil {
		if *input.Geometry == "" {
			route.Geometry = nil
		} else {
			wkbGeom, err := parseAndConvertGeometry(*input.Geometry)
			if err != nil {
				return errors.New("Invalid geometry: " + err.Error())
			}
			route.Geometry = wkbGeom
		}
	}
	return nil
}

// DeleteRoute removes a route and its fares. Schedules referencing the
// route are left in place and simply stop resolving.
func DeleteRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Where("route_id = ?", route.ID).Delete(&models.Fare{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fares: " + err.Error()})
		return
	}

	if err := tx.Delete(&route).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
