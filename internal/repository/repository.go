package repository

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"expressway_portal/internal/models"
	"expressway_portal/internal/transit"
)

// Catalog is the read boundary the search flow depends on. Lookups return
// (nil, nil) when the entity does not exist; a schedule referencing a
// missing route or bus is displayable-but-incomplete, not an error.
type Catalog interface {
	ListRoutes() ([]models.Route, error)
	ListSchedulesByRouteIDs(routeIDs []uint) ([]models.Schedule, error)
	GetRouteByID(id uint) (*models.Route, error)
	GetCityByID(id uint) (*models.City, error)
	GetBusByID(id uint) (*models.Bus, error)
}

type GormCatalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// ListRoutes returns the full route catalog with fares, ordered by the
// departure city name snapshot.
func (c *GormCatalog) ListRoutes() ([]models.Route, error) {
	var routes []models.Route
	err := c.db.Preload("Fares", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).Order("departure_city_name").Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// ListSchedulesByRouteIDs returns the enabled schedules of the given routes
// with their transit times, sorted by departure time-of-day.
func (c *GormCatalog) ListSchedulesByRouteIDs(routeIDs []uint) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := c.db.Preload("TransitTimes").
		Where("route_id IN ? AND enabled = ?", routeIDs, true).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		return transit.TimeOnlyCompare(schedules[i].DepartureTime, schedules[j].DepartureTime) < 0
	})
	return schedules, nil
}

func (c *GormCatalog) GetRouteByID(id uint) (*models.Route, error) {
	var route models.Route
	err := c.db.Preload("Fares", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).First(&route, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (c *GormCatalog) GetCityByID(id uint) (*models.City, error) {
	var city models.City
	err := c.db.First(&city, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (c *GormCatalog) GetBusByID(id uint) (*models.Bus, error) {
	var bus models.Bus
	err := c.db.First(&bus, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bus, nil
}
