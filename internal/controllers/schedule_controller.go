package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"expressway_portal/internal/config"
	"expressway_portal/internal/models"
	"expressway_portal/internal/transit"
)

type transitTimeInput struct {
	CityID uint      `json:"city_id" binding:"required"`
	Time   time.Time `json:"time" binding:"required"`
}

type createScheduleInput struct {
	RouteID       uint               `json:"route_id" binding:"required"`
	BusID         *uint              `json:"bus_id"`
	DepartureTime time.Time          `json:"departure_time" binding:"required"`
	ArrivalTime   *time.Time         `json:"arrival_time"`
	TransitTimes  []transitTimeInput `json:"transit_times"`
}

// validateTransitTimes rejects entries whose city is not a transit stop of
// the owning route. Orphan transit times were silently ignored at display
// time before; they are now refused at the write boundary.
func validateTransitTimes(route *models.Route, transitTimes []transitTimeInput) error {
	for _, tt := range transitTimes {
		if !route.HasTransitCity(tt.CityID) {
			return errors.New("transit time city " + strconv.FormatUint(uint64(tt.CityID), 10) + " is not a transit stop of the route")
		}
	}
	return nil
}

// CreateSchedule registers a concrete daily run of a route; enabled by default
func CreateSchedule(c *gin.Context) {
	var input createScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateSchedule: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, input.RouteID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Route not found"})
		return
	}
	if err := validateTransitTimes(&route, input.TransitTimes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.BusID != nil {
		var bus models.Bus
		if err := config.DB.First(&bus, *input.BusID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bus not found"})
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	schedule := models.Schedule{
		RouteID:       input.RouteID,
		BusID:         input.BusID,
		Enabled:       true,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := tx.Create(&schedule).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create schedule failed: " + err.Error()})
		return
	}

	for _, tt := range input.TransitTimes {
		transitTime := models.TransitTime{ScheduleID: schedule.ID, CityID: tt.CityID, Time: tt.Time}
		if err := tx.Create(&transitTime).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create transit time failed: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	config.DB.Preload("TransitTimes").First(&schedule, schedule.ID)
	c.JSON(http.StatusCreated, gin.H{"schedule": schedule})
}

// scheduleWithRelations carries a schedule plus its hydrated route/bus.
// A relation that no longer resolves is omitted rather than failing the list.
type scheduleWithRelations struct {
	models.Schedule
	Route *models.Route `json:"route,omitempty"`
	Bus   *models.Bus   `json:"bus,omitempty"`
}

// hydrateScheduleRelations attaches routes and buses, memoized by id so a
// pass over N schedules referencing K distinct entities issues K lookups.
func hydrateScheduleRelations(schedules []models.Schedule) []scheduleWithRelations {
	routeCache := map[uint]*models.Route{}
	busCache := map[uint]*models.Bus{}

	result := make([]scheduleWithRelations, 0, len(schedules))
	for _, schedule := range schedules {
		item := scheduleWithRelations{Schedule: schedule}

		route, seen := routeCache[schedule.RouteID]
		if !seen {
			var r models.Route
			err := config.DB.Preload("Fares", func(db *gorm.DB) *gorm.DB {
				return db.Order("seq")
			}).First(&r, schedule.RouteID).Error
			if err == nil {
				route = &r
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithError(err).Error("hydrateScheduleRelations: route lookup failed")
			}
			routeCache[schedule.RouteID] = route
		}
		item.Route = route

		if schedule.BusID != nil {
			bus, seen := busCache[*schedule.BusID]
			if !seen {
				var b models.Bus
				err := config.DB.First(&b, *schedule.BusID).Error
				if err == nil {
					bus = &b
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					logrus.WithError(err).Error("hydrateScheduleRelations: bus lookup failed")
				}
				busCache[*schedule.BusID] = bus
			}
			item.Bus = bus
		}

		result = append(result, item)
	}
	return result
}

// ListSchedules returns every schedule with its route and bus relations,
// ordered by route then departure time-of-day
func ListSchedules(c *gin.Context) {
	var schedules []models.Schedule
	if err := config.DB.Preload("TransitTimes").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing schedules: " + err.Error()})
		return
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		if schedules[i].RouteID != schedules[j].RouteID {
			return schedules[i].RouteID < schedules[j].RouteID
		}
		return transit.TimeOnlyCompare(schedules[i].DepartureTime, schedules[j].DepartureTime) < 0
	})

	c.JSON(http.StatusOK, gin.H{"data": hydrateScheduleRelations(schedules)})
}

// GetSchedule returns a single schedule with its relations
func GetSchedule(c *gin.Context) {
	id := c.Param("id")
	var schedule models.Schedule
	if err := config.DB.Preload("TransitTimes").First(&schedule, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	hydrated := hydrateScheduleRelations([]models.Schedule{schedule})
	c.JSON(http.StatusOK, gin.H{"schedule": hydrated[0]})
}

type updateScheduleInput struct {
	RouteID       *uint               `json:"route_id"`
	BusID         *uint               `json:"bus_id"`
	Enabled       *bool               `json:"enabled"`
	DepartureTime *time.Time          `json:"departure_time"`
	ArrivalTime   *time.Time          `json:"arrival_time"`
	TransitTimes  *[]transitTimeInput `json:"transit_times"`
}

// UpdateSchedule modifies an existing schedule; the enabled flag is the
// soft-disable used instead of deletion
func UpdateSchedule(c *gin.Context) {
	id := c.Param("id")
	var schedule models.Schedule
	if err := config.DB.First(&schedule, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	var input updateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.RouteID != nil {
		var route models.Route
		if err := config.DB.First(&route, *input.RouteID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Route not found"})
			return
		}
		schedule.RouteID = *input.RouteID
	}
	if input.BusID != nil {
		var bus models.Bus
		if err := config.DB.First(&bus, *input.BusID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bus not found"})
			return
		}
		schedule.BusID = input.BusID
	}
	if input.Enabled != nil {
		schedule.Enabled = *input.Enabled
	}
	if input.DepartureTime != nil {
		schedule.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		schedule.ArrivalTime = input.ArrivalTime
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if input.TransitTimes != nil {
		var route models.Route
		if err := config.DB.First(&route, schedule.RouteID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Route not found"})
			return
		}
		if err := validateTransitTimes(&route, *input.TransitTimes); err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := tx.Where("schedule_id = ?", schedule.ID).Delete(&models.TransitTime{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace transit times: " + err.Error()})
			return
		}
		for _, ttInput := range *input.TransitTimes {
			transitTime := models.TransitTime{ScheduleID: schedule.ID, CityID: ttInput.CityID, Time: ttInput.Time}
			if err := tx.Create(&transitTime).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace transit times: " + err.Error()})
				return
			}
		}
	}

	if err := tx.Save(&schedule).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	config.DB.Preload("TransitTimes").First(&schedule, schedule.ID)
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// DeleteSchedule removes a schedule and its transit times
func DeleteSchedule(c *gin.Context) {
	id := c.Param("id")
	var schedule models.Schedule
	if err := config.DB.First(&schedule, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Where("schedule_id = ?", schedule.ID).Delete(&models.TransitTime{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transit times: " + err.Error()})
		return
	}
	if err := tx.Delete(&schedule).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
