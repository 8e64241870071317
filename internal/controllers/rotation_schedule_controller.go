package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"expressway_portal/internal/config"
	"expressway_portal/internal/models"
	"expressway_portal/internal/transit"
)

type rotationBlockInput struct {
	StartTime    time.Time            `json:"start_time" binding:"required"`
	EndTime      time.Time            `json:"end_time" binding:"required"`
	Interval     int                  `json:"interval" binding:"required"`
	Duration     int                  `json:"duration" binding:"required"`
	DurationUnit transit.DurationUnit `json:"duration_unit" binding:"required"`
}

type createRotationScheduleInput struct {
	RouteID        uint                 `json:"route_id" binding:"required"`
	ContactNumbers []string             `json:"contact_numbers"`
	TimeTable      []rotationBlockInput `json:"time_table" binding:"required"`
}

// CreateRotationSchedule expands the compact recurrence blocks into a
// concrete timetable and stores the result; enabled by default
func CreateRotationSchedule(c *gin.Context) {
	var input createRotationScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRotationSchedule: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, input.RouteID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Route not found"})
		return
	}

	var timeTable []models.TimeTableEntry
	for _, block := range input.TimeTable {
		entries, err := transit.ExpandTimeTable(block.StartTime, block.EndTime, block.Interval, block.Duration, block.DurationUnit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		timeTable = append(timeTable, entries...)
	}
	for i := range timeTable {
		timeTable[i].Seq = i
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	rotation := models.RotationSchedule{
		RouteID:        input.RouteID,
		ContactNumbers: pq.StringArray(input.ContactNumbers),
		Enabled:        true,
	}
	if err := tx.Create(&rotation).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create rotation schedule failed: " + err.Error()})
		return
	}

	for i := range timeTable {
		timeTable[i].RotationScheduleID = rotation.ID
		if err := tx.Create(&timeTable[i]).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create timetable entry failed: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	config.DB.Preload("TimeTable", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).First(&rotation, rotation.ID)
	c.JSON(http.StatusCreated, gin.H{"rotation_schedule": rotation})
}

type rotationScheduleWithRelations struct {
	models.RotationSchedule
	Route *models.Route `json:"route,omitempty"`
}

// ListRotationSchedules returns every rotation schedule with its route,
// memoizing route lookups by id
func ListRotationSchedules(c *gin.Context) {
	var rotations []models.RotationSchedule
	if err := config.DB.Preload("TimeTable", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).Order("route_id").Find(&rotations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rotation schedules: " + err.Error()})
		return
	}

	routeCache := map[uint]*models.Route{}
	result := make([]rotationScheduleWithRelations, 0, len(rotations))
	for _, rotation := range rotations {
		item := rotationScheduleWithRelations{RotationSchedule: rotation}

		route, seen := routeCache[rotation.RouteID]
		if !seen {
			var r models.Route
			err := config.DB.First(&r, rotation.RouteID).Error
			if err == nil {
				route = &r
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithError(err).Error("ListRotationSchedules: route lookup failed")
			}
			routeCache[rotation.RouteID] = route
		}
		item.Route = route

		result = append(result, item)
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetRotationSchedule returns a single rotation schedule with its route
func GetRotationSchedule(c *gin.Context) {
	id := c.Param("id")
	var rotation models.RotationSchedule
	if err := config.DB.Preload("TimeTable", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).First(&rotation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rotation schedule not found"})
		return
	}

	item := rotationScheduleWithRelations{RotationSchedule: rotation}
	var route models.Route
	if err := config.DB.First(&route, rotation.RouteID).Error; err == nil {
		item.Route = &route
	}

	c.JSON(http.StatusOK, gin.H{"rotation_schedule": item})
}

type timeTableEntryInput struct {
	DepartureTime time.Time  `json:"departure_time" binding:"required"`
	ArrivalTime   *time.Time `json:"arrival_time"`
}

type updateRotationScheduleInput struct {
	RouteID        *uint                  `json:"route_id"`
	ContactNumbers *[]string              `json:"contact_numbers"`
	Enabled        *bool                  `json:"enabled"`
	TimeTable      *[]timeTableEntryInput `json:"time_table"`
}

// UpdateRotationSchedule modifies an existing rotation schedule. The
// timetable, when present, replaces the stored entries verbatim: edits to
// an already expanded timetable are explicit, not re-expanded.
func UpdateRotationSchedule(c *gin.Context) {
	id := c.Param("id")
	var rotation models.RotationSchedule
	if err := config.DB.First(&rotation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rotation schedule not found"})
		return
	}

	var input updateRotationScheduleInput
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
		rotation.RouteID = *input.RouteID
	}
	if input.ContactNumbers != nil {
		rotation.ContactNumbers = pq.StringArray(*input.ContactNumbers)
	}
	if input.Enabled != nil {
		rotation.Enabled = *input.Enabled
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if input.TimeTable != nil {
		if err := tx.Where("rotation_schedule_id = ?", rotation.ID).Delete(&models.TimeTableEntry{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace timetable: " + err.Error()})
			return
		}
		for i, e := range *input.TimeTable {
			entry := models.TimeTableEntry{
				RotationScheduleID: rotation.ID,
				Seq:                i,
				DepartureTime:      e.DepartureTime,
				ArrivalTime:        e.ArrivalTime,
			}
			if err := tx.Create(&entry).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace timetable: " + err.Error()})
				return
			}
		}
	}

	if err := tx.Save(&rotation).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	config.DB.Preload("TimeTable", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).First(&rotation, rotation.ID)
	c.JSON(http.StatusOK, gin.H{"rotation_schedule": rotation})
}

// DeleteRotationSchedule removes a rotation schedule and its timetable
func DeleteRotationSchedule(c *gin.Context) {
	id := c.Param("id")
	var rotation models.RotationSchedule
	if err := config.DB.First(&rotation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rotation schedule not found"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Where("rotation_schedule_id = ?", rotation.ID).Delete(&models.TimeTableEntry{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete timetable: " + err.Error()})
		return
	}
	if err := tx.Delete(&rotation).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rotation schedule: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rotation schedule deleted successfully"})
}
