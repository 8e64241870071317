package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"expressway_portal/internal/config"
	"expressway_portal/internal/models"
)

// CreateBus registers a new bus
func CreateBus(c *gin.Context) {
	var input struct {
		Name           string   `json:"name" binding:"required"`
		RegNumber      string   `json:"reg_number"`
		ContactNumbers []string `json:"contact_numbers"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus input: " + err.Error()})
		return
	}

	bus := models.Bus{
		Name:           input.Name,
		RegNumber:      input.RegNumber,
		ContactNumbers: pq.StringArray(input.ContactNumbers),
	}
	if err := config.DB.Create(&bus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bus: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

// ListBuses lists all buses
func ListBuses(c *gin.Context) {
	var buses []models.Bus
	if err := config.DB.Find(&buses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing buses: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buses})
}

// GetBus retrieves a bus by ID
func GetBus(c *gin.Context) {
	id := c.Param("id")
	var bus models.Bus
	if err := config.DB.First(&bus, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// UpdateBus modifies an existing bus
func UpdateBus(c *gin.Context) {
	id := c.Param("id")
	var bus models.Bus
	if err := config.DB.First(&bus, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}

	var input struct {
		Name           *string   `json:"name"`
		RegNumber      *string   `json:"reg_number"`
		ContactNumbers *[]string `json:"contact_numbers"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		bus.Name = *input.Name
	}
	if input.RegNumber != nil {
		bus.RegNumber = *input.RegNumber
	}
	if input.ContactNumbers != nil {
		bus.ContactNumbers = pq.StringArray(*input.ContactNumbers)
	}

	config.DB.Save(&bus)
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// DeleteBus removes a bus by ID. Schedules referencing it keep the dangling
// id; their bus relation just stops resolving.
func DeleteBus(c *gin.Context) {
	id := c.Param("id")
	var bus models.Bus
	if err := config.DB.First(&bus, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}

	config.DB.Delete(&bus)
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
