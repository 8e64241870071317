package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"expressway_portal/internal/config"
	"expressway_portal/internal/models"
)

// CreateCity registers a new city
func CreateCity(c *gin.Context) {
	var input models.City
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create city: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"city": input})
}

// ListCities lists all cities ordered by name
func ListCities(c *gin.Context) {
	var cities []models.City
	if err := config.DB.Order("name").Find(&cities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cities})
}

// SearchCities is the public city lookup behind the search page pickers.
// With a name parameter it does a capitalized-prefix search; without one it
// lists every city ordered by name.
func SearchCities(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		ListCities(c)
		return
	}

	name = strings.ToUpper(name[:1]) + name[1:]
	// prefix search: name <= x < name with its last byte bumped by one
	end := name[:len(name)-1] + string(name[len(name)-1]+1)

	var cities []models.City
	if err := config.DB.Where("name >= ? AND name < ?", name, end).Order("name").Find(&cities).Error; err != nil {
		logrus.WithError(err).Error("SearchCities: database error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not search cities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cities})
}

// GetCity retrieves a city by ID
func GetCity(c *gin.Context) {
	id := c.Param("id")
	var city models.City
	if err := config.DB.First(&city, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city})
}

// UpdateCity modifies an existing city. Routes keep their own name
// snapshots, so renaming here does not touch them.
func UpdateCity(c *gin.Context) {
	id := c.Param("id")
	var city models.City
	if err := config.DB.First(&city, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		return
	}

	var input struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		city.Name = *input.Name
	}

	config.DB.Save(&city)
	c.JSON(http.StatusOK, gin.H{"city": city})
}

// DeleteCity removes a city by ID
func DeleteCity(c *gin.Context) {
	id := c.Param("id")
	var city models.City
	if err := config.DB.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Delete(&city).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete city"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "City deleted"})
}
