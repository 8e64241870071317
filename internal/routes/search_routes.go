package routes

import (
	"expressway_portal/internal/controllers"
	"github.com/gin-gonic/gin"
)

// SearchRoutes registers the public commuter-facing endpoints
func SearchRoutes(r *gin.Engine, sc *controllers.SearchController) {
	search := r.Group("/search")
	{
		search.GET("/cities", controllers.SearchCities)
		search.GET("/schedules", sc.SearchSchedules)
	}
}
