package routes

import (
	"expressway_portal/internal/controllers"
	"expressway_portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/users", controllers.ListUsers)

		admin.POST("/cities", controllers.CreateCity)
		admin.GET("/cities", controllers.ListCities)
		admin.GET("/cities/:id", controllers.GetCity)
		admin.PUT("/cities/:id", controllers.UpdateCity)
		admin.DELETE("/cities/:id", controllers.DeleteCity)

		admin.POST("/buses", controllers.CreateBus)
		admin.GET("/buses", controllers.ListBuses)
		admin.GET("/buses/:id", controllers.GetBus)
		admin.PUT("/buses/:id", controllers.UpdateBus)
		admin.DELETE("/buses/:id", controllers.DeleteBus)

		admin.POST("/routes", controllers.CreateRoute)
		admin.GET("/routes", controllers.ListRoutes)
		admin.GET("/routes/:id", controllers.GetRoute)
		admin.PUT("/routes/:id", controllers.UpdateRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)

		admin.POST("/schedules", controllers.CreateSchedule)
		admin.GET("/schedules", controllers.ListSchedules)
		admin.GET("/schedules/:id", controllers.GetSchedule)
		admin.PUT("/schedules/:id", controllers.UpdateSchedule)
		admin.DELETE("/schedules/:id", controllers.DeleteSchedule)

		admin.POST("/rotation-schedules", controllers.CreateRotationSchedule)
		admin.GET("/rotation-schedules", controllers.ListRotationSchedules)
		admin.GET("/rotation-schedules/:id", controllers.GetRotationSchedule)
		admin.PUT("/rotation-schedules/:id", controllers.UpdateRotationSchedule)
		admin.DELETE("/rotation-schedules/:id", controllers.DeleteRotationSchedule)
	}
}
