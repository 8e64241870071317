package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"expressway_portal/internal/controllers"
	"expressway_portal/internal/repository"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()

	// Request logging + recovery middleware
	r.Use(ginlog.SetLogger())
	r.Use(gin.Recovery())

	searchController := controllers.NewSearchController(repository.NewCatalog(db))

	AuthRoutes(r)
	SearchRoutes(r, searchController)
	AdminRoutes(r)

	return r
}
