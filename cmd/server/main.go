package main

import (
	"log"
	"net/http"

	"expressway_portal/internal/config"
	"expressway_portal/internal/logger"
	"expressway_portal/internal/middleware"
	"expressway_portal/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter(config.DB)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
