package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/nipunivithana/cms-backend/internal/pkg/logger"
	"github.com/nipunivithana/cms-backend/internal/server"
)

// @title CMS Backend API
// @version 1.0
// @description Role-based academic records API: accounts, courses, enrollments and grading

// @contact.name API Support
// @contact.email support@cms.api

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// .env is optional; real deployments set environment variables directly
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on process environment")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
