package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/edupro/talentdesk/internal/pkg/logger"
	"github.com/edupro/talentdesk/internal/server"
)

// @title TalentDesk API
// @version 1.0
// @description API for the TalentDesk training and recruitment platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@talentdesk.app

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
	// A .env file is optional; real deployments set env vars directly
	_ = godotenv.Load()

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
