package main

import (
	"os"

	"github.com/yigit/hogwarts/internal/pkg/logger"
	"github.com/yigit/hogwarts/internal/server"
)

// @title Hogwarts School API
// @version 1.0
// @description CRUD and query API for the students and faculties of Hogwarts

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
