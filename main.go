package main

import (
	"tennismate-api/core/logger"
	"tennismate-api/core/server"

	_ "tennismate-api/docs" // Swagger docs
)

// @title TennisMate API
// @version 1.0
// @description API backend for TennisMate, a social matchmaking app for recreational tennis players

// @contact.name API Support
// @contact.email support@tennismate.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
