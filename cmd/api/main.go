package main

import (
	"os"

	"github.com/joho/godotenv"

	"portfolio-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment variables", nil)
	}

	if err := newRootCmd().Execute(); err != nil {
		logger.Error(err, "Command failed", nil)
		os.Exit(1)
	}
}
