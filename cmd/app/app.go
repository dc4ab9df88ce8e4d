package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sage-media/video-compare-backend/internal/app"
	config "github.com/sage-media/video-compare-backend/internal/cfg"
	"github.com/sage-media/video-compare-backend/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
