package main

import (
	"context"
	"os"

	"github.com/amaumene/personal-backend/internal/app"
	"github.com/amaumene/personal-backend/internal/config"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Info("Starting Personal Backend API")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if err := app.New(cfg).Run(context.Background()); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
}
