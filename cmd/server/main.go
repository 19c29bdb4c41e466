package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/crypto"
	"github.com/MKhiriev/amour-lingua/internal/handler"
	"github.com/MKhiriev/amour-lingua/internal/localization"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/server"
	"github.com/MKhiriev/amour-lingua/internal/service"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/internal/workers"
	"github.com/MKhiriev/amour-lingua/models"
)

const serverRole = "amour-lingua-server"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log := logger.NewLogger(serverRole, "info")
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger(serverRole, cfg.App.LogLevel)
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	clock := utils.RealClock{}
	hasher := crypto.NewPasswordHasher()

	storages, err := store.NewStorages(context.Background(), cfg, hasher, clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, cfg, buildInfo, hasher, clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	localizer, err := localization.NewManager()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading translations")
	}

	handlers, err := handler.NewHandlers(services, storages, localizer, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(services, cfg.Workers, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
