package http

import (
	"time"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/localization"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/service"
	"github.com/MKhiriev/amour-lingua/internal/utils"
)

type Handler struct {
	services  *service.Services
	localizer *localization.Manager

	cookieName     string
	requestTimeout time.Duration

	// traceIDs generates X-Trace-ID values for requests that carry none.
	traceIDs utils.IDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, localizer *localization.Manager, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		localizer:      localizer,
		cookieName:     cfg.Session.CookieName,
		requestTimeout: cfg.Server.RequestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
}
