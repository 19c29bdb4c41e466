package handler

import (
	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/handler/grpc"
	"github.com/MKhiriev/amour-lingua/internal/handler/http"
	"github.com/MKhiriev/amour-lingua/internal/localization"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/service"
	"github.com/MKhiriev/amour-lingua/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a transport handler for every server address present
// in cfg.Server. backends is what the gRPC health check pings.
func NewHandlers(
	services *service.Services,
	backends store.Pinger,
	localizer *localization.Manager,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, localizer, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(backends, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
