// Package grpc implements the gRPC transport of amour-lingua: the standard
// grpc.health.v1.Health service backed by the storage backends.
package grpc

import (
	"context"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the service name accepted by Check besides the empty
// "whole server" name.
const ServiceName = "amour-lingua"

// Handler is the root gRPC transport handler.
//
// It answers health checks by pinging every external storage backend, so
// a NOT_SERVING answer means the database or the session store is down.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// backends is pinged on every Check call.
	backends store.Pinger

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] that reports the health of backends.
func NewHandler(backends store.Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		backends: backends,
		logger:   logger,
	}
}

// Register attaches every service of the handler to server.
func (h *Handler) Register(server *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(server, h)
}

// Check implements grpc_health_v1.HealthServer.
func (h *Handler) Check(ctx context.Context, request *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if name := request.GetService(); name != "" && name != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	if err := h.backends.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check failed")
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}
