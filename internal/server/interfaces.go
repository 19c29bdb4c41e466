package server

// Server is the lifecycle contract of the amour-lingua transport layer.
//
// RunServer serves the HTTP API, the optional gRPC health service and the
// background workers until SIGINT, SIGTERM or SIGQUIT arrives.
type Server interface {
	// RunServer starts serving and blocks until a shutdown signal has been
	// handled and every server and worker has returned.
	RunServer()

	// Shutdown gracefully stops the transport servers.
	Shutdown()
}
