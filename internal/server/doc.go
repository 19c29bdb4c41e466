// Package server runs the HTTP API and the optional gRPC health service of
// amour-lingua together with the background workers.
//
// A shutdown signal cancels the workers and stops both transports; in-flight
// HTTP requests get a bounded grace period.
package server
