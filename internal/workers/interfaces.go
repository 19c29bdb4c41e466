// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs
// every registered worker until the server shuts down.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled. Failures of a single iteration are
// logged by the worker itself and never stop it.
type Worker interface {
	Run(ctx context.Context)
}
