package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers registers the background workers of the server.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	logger.Info().Msg("creating new workers...")
	return &Workers{
		workers: []Worker{
			NewSessionJanitor(services.AuthService, cfg.SessionSweepInterval, logger),
		},
	}
}

// Run starts every worker in its own goroutine and blocks until all of them
// return after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}

// NewWorkersOf groups already constructed workers.
func NewWorkersOf(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}
