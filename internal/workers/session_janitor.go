// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/service"
)

const defaultSweepInterval = time.Hour

// SessionJanitor periodically drops expired sessions from the session store.
// Expired sessions are already rejected on lookup; the janitor only keeps the
// store from growing.
type SessionJanitor struct {
	auth     service.AuthService
	interval time.Duration
	logger   *logger.Logger
}

// NewSessionJanitor creates a janitor that sweeps every interval. A zero or
// negative interval falls back to one hour.
func NewSessionJanitor(auth service.AuthService, interval time.Duration, logger *logger.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SessionJanitor{
		auth:     auth,
		interval: interval,
		logger:   logger.GetChildLogger(),
	}
}

// Run implements Worker.
func (j *SessionJanitor) Run(ctx context.Context) {
	j.logger.Info().Dur("interval", j.interval).Msg("session janitor started")

	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("session janitor stopped")
			return
		case <-t.C:
			j.sweep(ctx)
		}
	}
}

func (j *SessionJanitor) sweep(ctx context.Context) {
	pruned, err := j.auth.PruneSessions(ctx)
	if err != nil {
		j.logger.Err(err).Msg("session sweep failed")
		return
	}
	if pruned > 0 {
		j.logger.Info().Int("pruned", pruned).Msg("expired sessions removed")
	}
}
