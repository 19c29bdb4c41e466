// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the Err*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres, StorageDriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: driver %q requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	switch cfg.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.Session.Redis.Address == "" {
			return fmt.Errorf("%w: redis backend requires an address", ErrInvalidSessionConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidSessionConfigs, cfg.Session.Backend)
	}

	if cfg.Session.SignKey == "" {
		return fmt.Errorf("%w: sign key is required", ErrInvalidSessionConfigs)
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("%w: ttl must be positive", ErrInvalidSessionConfigs)
	}
	if cfg.Session.CookieName == "" || cfg.Session.Issuer == "" {
		return fmt.Errorf("%w: cookie name and issuer are required", ErrInvalidSessionConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs)
	}
	if _, _, err := net.SplitHostPort(cfg.Server.HTTPAddress); err != nil {
		return fmt.Errorf("%w: http address: %w", ErrInvalidServerConfigs, err)
	}
	if cfg.Server.GRPCAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.GRPCAddress); err != nil {
			return fmt.Errorf("%w: grpc address: %w", ErrInvalidServerConfigs, err)
		}
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Workers.SessionSweepInterval <= 0 {
		return fmt.Errorf("%w: session sweep interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
