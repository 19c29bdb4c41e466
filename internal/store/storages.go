// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/crypto"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/utils"
)

// Storages groups every repository and the session store into a single
// value that is created once at startup and handed to the service layer.
type Storages struct {
	UserRepository         UserRepository
	TranslationRepository  TranslationRepository
	ConversationRepository ConversationRepository
	MessageRepository      MessageRepository
	SessionStore           SessionStore

	pingers []Pinger
	closers []io.Closer
}

// NewMemoryStorages returns empty map-backed repositories and a memory
// session store.
func NewMemoryStorages(clock utils.Clock) *Storages {
	conversations, messages := NewMemoryConversationRepositories()
	return &Storages{
		UserRepository:         NewMemoryUserRepository(),
		TranslationRepository:  NewMemoryTranslationRepository(),
		ConversationRepository: conversations,
		MessageRepository:      messages,
		SessionStore:           NewMemorySessionStore(clock),
	}
}

// NewSQLStorages returns the repositories backed by db and a memory session
// store. db is closed by [Storages.Close].
func NewSQLStorages(db *DB, clock utils.Clock, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		TranslationRepository:  NewTranslationRepository(db, logger),
		ConversationRepository: NewConversationRepository(db, logger),
		MessageRepository:      NewMessageRepository(db, logger),
		SessionStore:           NewMemorySessionStore(clock),
		pingers:                []Pinger{db},
		closers:                []io.Closer{db},
	}
}

// NewStorages initialises the storage layer selected by cfg:
//  1. Builds the repositories for cfg.Storage.Driver, connecting to and
//     migrating the database for the SQL drivers.
//  2. Swaps in the redis session store when cfg.Session.Backend is "redis".
//  3. Inserts the fixtures when seeding is enabled.
//
// Resources opened before a failing step are released before returning.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, hasher crypto.PasswordHasher, clock utils.Clock, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.Storage.Driver).Str("session_backend", cfg.Session.Backend).Msg("creating new storages...")

	storages, err := newDriverStorages(ctx, cfg.Storage, clock, logger)
	if err != nil {
		return nil, err
	}

	switch cfg.Session.Backend {
	case config.SessionBackendMemory, "":
	case config.SessionBackendRedis:
		sessions, redisErr := NewRedisSessionStore(ctx, cfg.Session.Redis, clock, logger)
		if redisErr != nil {
			storages.Close()
			return nil, redisErr
		}
		storages.SessionStore = sessions
		storages.pingers = append(storages.pingers, sessions)
		storages.closers = append(storages.closers, sessions)
	default:
		storages.Close()
		return nil, fmt.Errorf("%w: session backend %q", ErrUnknownDriver, cfg.Session.Backend)
	}

	if cfg.Storage.SeedEnabled() {
		if err = Seed(ctx, storages, hasher, clock.Now()); err != nil {
			storages.Close()
			return nil, fmt.Errorf("seeding failed: %w", err)
		}
	}

	return storages, nil
}

func newDriverStorages(ctx context.Context, cfg config.Storage, clock utils.Clock, logger *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.StorageDriverMemory:
		return NewMemoryStorages(clock), nil
	case config.StorageDriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	case config.StorageDriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.Driver, err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLStorages(db, clock, logger), nil
}

// Ping checks every external backend. Memory storages always succeed.
func (s *Storages) Ping(ctx context.Context) error {
	for _, p := range s.pingers {
		if err := p.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every opened connection.
func (s *Storages) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
