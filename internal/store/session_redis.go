package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
)

const (
	redisSessionKeyPrefix  = "lingua:session:"
	redisConnectionTimeout = 5 * time.Second
)

// RedisSessionStore keeps sessions as JSON values whose redis TTL matches
// the session expiry, so no pruning is needed.
type RedisSessionStore struct {
	client *redis.Client
	clock  utils.Clock
	logger *logger.Logger
}

// NewRedisSessionStore connects to redis and verifies the connection with a
// PING.
func NewRedisSessionStore(ctx context.Context, cfg config.Redis, clock utils.Clock, log *logger.Logger) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddress(cfg.Address),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisConnectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisSessionStore").Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("redis connection error: %w", err)
	}
	log.Info().Str("func", "NewRedisSessionStore").Msg("connected to redis successfully")

	return &RedisSessionStore{
		client: client,
		clock:  clock,
		logger: log,
	}, nil
}

// redisAddress accepts both "host:port" and "redis://host:port".
func redisAddress(address string) string {
	if parsed, err := url.Parse(address); err == nil && parsed.Scheme == "redis" {
		return parsed.Host
	}
	return address
}

func redisSessionKey(id string) string {
	return redisSessionKeyPrefix + id
}

func (s *RedisSessionStore) CreateSession(ctx context.Context, session models.Session) error {
	ttl := session.TTL(s.clock.Now())
	if ttl <= 0 {
		return fmt.Errorf("%w: %s", ErrSessionExpired, session.ID)
	}

	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err = s.client.Set(ctx, redisSessionKey(session.ID), value, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "RedisSessionStore.CreateSession").Msg("error storing session")
		return fmt.Errorf("%w: %w", ErrRetryable, err)
	}
	return nil
}

func (s *RedisSessionStore) GetSession(ctx context.Context, id string) (models.Session, error) {
	value, err := s.client.Get(ctx, redisSessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "RedisSessionStore.GetSession").Msg("error reading session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrRetryable, err)
	}

	var session models.Session
	if err = json.Unmarshal(value, &session); err != nil {
		return models.Session{}, fmt.Errorf("error decoding session: %w", err)
	}

	if session.IsExpired(s.clock.Now()) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisSessionKey(id)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "RedisSessionStore.DeleteSession").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrRetryable, err)
	}
	return nil
}

// PruneSessions is a no-op: redis expires the keys itself.
func (s *RedisSessionStore) PruneSessions(context.Context, time.Time) (int, error) {
	return 0, nil
}

// Ping checks that redis is reachable.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the redis connection pool.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
