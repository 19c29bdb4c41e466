package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
)

// newTestRedisSessionStore starts an in-process redis server and connects a
// store to it.
func newTestRedisSessionStore(t *testing.T, clock utils.Clock) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	sessions, err := NewRedisSessionStore(context.Background(), config.Redis{Address: server.Addr()}, clock, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	return sessions, server
}

// testSessionStores builds every session store backend around clock.
func testSessionStores(t *testing.T, clock utils.Clock) map[string]SessionStore {
	t.Helper()

	redisSessions, _ := newTestRedisSessionStore(t, clock)
	return map[string]SessionStore{
		"memory": NewMemorySessionStore(clock),
		"redis":  redisSessions,
	}
}

// ─────────────────────────────────────────────
// SessionStore contract
// ─────────────────────────────────────────────

func TestSessionStores_CreateAndGet(t *testing.T) {
	ctx := context.Background()

	for name, sessions := range testSessionStores(t, utils.NewStubClock(storageStart)) {
		t.Run(name, func(t *testing.T) {
			session := models.Session{
				ID:        "abc",
				UserID:    7,
				CreatedAt: storageStart,
				ExpiresAt: storageStart.Add(time.Hour),
			}
			require.NoError(t, sessions.CreateSession(ctx, session))

			got, err := sessions.GetSession(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, int64(7), got.UserID)
			assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

			_, err = sessions.GetSession(ctx, "missing")
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestSessionStores_ExpiredSessionIsHidden(t *testing.T) {
	ctx := context.Background()
	clock := utils.NewStubClock(storageStart)

	for name, sessions := range testSessionStores(t, clock) {
		t.Run(name, func(t *testing.T) {
			id := "expiring-" + name
			require.NoError(t, sessions.CreateSession(ctx, models.Session{ID: id, UserID: 1, ExpiresAt: clock.Now().Add(time.Hour)}))

			clock.Advance(time.Hour)

			_, err := sessions.GetSession(ctx, id)
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestSessionStores_RejectsAlreadyExpired(t *testing.T) {
	ctx := context.Background()

	for name, sessions := range testSessionStores(t, utils.NewStubClock(storageStart)) {
		t.Run(name, func(t *testing.T) {
			err := sessions.CreateSession(ctx, models.Session{ID: "old", UserID: 1, ExpiresAt: storageStart})
			assert.ErrorIs(t, err, ErrSessionExpired)

			_, err = sessions.GetSession(ctx, "old")
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestSessionStores_Delete(t *testing.T) {
	ctx := context.Background()

	for name, sessions := range testSessionStores(t, utils.NewStubClock(storageStart)) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, sessions.CreateSession(ctx, models.Session{ID: "s1", UserID: 1, ExpiresAt: storageStart.Add(time.Hour)}))
			require.NoError(t, sessions.DeleteSession(ctx, "s1"))
			require.NoError(t, sessions.DeleteSession(ctx, "s1"), "deleting twice is not an error")

			_, err := sessions.GetSession(ctx, "s1")
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

// ─────────────────────────────────────────────
// memory
// ─────────────────────────────────────────────

func TestMemorySessionStore_Prune(t *testing.T) {
	ctx := context.Background()
	clock := utils.NewStubClock(storageStart)
	sessions := NewMemorySessionStore(clock)

	require.NoError(t, sessions.CreateSession(ctx, models.Session{ID: "short", UserID: 1, ExpiresAt: storageStart.Add(time.Minute)}))
	require.NoError(t, sessions.CreateSession(ctx, models.Session{ID: "long", UserID: 2, ExpiresAt: storageStart.Add(time.Hour)}))

	clock.Advance(time.Minute)

	pruned, err := sessions.PruneSessions(ctx, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	pruned, err = sessions.PruneSessions(ctx, clock.Now())
	require.NoError(t, err)
	assert.Zero(t, pruned)

	_, err = sessions.GetSession(ctx, "long")
	assert.NoError(t, err)
}

// ─────────────────────────────────────────────
// redis
// ─────────────────────────────────────────────

func TestRedisSessionStore_SetsKeyTTL(t *testing.T) {
	ctx := context.Background()
	sessions, server := newTestRedisSessionStore(t, utils.NewStubClock(storageStart))

	require.NoError(t, sessions.CreateSession(ctx, models.Session{ID: "abc", UserID: 7, ExpiresAt: storageStart.Add(90 * time.Minute)}))

	assert.True(t, server.Exists(redisSessionKey("abc")))
	assert.Equal(t, 90*time.Minute, server.TTL(redisSessionKey("abc")))

	server.FastForward(90 * time.Minute)

	assert.False(t, server.Exists(redisSessionKey("abc")))
	_, err := sessions.GetSession(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_CorruptValue(t *testing.T) {
	sessions, server := newTestRedisSessionStore(t, utils.NewStubClock(storageStart))

	require.NoError(t, server.Set(redisSessionKey("bad"), "not json"))

	_, err := sessions.GetSession(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_PruneIsNoop(t *testing.T) {
	sessions, _ := newTestRedisSessionStore(t, utils.NewStubClock(storageStart))

	pruned, err := sessions.PruneSessions(context.Background(), storageStart)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}

func TestRedisSessionStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	sessions, server := newTestRedisSessionStore(t, utils.NewStubClock(storageStart))

	server.Close()

	_, err := sessions.GetSession(ctx, "abc")
	assert.ErrorIs(t, err, ErrRetryable)

	err = sessions.CreateSession(ctx, models.Session{ID: "abc", UserID: 1, ExpiresAt: storageStart.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrRetryable)

	assert.ErrorIs(t, sessions.DeleteSession(ctx, "abc"), ErrRetryable)
	assert.Error(t, sessions.Ping(ctx))
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "localhost:6379", redisAddress("redis://localhost:6379"))
	assert.Equal(t, "cache:6380", redisAddress("cache:6380"))
	assert.Equal(t, "lingua:session:abc", redisSessionKey("abc"))
}

func TestNewRedisSessionStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisSessionStore(ctx, config.Redis{Address: "127.0.0.1:1"}, utils.RealClock{}, logger.Nop())
	assert.Error(t, err)
}
