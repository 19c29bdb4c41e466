// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/crypto"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/mock"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/internal/validators"
	"github.com/MKhiriev/amour-lingua/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var serviceStart = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type stubIDGenerator struct {
	id string
}

func (g stubIDGenerator) Generate() string {
	return g.id
}

func testConfig(demoMode bool) *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{DemoMode: demoMode},
		Session: config.Session{
			SignKey: "test-sign-key",
			Issuer:  "amour-lingua-test",
			TTL:     time.Hour,
		},
	}
}

// newTestAuthSvc wires an authService to gomock repositories.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller, demoMode bool) (
	*authService,
	*mock.MockUserRepository,
	*mock.MockSessionStore,
	*mock.MockPasswordHasher,
	*utils.StubClock,
) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	sessions := mock.NewMockSessionStore(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	clock := utils.NewStubClock(serviceStart)

	svc := NewAuthService(users, sessions, hasher, stubIDGenerator{id: "sess-1"}, clock, testConfig(demoMode), logger.Nop()).(*authService)
	return svc, users, sessions, hasher, clock
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, hasher, _ := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	request := models.RegisterRequest{
		Username:       "Claire",
		Password:       "secret1",
		Email:          "claire@example.com",
		LangPreference: "FR",
	}

	gomock.InOrder(
		users.EXPECT().GetUserByUsername(ctx, "Claire").Return(models.User{}, store.ErrUserNotFound),
		users.EXPECT().GetUserByEmail(ctx, "claire@example.com").Return(models.User{}, store.ErrUserNotFound),
		hasher.EXPECT().Hash("secret1").Return("hashed.salt", nil),
		users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "hashed.salt", u.Password, "password must be stored hashed")
				assert.Equal(t, models.French, u.LangPreference)
				u.UserID = 5
				return u, nil
			},
		),
	)

	user, err := svc.Register(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.UserID)
}

func TestAuthService_Register_DefaultsLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, hasher, _ := newTestAuthSvc(t, ctrl, false)

	users.EXPECT().GetUserByUsername(gomock.Any(), "bob").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().GetUserByEmail(gomock.Any(), "bob@example.com").Return(models.User{}, store.ErrUserNotFound)
	hasher.EXPECT().Hash("secret1").Return("h.s", nil)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			return u, nil
		},
	)

	user, err := svc.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "secret1", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.English, user.LangPreference)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)

	users.EXPECT().GetUserByUsername(gomock.Any(), "TEST").Return(models.User{UserID: 1, Username: "test"}, nil)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "TEST", Password: "secret1", Email: "new@example.com"})
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)

	users.EXPECT().GetUserByUsername(gomock.Any(), "newbie").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().GetUserByEmail(gomock.Any(), "test@example.com").Return(models.User{UserID: 1}, nil)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "newbie", Password: "secret1", Email: "test@example.com"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Register_ConcurrentDuplicateFromStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, hasher, _ := newTestAuthSvc(t, ctrl, false)

	users.EXPECT().GetUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserNotFound)
	hasher.EXPECT().Hash(gomock.Any()).Return("h.s", nil)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "racer", Password: "secret1", Email: "r@example.com"})
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestAuthService_Register_InvalidLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _, _ := newTestAuthSvc(t, ctrl, false)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "secret1", Email: "b@example.com", LangPreference: "de"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrInvalidLanguage)
}

func TestAuthService_Register_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, hasher, _ := newTestAuthSvc(t, ctrl, false)

	users.EXPECT().GetUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserNotFound)
	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("entropy exhausted"))

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "secret1", Email: "b@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password hashing failed")
}

func TestAuthService_Register_RetryableLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)

	users.EXPECT().GetUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrRetryable)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "secret1", Email: "b@example.com"})
	assert.ErrorIs(t, err, store.ErrRetryable)
}

// ── VerifyCredentials ────────────────────────────────────────────────────────

func TestAuthService_VerifyCredentials(t *testing.T) {
	stored := models.User{UserID: 1, Username: "test", Password: "stored.salt"}

	tests := []struct {
		name      string
		lookupErr error
		match     bool
		compErr   error
		wantErr   error
	}{
		{name: "success", match: true},
		{name: "unknown user", lookupErr: store.ErrUserNotFound, wantErr: ErrInvalidCredentials},
		{name: "wrong password", match: false, wantErr: ErrInvalidCredentials},
		{name: "malformed hash", compErr: crypto.ErrMalformedHash, wantErr: ErrInvalidCredentials},
		{name: "storage outage", lookupErr: store.ErrRetryable, wantErr: store.ErrRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, users, _, hasher, _ := newTestAuthSvc(t, ctrl, false)

			users.EXPECT().GetUserByUsername(gomock.Any(), "test").Return(stored, tt.lookupErr)
			if tt.lookupErr == nil {
				hasher.EXPECT().Compare("stored.salt", "password123").Return(tt.match, tt.compErr)
			}

			user, err := svc.VerifyCredentials(context.Background(), "test", "password123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), user.UserID)
		})
	}
}

// ── Sessions ─────────────────────────────────────────────────────────────────

func TestAuthService_CreateSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, sessions, _, _ := newTestAuthSvc(t, ctrl, false)

	sessions.EXPECT().CreateSession(gomock.Any(), models.Session{
		ID:        "sess-1",
		UserID:    3,
		CreatedAt: serviceStart,
		ExpiresAt: serviceStart.Add(time.Hour),
	}).Return(nil)

	token, err := svc.CreateSession(context.Background(), models.User{UserID: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "sess-1", token.SessionID)
	assert.Equal(t, int64(3), token.UserID)
	assert.True(t, token.ExpiresAt.Equal(serviceStart.Add(time.Hour)))
}

func TestAuthService_CreateSession_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, sessions, _, _ := newTestAuthSvc(t, ctrl, false)

	sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(store.ErrRetryable)

	_, err := svc.CreateSession(context.Background(), models.User{UserID: 3})
	assert.ErrorIs(t, err, ErrSessionCreationFailed)
	assert.ErrorIs(t, err, store.ErrRetryable)
}

func TestAuthService_ResolveSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, sessions, _, clock := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	var saved models.Session
	sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) error {
			saved = s
			return nil
		},
	)
	token, err := svc.CreateSession(ctx, models.User{UserID: 3})
	require.NoError(t, err)

	t.Run("live session", func(t *testing.T) {
		sessions.EXPECT().GetSession(gomock.Any(), "sess-1").Return(saved, nil)

		resolved, err := svc.ResolveSession(ctx, token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resolved.UserID)
	})

	t.Run("session deleted", func(t *testing.T) {
		sessions.EXPECT().GetSession(gomock.Any(), "sess-1").Return(models.Session{}, store.ErrSessionNotFound)

		_, err := svc.ResolveSession(ctx, token.SignedString)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("session store outage", func(t *testing.T) {
		sessions.EXPECT().GetSession(gomock.Any(), "sess-1").Return(models.Session{}, store.ErrRetryable)

		_, err := svc.ResolveSession(ctx, token.SignedString)
		assert.ErrorIs(t, err, store.ErrRetryable)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("session of another user", func(t *testing.T) {
		other := saved
		other.UserID = 4
		sessions.EXPECT().GetSession(gomock.Any(), "sess-1").Return(other, nil)

		_, err := svc.ResolveSession(ctx, token.SignedString)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ResolveSession(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		clock.Advance(2 * time.Hour)

		_, err := svc.ResolveSession(ctx, token.SignedString)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, sessions, _, _ := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil)
	token, err := svc.CreateSession(ctx, models.User{UserID: 3})
	require.NoError(t, err)

	sessions.EXPECT().DeleteSession(gomock.Any(), "sess-1").Return(nil)
	require.NoError(t, svc.Logout(ctx, token.SignedString))

	// no session store calls expected for these
	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "forged"))
}

func TestAuthService_PruneSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, sessions, _, _ := newTestAuthSvc(t, ctrl, false)

	sessions.EXPECT().PruneSessions(gomock.Any(), serviceStart).Return(2, nil)

	pruned, err := svc.PruneSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, pruned)
}

// ── Profile ──────────────────────────────────────────────────────────────────

func TestAuthService_CurrentUser_Deleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)

	users.EXPECT().GetUser(gomock.Any(), int64(9)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.CurrentUser(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	email := "new@example.com"
	lang := "fr"

	t.Run("applies fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)

		french := models.French
		users.EXPECT().GetUserByEmail(gomock.Any(), email).Return(models.User{}, store.ErrUserNotFound)
		users.EXPECT().UpdateUser(gomock.Any(), int64(1), models.UserUpdate{Email: &email, LangPreference: &french}).
			Return(models.User{UserID: 1, Email: email, LangPreference: models.French}, nil)

		user, err := svc.UpdateProfile(context.Background(), 1, models.UpdateProfileRequest{Email: &email, LangPreference: &lang})
		require.NoError(t, err)
		assert.Equal(t, models.French, user.LangPreference)
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)

		users.EXPECT().GetUserByEmail(gomock.Any(), email).Return(models.User{UserID: 1}, nil)
		users.EXPECT().UpdateUser(gomock.Any(), int64(1), gomock.Any()).Return(models.User{UserID: 1, Email: email}, nil)

		_, err := svc.UpdateProfile(context.Background(), 1, models.UpdateProfileRequest{Email: &email})
		require.NoError(t, err)
	})

	t.Run("email of another user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)

		users.EXPECT().GetUserByEmail(gomock.Any(), email).Return(models.User{UserID: 2}, nil)

		_, err := svc.UpdateProfile(context.Background(), 1, models.UpdateProfileRequest{Email: &email})
		assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
	})
}

func TestAuthService_ForgotPassword_AlwaysSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, _, _ := newTestAuthSvc(t, ctrl, false)
	ctx := context.Background()

	users.EXPECT().GetUserByEmail(gomock.Any(), "test@example.com").Return(models.User{UserID: 1}, nil)
	users.EXPECT().GetUserByEmail(gomock.Any(), "nobody@example.com").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().GetUserByEmail(gomock.Any(), "down@example.com").Return(models.User{}, store.ErrRetryable)

	assert.NoError(t, svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "test@example.com"}))
	assert.NoError(t, svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "nobody@example.com"}))
	assert.NoError(t, svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "down@example.com"}))
}

// ── Demo mode ────────────────────────────────────────────────────────────────

func TestAuthService_DemoUser_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _, _ := newTestAuthSvc(t, ctrl, false)

	_, err := svc.DemoUser(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_DemoUser_Enabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _, _, _ := newTestAuthSvc(t, ctrl, true)

	users.EXPECT().GetUserByUsername(gomock.Any(), store.SeedUsername).Return(models.User{UserID: 1, Username: "test"}, nil)

	user, err := svc.DemoUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", user.Username)
}

// ── End to end over the memory store ─────────────────────────────────────────

func TestAuthService_SeededUsers_LoginAndLogout(t *testing.T) {
	ctx := context.Background()
	clock := utils.NewStubClock(serviceStart)
	hasher := crypto.NewPasswordHasher()

	storages := store.NewMemoryStorages(clock)
	require.NoError(t, store.Seed(ctx, storages, hasher, clock.Now()))

	svc := NewAuthValidationService().Wrap(
		NewAuthService(storages.UserRepository, storages.SessionStore, hasher, utils.NewXIDGenerator(), clock, testConfig(false), logger.Nop()),
	)

	for _, username := range []string{"test", "marie", "pierre", "emma", "MARIE"} {
		_, err := svc.VerifyCredentials(ctx, username, store.SeedPassword)
		require.NoError(t, err, username)
	}

	_, err := svc.VerifyCredentials(ctx, "test", "password124")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.VerifyCredentials(ctx, "test", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	user, err := svc.VerifyCredentials(ctx, "test", store.SeedPassword)
	require.NoError(t, err)

	token, err := svc.CreateSession(ctx, user)
	require.NoError(t, err)

	resolved, err := svc.ResolveSession(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, resolved.UserID)

	require.NoError(t, svc.Logout(ctx, token.SignedString))

	_, err = svc.ResolveSession(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrUnauthorized, "a signed token must not outlive its session")
}
