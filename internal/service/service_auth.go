package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/crypto"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/internal/validators"
	"github.com/MKhiriev/amour-lingua/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the session
// lifecycle using a UserRepository and a SessionStore for persistence and
// scrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionStore keeps the server-side half of every session. A token whose
	// session is gone is rejected even if its signature is valid.
	sessionStore store.SessionStore

	// hasher derives and compares stored password hashes.
	hasher crypto.PasswordHasher

	// sessionIDs generates opaque session identifiers.
	sessionIDs utils.IDGenerator

	clock utils.Clock

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// sessionTTL controls how long a new session and its token stay valid.
	sessionTTL time.Duration

	// demoMode lets DemoUser hand out the seeded fixture user.
	demoMode bool

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given storages and
// populated with session parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	sessionStore store.SessionStore,
	hasher crypto.PasswordHasher,
	sessionIDs utils.IDGenerator,
	clock utils.Clock,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		sessionStore:   sessionStore,
		hasher:         hasher,
		sessionIDs:     sessionIDs,
		clock:          clock,
		tokenSignKey:   cfg.Session.SignKey,
		tokenIssuer:    cfg.Session.Issuer,
		sessionTTL:     cfg.Session.TTL,
		demoMode:       cfg.App.DemoMode,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// Username and email are checked for uniqueness before the password is
// hashed. The storage layer enforces the same constraints, so a concurrent
// registration still fails with store.ErrUsernameAlreadyExists or
// store.ErrEmailAlreadyExists.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	lang := models.DefaultLanguage
	if request.LangPreference != "" {
		parsed, ok := models.ParseLanguage(request.LangPreference)
		if !ok {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidLanguage)
		}
		lang = parsed
	}

	if err := a.ensureUnique(ctx, request.Username, request.Email); err != nil {
		log.Err(err).Str("username", request.Username).Msg("registration rejected")
		return models.User{}, err
	}

	hash, err := a.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:       request.Username,
		Password:       hash,
		Email:          request.Email,
		Name:           request.Name,
		LangPreference: lang,
	})
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("id", registeredUser.UserID).Msg("user registered")
	return registeredUser, nil
}

// ensureUnique reports the first taken identifier, username before email.
func (a *authService) ensureUnique(ctx context.Context, username, email string) error {
	_, err := a.userRepository.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return store.ErrUsernameAlreadyExists
	case !errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("user search by username failed: %w", err)
	}

	_, err = a.userRepository.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("user search by email failed: %w", err)
	}

	return nil
}

// VerifyCredentials looks the user up case-insensitively and compares the
// stored hash in constant time. Unknown usernames and wrong passwords both
// yield ErrInvalidCredentials.
func (a *authService) VerifyCredentials(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug().Str("username", username).Msg("no user with this username")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	ok, err := a.hasher.Compare(foundUser.Password, password)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("stored password hash is unusable")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if !ok {
		log.Debug().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateSession issues a signed token for user and stores the session it
// references. The token is signed before the session is stored.
func (a *authService) CreateSession(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	now := a.clock.Now()
	session := models.Session{
		ID:        a.sessionIDs.Generate(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, user.UserID, session.ID, session.CreatedAt, session.ExpiresAt, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("creation of session token failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	if err = a.sessionStore.CreateSession(ctx, session); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("saving session failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	log.Debug().Int64("id", user.UserID).Str("session_id", session.ID).Msg("session created")
	return token, nil
}

// ResolveSession validates the token signature, issuer and expiry and then
// requires its session to still exist and belong to the same user.
//
// Storage failures other than a missing session are returned as is, so a
// flaky session backend surfaces as store.ErrRetryable instead of a 401.
func (a *authService) ResolveSession(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.clock.Now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	session, err := a.sessionStore.GetSession(ctx, token.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return models.Token{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.UserID != token.UserID {
		logger.FromContext(ctx).Warn().
			Str("session_id", session.ID).
			Int64("token_user_id", token.UserID).
			Int64("session_user_id", session.UserID).
			Msg("session belongs to a different user")
		return models.Token{}, ErrUnauthorized
	}

	return token, nil
}

// Logout deletes the session referenced by tokenString. A missing, expired
// or forged token leaves nothing to delete and is reported as success.
func (a *authService) Logout(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil
	}

	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.clock.Now())
	if err != nil {
		log.Debug().Err(err).Msg("logout with unusable token")
		return nil
	}

	if err = a.sessionStore.DeleteSession(ctx, token.SessionID); err != nil {
		log.Err(err).Str("session_id", token.SessionID).Msg("deleting session failed")
		return fmt.Errorf("deleting session failed: %w", err)
	}

	log.Debug().Int64("id", token.UserID).Str("session_id", token.SessionID).Msg("session deleted")
	return nil
}

// CurrentUser returns the account behind an authenticated request. A user
// that no longer exists is treated as unauthenticated.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of request. A new email must not
// belong to another account.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	update := models.UserUpdate{
		Name:  request.Name,
		Email: request.Email,
	}
	if request.LangPreference != nil {
		lang, ok := models.ParseLanguage(*request.LangPreference)
		if !ok {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidLanguage)
		}
		update.LangPreference = &lang
	}

	if update.Email != nil {
		owner, err := a.userRepository.GetUserByEmail(ctx, *update.Email)
		switch {
		case err == nil && owner.UserID != userID:
			log.Debug().Int64("id", userID).Msg("email belongs to another user")
			return models.User{}, store.ErrEmailAlreadyExists
		case err != nil && !errors.Is(err, store.ErrUserNotFound):
			log.Err(err).Int64("id", userID).Msg("user search by email failed")
			return models.User{}, fmt.Errorf("user search by email failed: %w", err)
		}
	}

	updatedUser, err := a.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updatedUser, nil
}

// ForgotPassword logs the request and always succeeds. No reset mail is sent.
func (a *authService) ForgotPassword(ctx context.Context, request models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.GetUserByEmail(ctx, request.Email)
	switch {
	case err == nil:
		log.Info().Int64("id", user.UserID).Msg("password reset requested")
	case errors.Is(err, store.ErrUserNotFound):
		log.Info().Msg("password reset requested for unknown email")
	default:
		log.Err(err).Msg("user search by email failed during password reset")
	}

	return nil
}

// DemoUser returns the seeded fixture account while demo mode is enabled.
func (a *authService) DemoUser(ctx context.Context) (models.User, error) {
	if !a.demoMode {
		return models.User{}, ErrUnauthorized
	}

	user, err := a.userRepository.GetUserByUsername(ctx, store.SeedUsername)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logger.FromContext(ctx).Warn().Msg("demo mode is on but the fixture user is missing")
			return models.User{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return models.User{}, fmt.Errorf("demo user search failed: %w", err)
	}

	return user, nil
}

func (a *authService) PruneSessions(ctx context.Context) (int, error) {
	pruned, err := a.sessionStore.PruneSessions(ctx, a.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("pruning sessions failed: %w", err)
	}
	return pruned, nil
}
