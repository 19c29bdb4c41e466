package service

import (
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/config"
	"github.com/MKhiriev/amour-lingua/internal/crypto"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
)

type Services struct {
	AuthService        AuthService
	TranslationService TranslationService
	MessagingService   MessagingService
	AppInfoService     AppInfoService
}

// NewServices builds every service on top of storages. Services that accept
// request payloads are wrapped with their validation decorators.
func NewServices(
	storages *store.Storages,
	cfg *config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	hasher crypto.PasswordHasher,
	clock utils.Clock,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService := NewAuthService(
		storages.UserRepository,
		storages.SessionStore,
		hasher,
		utils.NewXIDGenerator(),
		clock,
		cfg,
		logger,
	)
	translationService := NewTranslationService(storages.TranslationRepository, clock, logger)
	messagingService := NewMessagingService(
		storages.UserRepository,
		storages.ConversationRepository,
		storages.MessageRepository,
		clock,
		logger,
	)

	return &Services{
		AuthService:        NewAuthValidationService().Wrap(authService),
		TranslationService: NewTranslationValidationService().Wrap(translationService),
		MessagingService:   NewMessagingValidationService().Wrap(messagingService),
		AppInfoService:     appInfoService,
	}, nil
}
