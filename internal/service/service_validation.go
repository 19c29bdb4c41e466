package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/validators"
	"github.com/MKhiriev/amour-lingua/models"
)

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// logging or validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// TranslationServiceWrapper defines middleware composition for TranslationService.
type TranslationServiceWrapper interface {
	Wrap(TranslationService) TranslationService
}

// MessagingServiceWrapper defines middleware composition for MessagingService.
type MessagingServiceWrapper interface {
	Wrap(MessagingService) MessagingService
}

// AuthValidationService validates request payloads before handing them to
// the wrapped AuthService. Operations without a payload pass straight through.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, request)
}

func (v *AuthValidationService) VerifyCredentials(ctx context.Context, username, password string) (models.User, error) {
	request := models.LoginRequest{Username: username, Password: password}
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.VerifyCredentials(ctx, username, password)
}

func (v *AuthValidationService) CreateSession(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateSession(ctx, user)
}

func (v *AuthValidationService) ResolveSession(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ResolveSession(ctx, tokenString)
}

func (v *AuthValidationService) Logout(ctx context.Context, tokenString string) error {
	return v.inner.Logout(ctx, tokenString)
}

func (v *AuthValidationService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.CurrentUser(ctx, userID)
}

func (v *AuthValidationService) UpdateProfile(ctx context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateProfile(ctx, userID, request)
}

func (v *AuthValidationService) ForgotPassword(ctx context.Context, request models.ForgotPasswordRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ForgotPassword(ctx, request)
}

func (v *AuthValidationService) DemoUser(ctx context.Context) (models.User, error) {
	return v.inner.DemoUser(ctx)
}

func (v *AuthValidationService) PruneSessions(ctx context.Context) (int, error) {
	return v.inner.PruneSessions(ctx)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

// TranslationValidationService validates request payloads before handing
// them to the wrapped TranslationService.
type TranslationValidationService struct {
	inner     TranslationService
	validator validators.Validator
}

func NewTranslationValidationService() TranslationServiceWrapper {
	return &TranslationValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *TranslationValidationService) Translate(ctx context.Context, userID int64, request models.TranslateRequest) (models.Translation, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Translation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Translate(ctx, userID, request)
}

func (v *TranslationValidationService) GetTranslations(ctx context.Context, userID int64) ([]models.Translation, error) {
	return v.inner.GetTranslations(ctx, userID)
}

func (v *TranslationValidationService) GetFavoriteTranslations(ctx context.Context, userID int64) ([]models.Translation, error) {
	return v.inner.GetFavoriteTranslations(ctx, userID)
}

func (v *TranslationValidationService) SetFavorite(ctx context.Context, userID, translationID int64, request models.FavoriteRequest) (models.Translation, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Translation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SetFavorite(ctx, userID, translationID, request)
}

func (v *TranslationValidationService) Wrap(wrapped TranslationService) TranslationService {
	v.inner = wrapped
	return v
}

// MessagingValidationService validates request payloads before handing them
// to the wrapped MessagingService.
type MessagingValidationService struct {
	inner     MessagingService
	validator validators.Validator
}

func NewMessagingValidationService() MessagingServiceWrapper {
	return &MessagingValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *MessagingValidationService) GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	return v.inner.GetConversations(ctx, userID)
}

func (v *MessagingValidationService) CreateConversation(ctx context.Context, userID int64, request models.CreateConversationRequest) (models.Conversation, bool, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Conversation{}, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateConversation(ctx, userID, request)
}

func (v *MessagingValidationService) GetMessages(ctx context.Context, userID, conversationID int64, translateTo string) ([]models.Message, error) {
	return v.inner.GetMessages(ctx, userID, conversationID, translateTo)
}

func (v *MessagingValidationService) SendMessage(ctx context.Context, userID, conversationID int64, request models.SendMessageRequest) (models.Message, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SendMessage(ctx, userID, conversationID, request)
}

func (v *MessagingValidationService) MarkAsRead(ctx context.Context, userID, conversationID int64) (int64, error) {
	return v.inner.MarkAsRead(ctx, userID, conversationID)
}

func (v *MessagingValidationService) Wrap(wrapped MessagingService) MessagingService {
	v.inner = wrapped
	return v
}
