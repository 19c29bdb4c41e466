package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/amour-lingua/models"
)

// Field name constants used to restrict validation to a subset of fields.
// Values match the JSON names of the request payloads.
const (
	FieldUsername       = "username"
	FieldPassword       = "password"
	FieldEmail          = "email"
	FieldName           = "name"
	FieldLangPreference = "langPreference"
	FieldText           = "text"
	FieldFromLang       = "fromLang"
	FieldToLang         = "toLang"
	FieldParticipantID  = "participantId"
	FieldFavorite       = "favorite"
)

// Length limits, counted in runes.
const (
	MinUsernameLength    = 3
	MaxUsernameLength    = 50
	MinPasswordLength    = 6
	MaxPasswordLength    = 128
	MaxNameLength        = 100
	MaxTranslationLength = 500
	MaxMessageLength     = 1000
)

// RequestValidator implements Validator for the HTTP request payloads
// declared in the models package. Both value and pointer forms are accepted.
type RequestValidator struct {
}

// NewRequestValidator constructs a RequestValidator and returns it as a Validator.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches to the type-specific method for obj.
// Returns ErrUnsupportedType for anything else.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLogin(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(ctx, *value, fields...)

	case models.UpdateProfileRequest:
		return v.validateUpdateProfile(ctx, value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfile(ctx, *value, fields...)

	case models.ForgotPasswordRequest:
		return v.validateForgotPassword(ctx, value, fields...)
	case *models.ForgotPasswordRequest:
		return v.validateForgotPassword(ctx, *value, fields...)

	case models.TranslateRequest:
		return v.validateTranslate(ctx, value, fields...)
	case *models.TranslateRequest:
		return v.validateTranslate(ctx, *value, fields...)

	case models.FavoriteRequest:
		return v.validateFavorite(ctx, value, fields...)
	case *models.FavoriteRequest:
		return v.validateFavorite(ctx, *value, fields...)

	case models.CreateConversationRequest:
		return v.validateCreateConversation(ctx, value, fields...)
	case *models.CreateConversationRequest:
		return v.validateCreateConversation(ctx, *value, fields...)

	case models.SendMessageRequest:
		return v.validateSendMessage(ctx, value, fields...)
	case *models.SendMessageRequest:
		return v.validateSendMessage(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRegister(_ context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldEmail, FieldName, FieldLangPreference}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(request.Username); err != nil {
				return err
			}
		case FieldPassword:
			if err := validatePassword(request.Password); err != nil {
				return err
			}
		case FieldEmail:
			if !isValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldName:
			if request.Name != nil && utf8.RuneCountInString(*request.Name) > MaxNameLength {
				return ErrNameTooLong
			}
		case FieldLangPreference:
			// empty means "use the default language"
			if request.LangPreference == "" {
				continue
			}
			if _, ok := models.ParseLanguage(request.LangPreference); !ok {
				return ErrInvalidLanguage
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateLogin(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if strings.TrimSpace(request.Username) == "" {
				return ErrUsernameRequired
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrPasswordRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateUpdateProfile(_ context.Context, request models.UpdateProfileRequest, fields ...string) error {
	if request.Name == nil && request.Email == nil && request.LangPreference == nil {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldLangPreference}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if request.Name != nil && utf8.RuneCountInString(*request.Name) > MaxNameLength {
				return ErrNameTooLong
			}
		case FieldEmail:
			if request.Email != nil && !isValidEmail(*request.Email) {
				return ErrInvalidEmail
			}
		case FieldLangPreference:
			if request.LangPreference == nil {
				continue
			}
			if _, ok := models.ParseLanguage(*request.LangPreference); !ok {
				return ErrInvalidLanguage
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateForgotPassword(_ context.Context, request models.ForgotPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateTranslate(_ context.Context, request models.TranslateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldText, FieldFromLang, FieldToLang}
	}

	for _, f := range fields {
		switch f {
		case FieldText:
			if err := validateText(request.Text, MaxTranslationLength, ErrTranslationTooLong); err != nil {
				return err
			}
		case FieldFromLang:
			if !models.Language(request.FromLang).IsValid() {
				return ErrInvalidFromLang
			}
		case FieldToLang:
			if !models.Language(request.ToLang).IsValid() {
				return ErrInvalidToLang
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateFavorite(_ context.Context, request models.FavoriteRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFavorite}
	}

	for _, f := range fields {
		switch f {
		case FieldFavorite:
			if request.Favorite == nil {
				return ErrFavoriteRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateCreateConversation(_ context.Context, request models.CreateConversationRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldParticipantID}
	}

	for _, f := range fields {
		switch f {
		case FieldParticipantID:
			if request.ParticipantID <= 0 {
				return ErrInvalidParticipantID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateSendMessage(_ context.Context, request models.SendMessageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldText}
	}

	for _, f := range fields {
		switch f {
		case FieldText:
			if err := validateText(request.Text, MaxMessageLength, ErrMessageTooLong); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// validateText rejects empty and whitespace-only text as well as text longer
// than limit runes.
func validateText(text string, limit int, tooLong error) error {
	if strings.TrimSpace(text) == "" {
		return ErrTextRequired
	}
	if utf8.RuneCountInString(text) > limit {
		return tooLong
	}
	return nil
}

// isValidEmail accepts a bare address only: "Name <a@b>" forms are rejected.
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(addr.Address, ".")
}
