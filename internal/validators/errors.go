package validators

import "errors"

// ErrValidation is matched by every field validation error below, so callers
// can use errors.Is(err, ErrValidation) to recognise bad input in general.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Field validation errors. Each message names the first failing field.
var (
	ErrUsernameRequired     = newFieldError(FieldUsername, "username is required")
	ErrInvalidUsername      = newFieldError(FieldUsername, "username must be between 3 and 50 characters")
	ErrPasswordRequired     = newFieldError(FieldPassword, "password is required")
	ErrPasswordTooShort     = newFieldError(FieldPassword, "password must be at least 6 characters")
	ErrPasswordTooLong      = newFieldError(FieldPassword, "password must be at most 128 characters")
	ErrInvalidEmail         = newFieldError(FieldEmail, "invalid email address")
	ErrNameTooLong          = newFieldError(FieldName, "name must be at most 100 characters")
	ErrInvalidLanguage      = newFieldError(FieldLangPreference, "language must be either \"en\" or \"fr\"")
	ErrInvalidFromLang      = newFieldError(FieldFromLang, "fromLang must be either \"en\" or \"fr\"")
	ErrInvalidToLang        = newFieldError(FieldToLang, "toLang must be either \"en\" or \"fr\"")
	ErrTextRequired         = newFieldError(FieldText, "text is required")
	ErrTranslationTooLong   = newFieldError(FieldText, "text must be at most 500 characters")
	ErrMessageTooLong       = newFieldError(FieldText, "text must be at most 1000 characters")
	ErrInvalidParticipantID = newFieldError(FieldParticipantID, "participantId must be a positive integer")
	ErrFavoriteRequired     = newFieldError(FieldFavorite, "favorite is required")
	ErrNoFieldsToUpdate     = newFieldError("", "at least one field must be provided for update")
)

// FieldError is a validation failure tied to a single request field.
type FieldError struct {
	field   string
	message string
}

func newFieldError(field, message string) *FieldError {
	return &FieldError{field: field, message: message}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.message
}

// Field returns the JSON name of the offending field, or "" for
// request-level failures.
func (e *FieldError) Field() string {
	return e.field
}

// Is makes every FieldError match [ErrValidation].
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}
