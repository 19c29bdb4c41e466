package localization

// Message identifiers. Every identifier has an entry in each
// locales/active.*.toml file.
const (
	MsgInvalidJSON           = "InvalidJSON"
	MsgInvalidID             = "InvalidID"
	MsgInvalidRequest        = "InvalidRequest"
	MsgUnauthorized          = "Unauthorized"
	MsgInvalidCredentials    = "InvalidCredentials"
	MsgForbidden             = "Forbidden"
	MsgUserNotFound          = "UserNotFound"
	MsgParticipantNotFound   = "ParticipantNotFound"
	MsgTranslationNotFound   = "TranslationNotFound"
	MsgConversationNotFound  = "ConversationNotFound"
	MsgUsernameAlreadyExists = "UsernameAlreadyExists"
	MsgEmailAlreadyExists    = "EmailAlreadyExists"
	MsgSelfConversation      = "SelfConversation"
	MsgServiceUnavailable    = "ServiceUnavailable"
	MsgInternalError         = "InternalError"
	MsgLoggedOut             = "LoggedOut"
	MsgPasswordResetSent     = "PasswordResetSent"

	MsgUsernameRequired     = "UsernameRequired"
	MsgInvalidUsername      = "InvalidUsername"
	MsgPasswordRequired     = "PasswordRequired"
	MsgPasswordTooShort     = "PasswordTooShort"
	MsgPasswordTooLong      = "PasswordTooLong"
	MsgInvalidEmail         = "InvalidEmail"
	MsgNameTooLong          = "NameTooLong"
	MsgInvalidLanguage      = "InvalidLanguage"
	MsgInvalidFromLang      = "InvalidFromLang"
	MsgInvalidToLang        = "InvalidToLang"
	MsgTextRequired         = "TextRequired"
	MsgTranslationTooLong   = "TranslationTooLong"
	MsgMessageTooLong       = "MessageTooLong"
	MsgInvalidParticipantID = "InvalidParticipantID"
	MsgFavoriteRequired     = "FavoriteRequired"
	MsgNoFieldsToUpdate     = "NoFieldsToUpdate"
)

// AllMessageIDs lists every identifier above.
var AllMessageIDs = []string{
	MsgInvalidJSON,
	MsgInvalidID,
	MsgInvalidRequest,
	MsgUnauthorized,
	MsgInvalidCredentials,
	MsgForbidden,
	MsgUserNotFound,
	MsgParticipantNotFound,
	MsgTranslationNotFound,
	MsgConversationNotFound,
	MsgUsernameAlreadyExists,
	MsgEmailAlreadyExists,
	MsgSelfConversation,
	MsgServiceUnavailable,
	MsgInternalError,
	MsgLoggedOut,
	MsgPasswordResetSent,
	MsgUsernameRequired,
	MsgInvalidUsername,
	MsgPasswordRequired,
	MsgPasswordTooShort,
	MsgPasswordTooLong,
	MsgInvalidEmail,
	MsgNameTooLong,
	MsgInvalidLanguage,
	MsgInvalidFromLang,
	MsgInvalidToLang,
	MsgTextRequired,
	MsgTranslationTooLong,
	MsgMessageTooLong,
	MsgInvalidParticipantID,
	MsgFavoriteRequired,
	MsgNoFieldsToUpdate,
}
